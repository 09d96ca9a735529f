package game

import "fmt"

// Board stores an Atropos position of a given size: a triangle of size rows of
// interior cells wrapped in a coloured border.
//
// Storage is a flat (size+2)x(size+2) grid. Row r in [0, size] holds r+2 cells,
// columns 0 and r+1 being border. The bottom border row size+1 holds size+1
// cells and is shifted one column left relative to the rows above it.
// Everything else is Void.
type Board struct {
	size   int
	stride int
	cells  []Cell
}

// NewBoard returns an empty board of the given size with the standard starting
// border: the left edge alternates red/green, the right edge green/blue and the
// bottom edge red/blue, so each edge lacks exactly one colour.
func NewBoard(size int) *Board {
	b := newVoidBoard(size)
	for r := 0; r <= size; r++ {
		left, right := Red, Green
		if r%2 == 1 {
			left, right = Green, Blue
		}
		b.set(r, 0, left)
		b.set(r, r+1, right)
		for c := 1; c <= r; c++ {
			b.set(r, c, Empty)
		}
	}
	for c := 0; c <= size; c++ {
		color := Red
		if c%2 == 1 {
			color = Blue
		}
		b.set(size+1, c, color)
	}
	return b
}

// FromRows adopts a jagged grid of rows, top row first. The size is len(rows)-2.
// Rows longer than the board shape requires (rectangular padding) are accepted
// and their extra cells ignored.
func FromRows(rows [][]Cell) (*Board, error) {
	size := len(rows) - 2
	if size < 1 {
		return nil, fmt.Errorf("board needs at least 3 rows, got %d", len(rows))
	}
	b := newVoidBoard(size)
	for r, row := range rows {
		width := rowWidth(size, r)
		if len(row) < width {
			return nil, fmt.Errorf("row %d has %d cells, want %d", r, len(row), width)
		}
		for c := 0; c < width; c++ {
			cell := row[c]
			if cell < Empty || cell > Green {
				return nil, fmt.Errorf("row %d column %d holds %d, want a value in [0,3]", r, c, cell)
			}
			if cell == Empty && b.isBorder(r, c) {
				return nil, fmt.Errorf("border cell at row %d column %d is empty", r, c)
			}
			b.set(r, c, cell)
		}
	}
	return b, nil
}

func newVoidBoard(size int) *Board {
	if size < 1 {
		panic(fmt.Sprintf("invalid board size %d", size))
	}
	stride := size + 2
	cells := make([]Cell, stride*stride)
	for i := range cells {
		cells[i] = Void
	}
	return &Board{size: size, stride: stride, cells: cells}
}

// rowWidth is the number of meaningful cells stored in row r.
func rowWidth(size, r int) int {
	if r == size+1 {
		return size + 1
	}
	return r + 2
}

func (b *Board) isBorder(r, c int) bool {
	return r == 0 || r == b.size+1 || c == 0 || c == r+1
}

func (b *Board) set(r, c int, cell Cell) {
	b.cells[r*b.stride+c] = cell
}

// Size is the number of interior rows.
func (b *Board) Size() int {
	return b.size
}

// At returns the cell stored at row r, column c.
func (b *Board) At(r, c int) Cell {
	return b.cells[r*b.stride+c]
}

// Rows returns a jagged copy of the board, top row first.
func (b *Board) Rows() [][]Cell {
	rows := make([][]Cell, b.size+2)
	for r := range rows {
		width := rowWidth(b.size, r)
		rows[r] = make([]Cell, width)
		copy(rows[r], b.cells[r*b.stride:r*b.stride+width])
	}
	return rows
}

func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{size: b.size, stride: b.stride, cells: cells}
}

// CopyFrom overwrites b with the contents of src. Both must have the same size.
func (b *Board) CopyFrom(src *Board) {
	if b.size != src.size {
		panic(fmt.Sprintf("copying a size %d board into a size %d board", src.size, b.size))
	}
	copy(b.cells, src.cells)
}

// Transform maps a move to its storage row and column.
func (b *Board) Transform(m Move) (row, col int) {
	return b.size + 1 - m.A, m.B
}

// Contains reports whether m addresses a cell of the playable triangle.
func (b *Board) Contains(m Move) bool {
	return m.Valid(b.size)
}

// Color returns the colour of the cell addressed by m.
func (b *Board) Color(m Move) Cell {
	r, c := b.Transform(m)
	return b.At(r, c)
}

// SurroundingColors returns the six neighbours of m's cell, going left,
// upper-left, upper, right, lower-right, lower. Neighbours on the bottom
// border row are one column to the left because of how that row is stored.
func (b *Board) SurroundingColors(m Move) [6]Cell {
	r, c := b.Transform(m)
	offset := 0
	if r == b.size {
		offset = -1
	}
	return [6]Cell{
		b.At(r, c-1),
		b.At(r-1, c-1),
		b.At(r-1, c),
		b.At(r, c+1),
		b.At(r+1, c+1+offset),
		b.At(r+1, c+offset),
	}
}

// Apply colours the cell addressed by m in place.
func (b *Board) Apply(m Move) {
	r, c := b.Transform(m)
	i := r*b.stride + c
	if b.cells[i] != Empty {
		panic(fmt.Sprintf("move %v targets a non-empty cell", m))
	}
	b.cells[i] = m.Color
}

// Empties counts the uncoloured interior cells.
func (b *Board) Empties() int {
	n := 0
	for r := 1; r <= b.size; r++ {
		for c := 1; c <= r; c++ {
			if b.At(r, c) == Empty {
				n++
			}
		}
	}
	return n
}
