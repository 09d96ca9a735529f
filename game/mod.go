package game

import "fmt"

// Cell is the content of one slot of the board storage.
type Cell int8

const (
	Empty Cell = 0
	Red   Cell = 1
	Blue  Cell = 2
	Green Cell = 3

	// Void marks storage slots outside the jagged board shape. It never divides
	// LossProduct, so it can't take part in a losing triple.
	Void Cell = -1
)

// Colors lists the playable colours in the order moves are generated.
var Colors = [3]Cell{Red, Blue, Green}

// LossProduct is the product of a losing triple: 1*2*3.
const LossProduct = 6

// Move places Color at the triangular coordinate (A, B, C), with A+B+C = size+2.
type Move struct {
	Color Cell
	A     int
	B     int
	C     int
}

// NoMove is used for "no previous move" at the start of a game and for "no move" results.
var NoMove = Move{}

func (m Move) IsZero() bool {
	return m == NoMove
}

// Valid reports whether m is a well-formed move on a board of the given size.
func (m Move) Valid(size int) bool {
	if m.Color < Red || m.Color > Green {
		return false
	}
	// Bounding each coordinate first keeps the sum from overflowing
	if m.A < 1 || m.B < 1 || m.C < 1 || m.A > size || m.B > size || m.C > size {
		return false
	}
	return m.A+m.B+m.C == size+2
}

func (m Move) String() string {
	if m.IsZero() {
		return "None"
	}
	return fmt.Sprintf("(%d,%d,%d,%d)", m.Color, m.A, m.B, m.C)
}
