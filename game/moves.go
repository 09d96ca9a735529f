package game

// AvailableMoves lists the legal moves after last.
//
// When last is a move, the next move must go into an empty cell adjacent to it
// if there is one. Otherwise (start of the game, or last is surrounded) any
// empty cell may be played. Every cell yields one move per colour.
func (b *Board) AvailableMoves(last Move) []Move {
	if !last.IsZero() {
		var adjacent [6]Move
		n := 0
		add := func(a, bb, c int) {
			adjacent[n] = Move{A: a, B: bb, C: c}
			n++
		}
		if last.B > 1 {
			add(last.A, last.B-1, last.C+1)
			if last.A < b.size {
				add(last.A+1, last.B-1, last.C)
			}
		}
		if last.C > 1 {
			if last.A < b.size {
				add(last.A+1, last.B, last.C-1)
			}
			add(last.A, last.B+1, last.C-1)
		}
		if last.A > 1 {
			add(last.A-1, last.B, last.C+1)
			add(last.A-1, last.B+1, last.C)
		}

		moves := make([]Move, 0, 3*n)
		for _, cell := range adjacent[:n] {
			if b.Color(cell) == Empty {
				moves = appendColors(moves, cell)
			}
		}
		if len(moves) > 0 {
			return moves
		}
	}

	moves := make([]Move, 0, 3*b.Empties())
	for a := 1; a <= b.size; a++ {
		for bb := 1; bb <= b.size-a+1; bb++ {
			cell := Move{A: a, B: bb, C: b.size - a - bb + 2}
			if b.Color(cell) == Empty {
				moves = appendColors(moves, cell)
			}
		}
	}
	return moves
}

func appendColors(moves []Move, cell Move) []Move {
	for _, color := range Colors {
		cell.Color = color
		moves = append(moves, cell)
	}
	return moves
}

// HasLost reports whether m, already applied, completes a tri-coloured
// triangle with two adjacent neighbours.
func (b *Board) HasLost(m Move) bool {
	return losing(m.Color, b.SurroundingColors(m))
}

func losing(color Cell, surround [6]Cell) bool {
	for i := range surround {
		prev := surround[(i+5)%6]
		if int(color)*int(prev)*int(surround[i]) == LossProduct {
			return true
		}
	}
	return false
}
