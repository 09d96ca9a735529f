package communication

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"atropos/game"
)

// ErrInvalidInput is wrapped by every decoding error.
var ErrInvalidInput = errors.New("invalid input")

const lastPlayTag = "LastPlay:"

// Decode parses a position such as
//
//	[13][302][1003][30002][100003][3000002][121212]LastPlay:(1,3,1,3)
//
// Each bracket holds one board row, top row first, one digit per cell. The
// last move is either "null" or a (colour,a,b,c) tuple.
func Decode(input string) (*game.Board, game.Move, error) {
	input = strings.TrimSpace(input)
	i := strings.Index(input, lastPlayTag)
	if i < 0 {
		return nil, game.NoMove, fmt.Errorf("%w: missing %q", ErrInvalidInput, lastPlayTag)
	}

	rows, err := parseRows(input[:i])
	if err != nil {
		return nil, game.NoMove, err
	}
	board, err := game.FromRows(rows)
	if err != nil {
		return nil, game.NoMove, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	last, err := parseMove(input[i+len(lastPlayTag):])
	if err != nil {
		return nil, game.NoMove, err
	}
	if !last.IsZero() {
		if !board.Contains(last) {
			return nil, game.NoMove, fmt.Errorf("%w: last move %v is off a size %d board", ErrInvalidInput, last, board.Size())
		}
		if board.Color(last) == game.Empty {
			return nil, game.NoMove, fmt.Errorf("%w: last move %v targets an empty cell", ErrInvalidInput, last)
		}
	}
	return board, last, nil
}

func parseRows(s string) ([][]game.Cell, error) {
	var rows [][]game.Cell
	var row []game.Cell
	open := false
	for pos, r := range s {
		switch {
		case r == '[':
			if open {
				return nil, fmt.Errorf("%w: nested '[' at offset %d", ErrInvalidInput, pos)
			}
			open = true
			row = []game.Cell{}
		case r == ']':
			if !open {
				return nil, fmt.Errorf("%w: unmatched ']' at offset %d", ErrInvalidInput, pos)
			}
			open = false
			rows = append(rows, row)
		case r >= '0' && r <= '9':
			if !open {
				return nil, fmt.Errorf("%w: cell outside a row at offset %d", ErrInvalidInput, pos)
			}
			row = append(row, game.Cell(r-'0'))
		case r == ' ' || r == ',':
		default:
			return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrInvalidInput, r, pos)
		}
	}
	if open {
		return nil, fmt.Errorf("%w: unterminated row", ErrInvalidInput)
	}
	return rows, nil
}

func parseMove(s string) (game.Move, error) {
	s = strings.TrimSpace(s)
	if s == "null" {
		return game.NoMove, nil
	}
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return game.NoMove, fmt.Errorf("%w: last move %q is neither null nor a tuple", ErrInvalidInput, s)
	}

	fields := strings.Split(s[1:len(s)-1], ",")
	if len(fields) != 4 {
		return game.NoMove, fmt.Errorf("%w: last move %q needs 4 components", ErrInvalidInput, s)
	}
	var values [4]int
	for i, field := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return game.NoMove, fmt.Errorf("%w: last move component %q: %v", ErrInvalidInput, field, err)
		}
		values[i] = v
	}
	if values[0] < int(game.Red) || values[0] > int(game.Green) {
		return game.NoMove, fmt.Errorf("%w: last move colour %d", ErrInvalidInput, values[0])
	}
	return game.Move{Color: game.Cell(values[0]), A: values[1], B: values[2], C: values[3]}, nil
}

// Encode is the inverse of Decode.
func Encode(board *game.Board, last game.Move) string {
	var sb strings.Builder
	for _, row := range board.Rows() {
		sb.WriteByte('[')
		for _, cell := range row {
			sb.WriteByte(byte('0' + cell))
		}
		sb.WriteByte(']')
	}
	sb.WriteString(lastPlayTag)
	if last.IsZero() {
		sb.WriteString("null")
	} else {
		sb.WriteString(last.String())
	}
	return sb.String()
}
