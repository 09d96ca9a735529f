package communication

import (
	"encoding/json"
	"fmt"
	"io"

	"atropos/searcher"
)

// Report is the machine-readable form of a search result.
type Report struct {
	Move    *[4]int `json:"move"` // colour, a, b, c; null when drawn
	Score   int     `json:"score"`
	Lost    bool    `json:"lost"`
	Aborted bool    `json:"aborted"`
}

func NewReport(result searcher.Result) Report {
	r := Report{
		Score:   result.Score,
		Lost:    result.Lost,
		Aborted: result.Aborted,
	}
	if !result.Move.IsZero() {
		m := result.Move
		r.Move = &[4]int{int(m.Color), m.A, m.B, m.C}
	}
	return r
}

// WriteText prints "Lost!" when even the best move loses within the search
// depth, then the best move.
func WriteText(w io.Writer, result searcher.Result) error {
	if result.Lost {
		if _, err := fmt.Fprintln(w, "Lost!"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Best move: %v\n", result.Move)
	return err
}

func WriteJSON(w io.Writer, result searcher.Result) error {
	return json.NewEncoder(w).Encode(NewReport(result))
}
