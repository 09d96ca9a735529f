package communication

import (
	"bytes"
	"testing"

	"atropos/game"
	"atropos/searcher"

	"github.com/stretchr/testify/require"
)

const opening = "[13][302][1003][30002][100003][3000002][121212]"

func TestDecode(t *testing.T) {
	t.Run("opening position without a last move", func(t *testing.T) {
		board, last, err := Decode(opening + "LastPlay:null")

		require.NoError(t, err)
		require.True(t, last.IsZero())
		require.Equal(t, 5, board.Size(), "Size should be the row count minus two")
		require.Equal(t, game.NewBoard(5).Rows(), board.Rows())
	})

	t.Run("position with a last move", func(t *testing.T) {
		input := "[13][302][1003][30002][100003][3001002][121212]LastPlay:(1,1,3,3)"

		board, last, err := Decode(input)

		require.NoError(t, err)
		require.Equal(t, game.Move{Color: game.Red, A: 1, B: 3, C: 3}, last)
		require.Equal(t, game.Red, board.Color(last))
	})

	t.Run("tolerates spaces in the tuple", func(t *testing.T) {
		input := "[13][302][1003][30002][100003][3001002][121212]LastPlay:( 1, 1, 3, 3 )\n"

		_, last, err := Decode(input)

		require.NoError(t, err)
		require.Equal(t, game.Move{Color: game.Red, A: 1, B: 3, C: 3}, last)
	})

	t.Run("round trips through Encode", func(t *testing.T) {
		board := game.NewBoard(4)
		last := game.Move{Color: game.Blue, A: 2, B: 2, C: 2}
		board.Apply(last)

		decoded, decodedLast, err := Decode(Encode(board, last))

		require.NoError(t, err)
		require.Equal(t, board.Rows(), decoded.Rows())
		require.Equal(t, last, decodedLast)
	})

	invalid := map[string]string{
		"missing last play":     opening,
		"garbage last play":     opening + "LastPlay:nope",
		"short tuple":           opening + "LastPlay:(1,2,3)",
		"non numeric tuple":     opening + "LastPlay:(1,a,3,3)",
		"colour out of range":   opening + "LastPlay:(4,1,3,3)",
		"coordinates off board": opening + "LastPlay:(1,1,1,1)",
		"last move on empty":    opening + "LastPlay:(1,1,3,3)",
		"overflowing tuple":     "[13][302][1003][30002][12121]LastPlay:(1,9223372036854775807,9223372036854775807,7)",
		"unterminated row":      "[13][302LastPlay:null",
		"nested row":            "[1[3]]LastPlay:null",
		"stray character":       "[13]x[302]LastPlay:null",
		"cell outside row":      "1[13]LastPlay:null",
		"too few rows":          "[13][12]LastPlay:null",
		"short row":             "[13][30][1003][1212]LastPlay:null",
		"cell value too big":    "[13][372][1003][1212]LastPlay:null",
	}
	for name, input := range invalid {
		t.Run(name, func(t *testing.T) {
			_, _, err := Decode(input)

			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestWriteText(t *testing.T) {
	t.Run("best move", func(t *testing.T) {
		var buf bytes.Buffer
		result := searcher.Result{Move: game.Move{Color: game.Blue, A: 1, B: 2, C: 3}, Score: 40}

		require.NoError(t, WriteText(&buf, result))

		require.Equal(t, "Best move: (2,1,2,3)\n", buf.String())
	})

	t.Run("lost position", func(t *testing.T) {
		var buf bytes.Buffer
		result := searcher.Result{Move: game.Move{Color: game.Red, A: 1, B: 1, C: 3}, Score: -10000, Lost: true}

		require.NoError(t, WriteText(&buf, result))

		require.Equal(t, "Lost!\nBest move: (1,1,1,3)\n", buf.String())
	})

	t.Run("drawn position", func(t *testing.T) {
		var buf bytes.Buffer

		require.NoError(t, WriteText(&buf, searcher.Result{}))

		require.Equal(t, "Best move: None\n", buf.String())
	})
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	result := searcher.Result{Move: game.Move{Color: game.Green, A: 3, B: 1, C: 2}, Score: 7}

	require.NoError(t, WriteJSON(&buf, result))
	require.JSONEq(t, `{"move":[3,3,1,2],"score":7,"lost":false,"aborted":false}`, buf.String())

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, searcher.Result{}))
	require.JSONEq(t, `{"move":null,"score":0,"lost":false,"aborted":false}`, buf.String())
}
