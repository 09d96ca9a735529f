package searcher

import (
	"context"
	"testing"

	"atropos/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// lastCellPosition returns a size 2 board with only the top cell left, where
// red and blue lose on the spot and green fills the board safely.
func lastCellPosition() (*game.Board, game.Move) {
	board := game.NewBoard(2)
	board.Apply(game.Move{Color: game.Green, A: 1, B: 1, C: 2})
	last := game.Move{Color: game.Green, A: 1, B: 2, C: 1}
	board.Apply(last)
	return board, last
}

func fullBoard() (*game.Board, game.Move) {
	board, _ := lastCellPosition()
	last := game.Move{Color: game.Green, A: 2, B: 1, C: 1}
	board.Apply(last)
	return board, last
}

func TestEvaluate(t *testing.T) {
	t.Run("playouts that cannot move credit the side to play", func(t *testing.T) {
		board, last := fullBoard()
		evaluator := NewEvaluator(10, 1, rand.New(rand.NewSource(1)))

		won, err := evaluator.Evaluate(context.Background(), board, last, 1)
		require.NoError(t, err)
		lost, err := evaluator.Evaluate(context.Background(), board, last, -1)
		require.NoError(t, err)

		require.Equal(t, 10, won, "Every trial should start from the given side")
		require.Equal(t, 0, lost)
	})

	t.Run("score stays within the number of trials", func(t *testing.T) {
		for _, goroutines := range []int{1, 3, 8} {
			board := game.NewBoard(6)
			move := game.Move{Color: game.Red, A: 3, B: 2, C: 3}
			board.Apply(move)
			evaluator := NewEvaluator(50, goroutines, rand.New(rand.NewSource(2)))

			score, err := evaluator.Evaluate(context.Background(), board, move, -1)

			require.NoError(t, err)
			require.GreaterOrEqual(t, score, 0)
			require.LessOrEqual(t, score, 50)
		}
	})

	t.Run("same seed gives the same score", func(t *testing.T) {
		board := game.NewBoard(7)
		move := game.Move{Color: game.Blue, A: 4, B: 2, C: 3}
		board.Apply(move)

		scores := make([]int, 2)
		for i := range scores {
			evaluator := NewEvaluator(40, 4, rand.New(rand.NewSource(42)))
			for j := 0; j < 3; j++ {
				score, err := evaluator.Evaluate(context.Background(), board, move, 1)
				require.NoError(t, err)
				scores[i] += score
			}
		}

		require.Equal(t, scores[0], scores[1])
	})

	t.Run("does not modify the board", func(t *testing.T) {
		board := game.NewBoard(5)
		move := game.Move{Color: game.Red, A: 1, B: 1, C: 5}
		board.Apply(move)
		before := board.Rows()

		_, err := NewEvaluator(20, 2, nil).Evaluate(context.Background(), board, move, 1)

		require.NoError(t, err)
		require.Equal(t, before, board.Rows())
	})

	t.Run("stops on a cancelled context", func(t *testing.T) {
		board := game.NewBoard(5)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewEvaluator(20, 2, nil).Evaluate(ctx, board, game.NoMove, 1)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("panics without trials", func(t *testing.T) {
		require.Panics(t, func() {
			NewEvaluator(0, 1, nil)
		})
	})
}

func TestPlayout(t *testing.T) {
	t.Run("ends on a losing move or a full board", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		for i := 0; i < 100; i++ {
			board := game.NewBoard(5)

			side := playout(board, game.NoMove, 1, rng)

			require.Contains(t, []int{-1, 1}, side)
			lost := false
			for _, m := range lastMoves(board) {
				if board.HasLost(m) {
					lost = true
				}
			}
			require.True(t, lost || board.Empties() == 0, "Playout should run to the end of the game")
		}
	})

	t.Run("returns the side to play when the last move already lost", func(t *testing.T) {
		board := game.NewBoard(3)
		m := game.Move{Color: game.Blue, A: 1, B: 1, C: 3}
		board.Apply(m)

		require.Equal(t, -1, playout(board, m, -1, rand.New(rand.NewSource(1))))
	})
}

// lastMoves lists the coloured interior cells of board as moves.
func lastMoves(board *game.Board) []game.Move {
	var moves []game.Move
	size := board.Size()
	for a := 1; a <= size; a++ {
		for b := 1; b <= size-a+1; b++ {
			m := game.Move{A: a, B: b, C: size + 2 - a - b}
			if color := board.Color(m); color != game.Empty {
				m.Color = color
				moves = append(moves, m)
			}
		}
	}
	return moves
}
