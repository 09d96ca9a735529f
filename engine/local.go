package engine

import (
	"context"
	"fmt"
	"time"

	"atropos/experiments/metrics"
	"atropos/game"
	"atropos/searcher/agent"
	"atropos/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Sides in seat order: agents[0] plays +1, agents[1] plays -1.
var sides = [2]int{1, -1}

type LocalEngine struct {
	Board  *game.Board
	Last   game.Move
	Agents [2]agent.Agent
	// StartingSide is the side making the first move, +1 unless set otherwise
	StartingSide int
}

func NewLocalEngine(size int, first, second agent.Agent) *LocalEngine {
	return &LocalEngine{
		Board:        game.NewBoard(size),
		Last:         game.NoMove,
		Agents:       [2]agent.Agent{first, second},
		StartingSide: 1,
	}
}

// Run executes the game loop until a move loses or no move is left. It returns
// the losing side, 0 for a draw.
func (e *LocalEngine) Run(ctx context.Context) (int, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		ID:           uuid.NewString(),
		Size:         e.Board.Size(),
		StartingSide: e.StartingSide,
		StartTime:    time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("game %s: side %+d is starting on a size %d board", gameMetric.ID, e.StartingSide, e.Board.Size())

	side := e.StartingSide
	loser := 0
	// Every move fills a cell, so the game can't outlast the empty cells
	maxMoves := e.Board.Empties()
	for step := 1; step <= maxMoves; step++ {
		if err := ctx.Err(); err != nil {
			return 0, gameMetric, moveMetrics, err
		}
		legal := e.Board.AvailableMoves(e.Last)
		if len(legal) == 0 {
			break
		}

		a := e.Agents[seat(side)]
		move, searchMetric, err := a.FindMove(ctx, e.Board, e.Last, side)
		if err != nil {
			return 0, gameMetric, moveMetrics, fmt.Errorf("side %+d failed to find a move: %w", side, err)
		}
		if !utils.Contains(legal, move) {
			return 0, gameMetric, moveMetrics, fmt.Errorf("side %+d played illegal move %v", side, move)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Side:         side,
			SearchMetric: searchMetric,
		})

		e.Board.Apply(move)
		e.Last = move
		log.Debug().Msgf("game %s: step %d side %+d played %v", gameMetric.ID, step, side, move)

		if e.Board.HasLost(move) {
			loser = side
			break
		}
		side = -side
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.Loser = loser

	if loser != 0 {
		log.Info().Msgf("game %s: side %+d lost after %d moves", gameMetric.ID, loser, gameMetric.TotalMoves)
	} else {
		log.Info().Msgf("game %s: drawn after %d moves", gameMetric.ID, gameMetric.TotalMoves)
	}
	return loser, gameMetric, moveMetrics, nil
}

func seat(side int) int {
	if side == sides[0] {
		return 0
	}
	return 1
}
