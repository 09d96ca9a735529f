package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Depth      int
	Trials     int
	Goroutines int
	Duration   time.Duration
	Nodes      int
	Rollouts   int
	Cutoffs    int
	Aborted    bool
}

type MoveMetric struct {
	Step int
	Side int // +1 or -1
	SearchMetric
}

type GameMetric struct {
	ID           string
	Size         int
	StartingSide int
	Loser        int // Side that lost, 0 for a draw
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	TotalMoves   int
}

type Collector interface {
	Start(depth, trials, goroutines int)
	AddNode()
	AddRollouts(n int)
	AddCutoff()
	SetAborted()
	Complete() SearchMetric
}

type collector struct {
	depth      int
	trials     int
	goroutines int
	startTime  time.Time
	nodes      atomic.Int64
	rollouts   atomic.Int64
	cutoffs    atomic.Int64
	aborted    atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth, trials, goroutines int) {
	m.startTime = time.Now()
	m.depth = depth
	m.trials = trials
	m.goroutines = goroutines
	m.nodes.Store(0)
	m.rollouts.Store(0)
	m.cutoffs.Store(0)
	m.aborted.Store(false)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddRollouts(n int) {
	m.rollouts.Add(int64(n))
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) SetAborted() {
	m.aborted.Store(true)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Depth:      m.depth,
		Trials:     m.trials,
		Goroutines: m.goroutines,
		Duration:   time.Since(m.startTime),
		Nodes:      int(m.nodes.Load()),
		Rollouts:   int(m.rollouts.Load()),
		Cutoffs:    int(m.cutoffs.Load()),
		Aborted:    m.aborted.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth, trials, goroutines int) {}
func (m *dummyCollector) AddNode()                            {}
func (m *dummyCollector) AddRollouts(n int)                   {}
func (m *dummyCollector) AddCutoff()                          {}
func (m *dummyCollector) SetAborted()                         {}
func (m *dummyCollector) Complete() SearchMetric              { return SearchMetric{} }
