package metrics

import (
	"sync/atomic"
	"time"
)

// RunMetric describes how a batch of trials was executed, not its combat results.
type RunMetric struct {
	Workers    int
	Trials     int
	Duration   time.Duration
	Fights     int // trials that reached a combat outcome
	Faults     int
	Stalemates int
	Rounds     int // summed over completed fights
}

// Throughput returns completed trials per second.
func (m RunMetric) Throughput() float64 {
	if m.Duration <= 0 {
		return 0
	}
	return float64(m.Fights+m.Faults) / m.Duration.Seconds()
}

type Collector interface {
	Start(workers, trials int)
	AddFight(rounds int)
	AddStalemate()
	AddFault()
	Complete() RunMetric
}

type collector struct {
	workers    int
	trials     int
	startTime  time.Time
	fights     atomic.Int32
	faults     atomic.Int32
	stalemates atomic.Int32
	rounds     atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(workers, trials int) {
	m.startTime = time.Now()
	m.workers = workers
	m.trials = trials
}

func (m *collector) AddFight(rounds int) {
	m.fights.Add(1)
	m.rounds.Add(int64(rounds))
}

// AddStalemate counts a fight that hit the round limit; it is also counted by AddFight.
func (m *collector) AddStalemate() {
	m.stalemates.Add(1)
}

func (m *collector) AddFault() {
	m.faults.Add(1)
}

func (m *collector) Complete() RunMetric {
	return RunMetric{
		Workers:    m.workers,
		Trials:     m.trials,
		Duration:   time.Since(m.startTime),
		Fights:     int(m.fights.Load()),
		Faults:     int(m.faults.Load()),
		Stalemates: int(m.stalemates.Load()),
		Rounds:     int(m.rounds.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(workers, trials int) {}
func (m *dummyCollector) AddFight(rounds int)       {}
func (m *dummyCollector) AddStalemate()             {}
func (m *dummyCollector) AddFault()                 {}
func (m *dummyCollector) Complete() RunMetric       { return RunMetric{} }
