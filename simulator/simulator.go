package simulator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"se4x/engine"
	"se4x/experiments/metrics"
	"se4x/game"
	"se4x/meta"
)

type Option func(s *Simulator)

// Simulator runs many independent fights between the same two fleets.
type Simulator struct {
	attacker engine.Fleet
	defender engine.Fleet

	trials    int
	workers   int
	seed      uint64
	maxRounds int
	env       engine.Environment
	rules     game.Rules
	dice      func(seed uint64) game.Roller
	metrics   metrics.Collector
	otel      *instruments
}

func WithTrials(trials int) Option {
	return func(s *Simulator) {
		if trials > 0 {
			s.trials = trials
		}
	}
}

func WithWorkers(workers int) Option {
	return func(s *Simulator) {
		if workers > 0 {
			s.workers = workers
		}
	}
}

// WithSeed fixes the base seed; trial i rolls with seed+i. Zero keeps the time-based default.
func WithSeed(seed uint64) Option {
	return func(s *Simulator) {
		if seed != 0 {
			s.seed = seed
		}
	}
}

func WithMaxRounds(rounds int) Option {
	return func(s *Simulator) {
		if rounds > 0 {
			s.maxRounds = rounds
		}
	}
}

func WithEnvironment(env engine.Environment) Option {
	return func(s *Simulator) {
		s.env = env
	}
}

func WithRules(rules game.Rules) Option {
	return func(s *Simulator) {
		if rules != nil {
			s.rules = rules
		}
	}
}

// WithDice replaces the seeded roller built for each trial.
func WithDice(newRoller func(seed uint64) game.Roller) Option {
	return func(s *Simulator) {
		if newRoller != nil {
			s.dice = newRoller
		}
	}
}

func WithMetrics() Option {
	return func(s *Simulator) {
		s.metrics = metrics.NewCollector()
	}
}

// New checks that the fleets can fight at all before any trial is run.
func New(attacker, defender engine.Fleet, options ...Option) (*Simulator, error) {
	s := &Simulator{ // Default values
		attacker:  attacker,
		defender:  defender,
		trials:    meta.Trials,
		workers:   meta.Workers,
		seed:      uint64(time.Now().UnixNano()),
		maxRounds: meta.MaxRounds,
		rules:     game.NewStandardRules(),
		dice:      game.NewSeededRoller,
		metrics:   metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}

	if _, err := s.newFight(game.FixedRoller(game.DieSides)); err != nil {
		return nil, err
	}

	in, err := newInstruments()
	if err != nil {
		return nil, err
	}
	s.otel = in
	return s, nil
}

func (s *Simulator) newFight(dice game.Roller) (*engine.Fight, error) {
	return engine.NewFight(s.attacker, s.defender,
		engine.WithRoller(dice),
		engine.WithRules(s.rules),
		engine.WithEnvironment(s.env),
		engine.WithMaxRounds(s.maxRounds),
	)
}

// Run plays every trial and aggregates the outcomes. Faulted trials are kept
// in the records but excluded from win rates and loss statistics.
func (s *Simulator) Run(ctx context.Context) (Summary, error) {
	records := make([]Record, s.trials)

	task := make(chan int, s.trials)
	for i := 0; i < s.trials; i++ {
		task <- i
	}
	close(task)

	var (
		wg      sync.WaitGroup
		errOnce sync.Once
		runErr  error
	)
	s.metrics.Start(s.workers, s.trials)
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := range task {
				if ctx.Err() != nil {
					return
				}
				rec, err := s.trial(ctx, i)
				if err != nil {
					errOnce.Do(func() { runErr = err })
					return
				}
				records[i] = rec
			}
		}()
	}
	wg.Wait()
	metric := s.metrics.Complete()

	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	if runErr != nil {
		return Summary{}, runErr
	}

	summary := summarize(records)
	summary.Seed = s.seed
	summary.Metric = metric
	log.Debug().
		Int("trials", s.trials).
		Int("workers", s.workers).
		Dur("duration", metric.Duration).
		Msgf("Simulated %d fights", summary.Fights)
	return summary, nil
}

// trial runs fight i. Only setup errors are returned; faults are recorded.
func (s *Simulator) trial(ctx context.Context, i int) (Record, error) {
	seed := s.seed + uint64(i)
	rec := Record{Trial: i, Seed: seed}

	f, err := s.newFight(s.dice(seed))
	if err != nil {
		return rec, fmt.Errorf("trial %d: %w", i, err)
	}

	res, err := f.Run()
	if errors.Is(err, engine.ErrInternalFault) {
		log.Warn().Err(err).Int("trial", i).Uint64("seed", seed).Msg("Trial aborted")
		rec.Fault = err
		s.metrics.AddFault()
		s.otel.recordFault(ctx)
		return rec, nil
	}
	if err != nil {
		return rec, fmt.Errorf("trial %d: %w", i, err)
	}

	rec.Outcome = res.Outcome
	rec.Attackers = res.Attackers
	rec.Defenders = res.Defenders
	rec.AttackerLost = res.AttackerLost
	rec.DefenderLost = res.DefenderLost
	rec.Rounds = res.Rounds

	s.metrics.AddFight(res.Rounds)
	if res.Outcome == engine.Stalemate {
		s.metrics.AddStalemate()
	}
	s.otel.recordFight(ctx, res.Outcome.String(), res.Rounds)
	return rec, nil
}
