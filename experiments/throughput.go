package experiments

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"se4x/experiments/metrics"
	"se4x/simulator"
)

var workerCounts = []int{1, 2, 4, 8, 16, 32}

// RunThroughputExperiment measures fights per second for increasing worker counts.
// Results are identical across runs since trial seeds do not depend on scheduling.
func RunThroughputExperiment(ctx context.Context, setup Setup) error {
	name := "throughput"
	log.Info().Msg("starting throughput experiment...")

	summaries := []metrics.SummaryRecord{}
	for _, workers := range workerCounts {
		sim, err := simulator.New(setup.Battle.Attacker, setup.Battle.Defender,
			simulator.WithTrials(setup.Trials),
			simulator.WithWorkers(workers),
			simulator.WithSeed(setup.Seed),
			simulator.WithEnvironment(setup.Battle.Environment),
			simulator.WithMetrics(),
		)
		if err != nil {
			return fmt.Errorf("failed to create simulator: %w", err)
		}
		summary, err := sim.Run(ctx)
		if err != nil {
			return fmt.Errorf("%d workers: %w", workers, err)
		}

		summaries = append(summaries, summary.SummaryRecord(setup.Battle.Name))
		log.Info().Msgf("completed %d workers: %.0f fights/s", workers, summary.Metric.Throughput())
	}

	log.Info().Msg("completed throughput experiment")
	return store(setup.OutDir, name, summaries)
}
