package experiments

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"se4x/experiments/metrics"
	"se4x/scenario"
	"se4x/simulator"
)

// MaxTechLevel is the highest attack/defense level swept.
const MaxTechLevel = 3

// Setup is shared by every run of an experiment.
type Setup struct {
	Battle  scenario.Battle
	Trials  int
	Workers int
	Seed    uint64 // every run reuses the same base seed
	OutDir  string
}

// RunTechSweep replays the battle for every attacker attack/defense tech combination
// up to MaxTechLevel, keeping the defender fixed.
func RunTechSweep(ctx context.Context, setup Setup) error {
	name := "tech_sweep"
	log.Info().Msgf("starting %s experiment...", name)

	summaries := []metrics.SummaryRecord{}
	for attack := 0; attack <= MaxTechLevel; attack++ {
		for defense := 0; defense <= MaxTechLevel; defense++ {
			attacker := setup.Battle.Attacker
			attacker.Upgrades.Attack = attack
			attacker.Upgrades.Defense = defense

			sim, err := simulator.New(attacker, setup.Battle.Defender,
				simulator.WithTrials(setup.Trials),
				simulator.WithWorkers(setup.Workers),
				simulator.WithSeed(setup.Seed),
				simulator.WithEnvironment(setup.Battle.Environment),
				simulator.WithMetrics(),
			)
			if err != nil {
				return fmt.Errorf("failed to create simulator: %w", err)
			}
			summary, err := sim.Run(ctx)
			if err != nil {
				return fmt.Errorf("attack %d defense %d: %w", attack, defense, err)
			}

			label := fmt.Sprintf("%s att%d-def%d", setup.Battle.Name, attack, defense)
			summaries = append(summaries, summary.SummaryRecord(label))
			log.Info().Msgf("completed %s: %s", label, summary)
		}
	}

	log.Info().Msgf("completed %s experiment", name)
	return store(setup.OutDir, name, summaries)
}

func store(outDir, name string, summaries []metrics.SummaryRecord) error {
	writer, err := metrics.NewWriter(filepath.Join(outDir, name))
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteSummaries(summaries)
	if err != nil {
		return fmt.Errorf("failed to write summaries: %w", err)
	}
	log.Info().Msgf("stored summaries in %s", writer.Dir())
	return nil
}
