package simulator

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "se4x/simulator"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// instruments report through the global OTel meter; they are no-ops unless a provider is installed.
type instruments struct {
	fights metric.Int64Counter
	faults metric.Int64Counter
	rounds metric.Int64Histogram
}

func newInstruments() (*instruments, error) {
	m := meter()
	in := &instruments{}

	var err error
	in.fights, err = m.Int64Counter(
		"simulator.fights",
		metric.WithDescription("Total fights resolved"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fights counter: %w", err)
	}

	in.faults, err = m.Int64Counter(
		"simulator.faults",
		metric.WithDescription("Trials aborted by an internal consistency fault"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating faults counter: %w", err)
	}

	in.rounds, err = m.Int64Histogram(
		"simulator.fight.rounds",
		metric.WithDescription("Combat rounds played per fight"),
		metric.WithUnit("{round}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rounds histogram: %w", err)
	}

	return in, nil
}

func (in *instruments) recordFight(ctx context.Context, outcome string, rounds int) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	in.fights.Add(ctx, 1, attrs)
	in.rounds.Record(ctx, int64(rounds), attrs)
}

func (in *instruments) recordFault(ctx context.Context) {
	in.faults.Add(ctx, 1)
}
