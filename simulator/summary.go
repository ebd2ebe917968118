package simulator

import (
	"fmt"

	"se4x/engine"
	"se4x/experiments/metrics"
)

// Record is the outcome of one trial.
type Record struct {
	Trial        int
	Seed         uint64
	Outcome      engine.Outcome
	Attackers    int
	Defenders    int
	AttackerLost int
	DefenderLost int
	Rounds       int
	Fault        error // non-nil when the trial was aborted
}

// Summary aggregates a batch. Rates are fractions of the fights that completed.
type Summary struct {
	Seed       uint64
	Trials     int
	Fights     int
	Faults     int
	Stalemates int

	AttackerWins    int
	DefenderWins    int
	AttackerWinRate float64
	DefenderWinRate float64

	AttackerLost Stats
	DefenderLost Stats
	Rounds       Stats

	Metric  metrics.RunMetric
	Records []Record `json:"-"`
}

func summarize(records []Record) Summary {
	s := Summary{Trials: len(records), Records: records}

	var attLost, defLost, rounds []int
	for _, rec := range records {
		if rec.Fault != nil {
			s.Faults++
			continue
		}
		s.Fights++
		switch rec.Outcome {
		case engine.AttackerWins:
			s.AttackerWins++
		case engine.DefenderWins:
			s.DefenderWins++
		case engine.Stalemate:
			s.Stalemates++
		}
		attLost = append(attLost, rec.AttackerLost)
		defLost = append(defLost, rec.DefenderLost)
		rounds = append(rounds, rec.Rounds)
	}

	if s.Fights > 0 {
		s.AttackerWinRate = float64(s.AttackerWins) / float64(s.Fights)
		s.DefenderWinRate = float64(s.DefenderWins) / float64(s.Fights)
	}
	s.AttackerLost = calcStats(attLost)
	s.DefenderLost = calcStats(defLost)
	s.Rounds = calcStats(rounds)
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%5d sims, ATT won %2.0f%% [lost:%.1f], DEF won %2.0f%% [lost:%.1f]",
		s.Fights,
		100*s.AttackerWinRate, s.AttackerLost.Mean,
		100*s.DefenderWinRate, s.DefenderLost.Mean,
	)
}

// CSVLine is the compact one-line form, convenient for pasting into a spreadsheet.
func (s Summary) CSVLine() string {
	return fmt.Sprintf("%2.1f%%,%.1f,%2.1f%%,%.1f",
		100*s.AttackerWinRate, s.AttackerLost.Mean,
		100*s.DefenderWinRate, s.DefenderLost.Mean,
	)
}

// TrialRecords converts the per-trial records for CSV export.
func (s Summary) TrialRecords() []metrics.TrialRecord {
	out := make([]metrics.TrialRecord, len(s.Records))
	for i, rec := range s.Records {
		out[i] = metrics.TrialRecord{
			Trial:        rec.Trial,
			Seed:         rec.Seed,
			Attackers:    rec.Attackers,
			Defenders:    rec.Defenders,
			AttackerLost: rec.AttackerLost,
			DefenderLost: rec.DefenderLost,
			Rounds:       rec.Rounds,
		}
		if rec.Fault != nil {
			out[i].Outcome = "fault"
			out[i].Fault = rec.Fault.Error()
		} else {
			out[i].Outcome = rec.Outcome.String()
		}
	}
	return out
}

func (s Summary) SummaryRecord(scenario string) metrics.SummaryRecord {
	return metrics.SummaryRecord{
		Scenario:         scenario,
		Seed:             s.Seed,
		Trials:           s.Trials,
		Fights:           s.Fights,
		Faults:           s.Faults,
		Stalemates:       s.Stalemates,
		AttackerWinRate:  s.AttackerWinRate,
		DefenderWinRate:  s.DefenderWinRate,
		AttackerLostMean: s.AttackerLost.Mean,
		DefenderLostMean: s.DefenderLost.Mean,
		RoundsMean:       s.Rounds.Mean,
		RunMetric:        s.Metric,
	}
}
