package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type TrialRecord struct {
	Trial        int
	Seed         uint64
	Outcome      string
	Attackers    int // ships left
	Defenders    int
	AttackerLost int
	DefenderLost int
	Rounds       int
	Fault        string // empty unless the trial was aborted
}

type SummaryRecord struct {
	Scenario         string
	Seed             uint64
	Trials           int
	Fights           int
	Faults           int
	Stalemates       int
	AttackerWinRate  float64
	DefenderWinRate  float64
	AttackerLostMean float64
	DefenderLostMean float64
	RoundsMean       float64
	RunMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped subfolder of root for one run.
func NewWriter(root string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteTrialRecords(records []TrialRecord) error {
	header := []string{"trial", "seed", "outcome", "attackers", "defenders",
		"attacker_lost", "defender_lost", "rounds", "fault"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Trial),
			strconv.FormatUint(record.Seed, 10),
			record.Outcome,
			strconv.Itoa(record.Attackers),
			strconv.Itoa(record.Defenders),
			strconv.Itoa(record.AttackerLost),
			strconv.Itoa(record.DefenderLost),
			strconv.Itoa(record.Rounds),
			record.Fault,
		})
	}
	return w.write("trial_records.csv", header, rows)
}

func (w *Writer) WriteSummaries(records []SummaryRecord) error {
	header := []string{"scenario", "seed", "workers", "trials", "fights", "faults", "stalemates",
		"attacker_win_rate", "defender_win_rate", "attacker_lost", "defender_lost",
		"rounds", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Scenario,
			strconv.FormatUint(record.Seed, 10),
			strconv.Itoa(record.Workers),
			strconv.Itoa(record.Trials),
			strconv.Itoa(record.Fights),
			strconv.Itoa(record.Faults),
			strconv.Itoa(record.Stalemates),
			formatFloat(record.AttackerWinRate),
			formatFloat(record.DefenderWinRate),
			formatFloat(record.AttackerLostMean),
			formatFloat(record.DefenderLostMean),
			formatFloat(record.RoundsMean),
			record.Duration.String(),
		})
	}
	return w.write("summaries.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	// Create a file
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
