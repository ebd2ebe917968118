package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts concurrent fights", func(t *testing.T) {
		c := NewCollector()
		c.Start(4, 100)

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 25; j++ {
					c.AddFight(3)
				}
			}()
		}
		wg.Wait()
		c.AddStalemate()
		c.AddFault()
		m := c.Complete()

		require.Equal(t, 4, m.Workers)
		require.Equal(t, 100, m.Trials)
		require.Equal(t, 100, m.Fights)
		require.Equal(t, 300, m.Rounds)
		require.Equal(t, 1, m.Stalemates)
		require.Equal(t, 1, m.Faults)
		require.Positive(t, m.Duration)
	})

	t.Run("dummy collector records nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(1, 1)
		c.AddFight(1)

		require.Equal(t, RunMetric{}, c.Complete())
		require.Zero(t, c.Complete().Throughput())
	})
}

func readCSV(t *testing.T, path string) [][]string {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root)
	require.NoError(t, err)
	require.DirExists(t, w.Dir())

	t.Run("writes trial records", func(t *testing.T) {
		err := w.WriteTrialRecords([]TrialRecord{
			{Trial: 0, Seed: 7, Outcome: "attacker", Attackers: 2, DefenderLost: 12, Rounds: 3},
			{Trial: 1, Seed: 8, Outcome: "fault", Fault: "boom"},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "trial_records.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, "trial", rows[0][0])
		require.Equal(t, []string{"0", "7", "attacker", "2", "0", "0", "12", "3", ""}, rows[1])
		require.Equal(t, "boom", rows[2][8])
	})

	t.Run("writes summaries", func(t *testing.T) {
		err := w.WriteSummaries([]SummaryRecord{{
			Scenario:        "duel",
			Trials:          10,
			Fights:          10,
			AttackerWinRate: 0.5,
			RunMetric:       RunMetric{Workers: 2},
		}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "summaries.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, "duel", rows[1][0])
		require.Equal(t, "2", rows[1][2])
		require.Equal(t, "10", rows[1][3])
		require.Equal(t, "0.5000", rows[1][7])
	})
}
