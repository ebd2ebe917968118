package simulator

import (
	"fmt"
	"strings"

	"se4x/game"
)

// Bucket counts the samples in which exactly Hits dice succeeded.
type Bucket struct {
	Hits    int
	Count   int
	Percent float64
}

type Distribution []Bucket

// RollDistribution rolls dice dice per sample and histograms how many hit at threshold.
// Buckets with no samples are omitted.
func RollDistribution(dice, threshold, samples int, r game.Roller) (Distribution, error) {
	if dice < 0 || samples <= 0 {
		return nil, fmt.Errorf("invalid distribution request: %d dice, %d samples", dice, samples)
	}

	counts := make([]int, dice+1)
	for i := 0; i < samples; i++ {
		hits := 0
		for d := 0; d < dice; d++ {
			if r.Roll() <= threshold {
				hits++
			}
		}
		counts[hits]++
	}

	var dist Distribution
	for hits, count := range counts {
		if count == 0 {
			continue
		}
		dist = append(dist, Bucket{
			Hits:    hits,
			Count:   count,
			Percent: 100 * float64(count) / float64(samples),
		})
	}
	return dist, nil
}

func (d Distribution) String() string {
	var b strings.Builder
	for i, bucket := range d {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d: [%d, %.0f%%]", bucket.Hits, bucket.Count, bucket.Percent)
	}
	return "{" + b.String() + "}"
}
