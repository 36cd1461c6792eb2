package usecase

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/montanaflynn/stats"

	"github.com/matks/traces/internal/domain"
)

// OutputPath is the fixed location of the report artifact, relative to the
// working directory.
const OutputPath = "contributors.json"

// WriteReport sorts the table by contribution count descending and writes
// the pretty-printed report to path, overwriting any previous artifact.
func WriteReport(table *domain.Table, path string) error {
	data, err := json.MarshalIndent(table.Sorted(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Summary holds descriptive statistics over the aggregated contribution
// counts, shown in the run summary line.
type Summary struct {
	Users  int
	Mean   float64
	Median float64
	Max    float64
}

// Summarize computes descriptive statistics for the given users. An empty
// input yields a zero Summary.
func Summarize(users []*domain.User) (Summary, error) {
	if len(users) == 0 {
		return Summary{}, nil
	}
	counts := make([]float64, 0, len(users))
	for _, user := range users {
		counts = append(counts, float64(user.Contributions))
	}

	mean, err := stats.Mean(counts)
	if err != nil {
		return Summary{}, fmt.Errorf("compute mean: %w", err)
	}
	median, err := stats.Median(counts)
	if err != nil {
		return Summary{}, fmt.Errorf("compute median: %w", err)
	}
	max, err := stats.Max(counts)
	if err != nil {
		return Summary{}, fmt.Errorf("compute max: %w", err)
	}
	return Summary{Users: len(users), Mean: mean, Median: median, Max: max}, nil
}
