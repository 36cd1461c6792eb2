package usecase

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matks/traces/internal/domain"
)

func TestWriteReport(t *testing.T) {
	table := domain.NewTable()
	table.Add(&domain.User{Login: "low", Contributions: 1, Repositories: map[string]int{"acme/r1": 1}})
	table.Add(&domain.User{Login: "high", Contributions: 8, Repositories: map[string]int{"acme/r1": 3, "acme/r2": 5}})
	table.Add(&domain.User{Login: "mid", Contributions: 4, Repositories: map[string]int{"acme/r2": 4}})

	path := filepath.Join(t.TempDir(), "contributors.json")
	require.NoError(t, WriteReport(table, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var report []map[string]any
	require.NoError(t, json.Unmarshal(data, &report))
	require.Len(t, report, 3)

	// Sorted by contribution count descending.
	assert.Equal(t, "high", report[0]["login"])
	assert.Equal(t, "mid", report[1]["login"])
	assert.Equal(t, "low", report[2]["login"])
	for i := 1; i < len(report); i++ {
		assert.LessOrEqual(t, report[i]["contributions"], report[i-1]["contributions"])
	}

	// Overwrites an existing artifact.
	require.NoError(t, WriteReport(domain.NewTable(), path))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestSummarize(t *testing.T) {
	testCases := []struct {
		name     string
		counts   []int
		expected Summary
	}{
		{
			name:     "typical run",
			counts:   []int{8, 4, 1, 3},
			expected: Summary{Users: 4, Mean: 4, Median: 3.5, Max: 8},
		},
		{
			name:     "no users",
			counts:   nil,
			expected: Summary{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			users := make([]*domain.User, 0, len(tc.counts))
			for _, count := range tc.counts {
				users = append(users, &domain.User{Contributions: count})
			}

			summary, err := Summarize(users)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, summary)
		})
	}
}
