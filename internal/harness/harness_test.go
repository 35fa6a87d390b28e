package harness

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/matex/internal/material"
	"github.com/roach88/matex/internal/preset"
)

var oxideScenario = filepath.Join("testdata", "scenarios", "oxide_filters.yaml")

func intPtr(n int) *int { return &n }

func TestRunWithGolden_OxideFilters(t *testing.T) {
	scenario, err := LoadScenario(oxideScenario)
	require.NoError(t, err)

	result, err := RunWithGolden(t, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
}

func TestCompareGolden_MatchesScenarioGolden(t *testing.T) {
	scenario, err := LoadScenario(oxideScenario)
	require.NoError(t, err)
	result, err := Run(scenario)
	require.NoError(t, err)

	match, err := CompareGolden(oxideScenario, scenario, result)
	require.NoError(t, err)
	assert.True(t, match)
}

func TestWriteGolden_RoundTrip(t *testing.T) {
	scenario, err := LoadScenario(oxideScenario)
	require.NoError(t, err)
	result, err := Run(scenario)
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "oxide_filters.yaml")

	_, err = CompareGolden(file, scenario, result)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	require.NoError(t, WriteGolden(file, scenario, result))
	assert.FileExists(t, filepath.Join(filepath.Dir(file), "golden", "oxide_filters.golden"))

	match, err := CompareGolden(file, scenario, result)
	require.NoError(t, err)
	assert.True(t, match)
}

func TestRun_ExpectationFailures(t *testing.T) {
	scenario := &Scenario{
		Name:        "mismatches",
		Description: "every expect clause misses",
		Dataset: Dataset{Records: []material.Record{
			{ID: "mp-1", Formula: "Fe2O3", BandGap: 2.0, Density: 5.2},
			{ID: "mp-2", Formula: "TiO2", BandGap: 3.5, Density: 4.2},
		}},
		Steps: []Step{
			{Filter: &preset.Filter{Formula: "ti"}, Expect: &Expect{IDs: []string{"mp-1"}}},
			{Filter: &preset.Filter{Formula: "ti"}, Expect: &Expect{Count: intPtr(2)}},
			{Find: "mp-1", Expect: &Expect{Error: "NOT_FOUND"}},
			{Find: "mp-7"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	assert.Equal(t, []string{
		"steps[0]: expected ids [mp-1], got [mp-2]",
		"steps[1]: expected count 2, got 1",
		"steps[2]: expected error NOT_FOUND, got success",
		"steps[3]: unexpected error NOT_FOUND",
	}, result.Errors)
	assert.Equal(t, DefaultSnapshot, result.Snapshot)
}

func TestRun_SyntheticDatasetIsDeterministic(t *testing.T) {
	scenario := &Scenario{
		Name:        "synthetic",
		Description: "seeded synthetic data",
		Dataset:     Dataset{Synthetic: &SyntheticDataset{Rows: 40, Seed: 99}},
		Steps: []Step{
			{Filter: &preset.Filter{Ranges: map[string]preset.Bounds{"band_gap": {Max: floatPtr(2.5)}}}},
			{Filter: &preset.Filter{Elements: []string{"Si"}}},
		},
	}

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, first.Pass)
	assert.Equal(t, 40, first.Rows)
	assert.Equal(t, first.Trace, second.Trace)
}

func TestRun_InvalidDataset(t *testing.T) {
	scenario := &Scenario{
		Name:        "dupes",
		Description: "duplicate ids",
		Dataset: Dataset{Records: []material.Record{
			{ID: "mp-1", Formula: "ZnO"},
			{ID: "mp-1", Formula: "ZnO"},
		}},
		Steps: []Step{{Find: "mp-1"}},
	}

	_, err := Run(scenario)
	assert.ErrorContains(t, err, "duplicate id")
}

func floatPtr(v float64) *float64 { return &v }
