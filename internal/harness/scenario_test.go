package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_Valid(t *testing.T) {
	scenario, err := LoadScenario(oxideScenario)
	require.NoError(t, err)

	assert.Equal(t, "oxide_filters", scenario.Name)
	assert.Equal(t, "snap-oxides", scenario.Snapshot)
	assert.Len(t, scenario.Dataset.Records, 4)
	require.Len(t, scenario.Steps, 7)

	assert.Equal(t, OpFilter, scenario.Steps[0].Op())
	assert.Equal(t, OpFind, scenario.Steps[4].Op())
	assert.Equal(t, OpFilter, scenario.Steps[6].Op(), "empty filter mapping is still a filter")
	require.NotNil(t, scenario.Steps[2].Expect.Count)
	assert.Equal(t, 4, *scenario.Steps[2].Expect.Count)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read scenario file")
}

func TestParseScenario_Invalid(t *testing.T) {
	const records = "dataset:\n  records:\n    - {id: mp-1, formula: ZnO}\n"

	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown field",
			yaml:    "name: x\ndescription: y\nstep: []\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "missing name",
			yaml:    "description: y\n" + records + "steps:\n  - find: mp-1\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			yaml:    "name: x\n" + records + "steps:\n  - find: mp-1\n",
			wantErr: "description is required",
		},
		{
			name:    "missing dataset",
			yaml:    "name: x\ndescription: y\nsteps:\n  - find: mp-1\n",
			wantErr: "records or synthetic is required",
		},
		{
			name:    "both datasets",
			yaml:    "name: x\ndescription: y\n" + records + "  synthetic: {rows: 3, seed: 1}\nsteps:\n  - find: mp-1\n",
			wantErr: "mutually exclusive",
		},
		{
			name:    "unseeded synthetic",
			yaml:    "name: x\ndescription: y\ndataset:\n  synthetic: {rows: 3}\nsteps:\n  - find: mp-1\n",
			wantErr: "seed must be non-zero",
		},
		{
			name:    "no steps",
			yaml:    "name: x\ndescription: y\n" + records,
			wantErr: "steps list is required",
		},
		{
			name:    "step with both ops",
			yaml:    "name: x\ndescription: y\n" + records + "steps:\n  - find: mp-1\n    filter: {formula: Zn}\n",
			wantErr: "exactly one of filter or find",
		},
		{
			name:    "step with no op",
			yaml:    "name: x\ndescription: y\n" + records + "steps:\n  - expect: {count: 1}\n",
			wantErr: "exactly one of filter or find",
		},
		{
			name:    "negative count",
			yaml:    "name: x\ndescription: y\n" + records + "steps:\n  - find: mp-1\n    expect: {count: -1}\n",
			wantErr: "count must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGoldenPath(t *testing.T) {
	got := GoldenPath(filepath.Join("scenarios", "oxides.yaml"))
	assert.Equal(t, filepath.Join("scenarios", "golden", "oxides.golden"), got)
}

func TestMarshalSnapshot_NoHTMLEscaping(t *testing.T) {
	data, err := MarshalSnapshot("x", &Result{Trace: []TraceEvent{{Query: "1 <= density <= 2", IDs: []string{}}}})
	require.NoError(t, err)
	assert.Contains(t, string(data), "1 <= density <= 2")
	assert.True(t, len(data) > 0 && data[len(data)-1] == '\n')
}
