package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/matex/internal/material"
	"github.com/roach88/matex/internal/provider"
)

// sampleTable returns a small table with known values.
func sampleTable() material.Table {
	return material.MustNewTable([]material.Record{
		{ID: "mp-1", Formula: "Fe2O3", BandGap: 2.0, Density: 5.2, EnergyAboveHull: 0.01, FormationEnergy: -1.8},
		{ID: "mp-2", Formula: "TiO2", BandGap: 3.5, Density: 4.2, EnergyAboveHull: 0.0, FormationEnergy: -3.3},
		{ID: "mp-3", Formula: "OsO4", BandGap: 1.1, Density: 4.9, EnergyAboveHull: 0.3, FormationEnergy: -0.9},
		{ID: "mp-4", Formula: "ZnO", BandGap: 3.3, Density: 5.6, EnergyAboveHull: 0.05, FormationEnergy: -1.8},
	})
}

func staticSource() provider.Source {
	return provider.Static(sampleTable())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// cliRun is the captured outcome of one command execution.
type cliRun struct {
	Stdout string
	Stderr string
	Err    error
}

// runCLI executes the root command with args. A nil src uses the
// configured source. The working directory is an empty temp dir so no
// matex.yaml is picked up; pass absolute paths.
func runCLI(t *testing.T, src provider.Source, args ...string) cliRun {
	t.Helper()
	t.Chdir(t.TempDir())

	opts := &RootOptions{source: src, snapshots: provider.NewFixedGenerator("snap-1")}
	cmd := newRootCommand(opts)

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return cliRun{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}

// decodeData decodes a successful JSON response's data into v.
func decodeData(t *testing.T, out string, v any) {
	t.Helper()
	var resp struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp), "output: %s", out)
	require.Equal(t, "ok", resp.Status)
	require.NoError(t, json.Unmarshal(resp.Data, v))
}

// testdataPath returns an absolute path into a sibling package's testdata.
func testdataPath(t *testing.T, parts ...string) string {
	t.Helper()
	p, err := filepath.Abs(filepath.Join(append([]string{".."}, parts...)...))
	require.NoError(t, err)
	return p
}
