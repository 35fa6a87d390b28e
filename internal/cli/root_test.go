package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "matex", cmd.Use)
	assert.Contains(t, cmd.Long, "matex seed")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"filter", "show", "plot", "seed", "validate", "test"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	tests := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{"verbose", "v", "false"},
		{"format", "", "text"},
		{"config", "", ""},
		{"source", "", "synthetic"},
		{"db", "", "matex.db"},
		{"seed", "", "0"},
		{"rows", "", "100"},
		{"cache-key", "", "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := cmd.PersistentFlags().Lookup(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.shorthand, f.Shorthand)
			assert.Equal(t, tt.defValue, f.DefValue)
		})
	}
}

func TestFilterCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	filterCmd, _, err := cmd.Find([]string{"filter"})
	require.NoError(t, err)

	rangeFlag := filterCmd.Flags().Lookup("range")
	require.NotNil(t, rangeFlag)
	assert.Equal(t, "r", rangeFlag.Shorthand)

	limitFlag := filterCmd.Flags().Lookup("limit")
	require.NotNil(t, limitFlag)
	assert.Equal(t, "10", limitFlag.DefValue)

	for _, name := range []string{"formula", "elements", "preset", "pushdown"} {
		assert.NotNil(t, filterCmd.Flags().Lookup(name), name)
	}
}

func TestPlotCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	plotCmd, _, err := cmd.Find([]string{"plot"})
	require.NoError(t, err)

	assert.Equal(t, "band_gap", plotCmd.Flags().Lookup("x").DefValue)
	assert.Equal(t, "density", plotCmd.Flags().Lookup("y").DefValue)
	assert.NotNil(t, plotCmd.Flags().Lookup("range"))
}

func TestInvalidFormat(t *testing.T) {
	run := runCLI(t, nil, "show", "mp-1", "--format", "yaml")
	require.Error(t, run.Err)
	assert.Equal(t, ExitCommandError, GetExitCode(run.Err))
	assert.Contains(t, run.Err.Error(), "invalid configuration")
}

func TestInvalidSource(t *testing.T) {
	run := runCLI(t, nil, "show", "mp-1", "--source", "csv")
	require.Error(t, run.Err)
	assert.Equal(t, ExitCommandError, GetExitCode(run.Err))
	assert.Contains(t, run.Err.Error(), "invalid source")
}

func TestConfigFileFlag(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "matex.yaml")
	writeFile(t, cfg, "format: json\nlimit: 1\n")

	run := runCLI(t, staticSource(), "filter", "--config", cfg)
	require.NoError(t, run.Err)

	var result FilterResult
	decodeData(t, run.Stdout, &result)
	assert.Equal(t, 4, result.Matched)
	assert.Len(t, result.Rows, 1)
}

func TestEnvOverridesConfigDefaults(t *testing.T) {
	t.Setenv("MATEX_FORMAT", "json")

	run := runCLI(t, staticSource(), "show", "mp-2")
	require.NoError(t, run.Err)

	var result ShowResult
	decodeData(t, run.Stdout, &result)
	assert.True(t, result.Found)
}
