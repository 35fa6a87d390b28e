package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/matex/internal/store"
)

func TestSeedCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "matex.db")

	run := runCLI(t, nil, "seed", "--db", db, "--rows", "25", "--seed", "3", "--format", "json")
	require.NoError(t, run.Err)

	var result SeedResult
	decodeData(t, run.Stdout, &result)
	assert.Equal(t, 25, result.Rows)
	assert.Equal(t, uint64(3), result.Seed)
	assert.NotEmpty(t, result.Fingerprint)

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()

	n, err := st.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 25, n)

	fp, err := st.Fingerprint(context.Background())
	require.NoError(t, err)
	assert.Equal(t, result.Fingerprint, fp)
}

func TestSeedCommandDeterministic(t *testing.T) {
	dir := t.TempDir()

	var prints []string
	for _, name := range []string{"a.db", "b.db"} {
		var result SeedResult
		run := runCLI(t, nil, "seed", "--db", filepath.Join(dir, name), "--rows", "40", "--seed", "99", "--format", "json")
		require.NoError(t, run.Err)
		decodeData(t, run.Stdout, &result)
		prints = append(prints, result.Fingerprint)
	}
	assert.Equal(t, prints[0], prints[1])
}

func TestSeedCommandReplaces(t *testing.T) {
	db := filepath.Join(t.TempDir(), "matex.db")

	require.NoError(t, runCLI(t, nil, "seed", "--db", db, "--rows", "30", "--seed", "1").Err)
	run := runCLI(t, nil, "seed", "--db", db, "--rows", "5", "--seed", "2")
	require.NoError(t, run.Err)
	assert.Contains(t, run.Stdout, "with 5 materials")

	show := runCLI(t, nil, "filter", "--source", "sqlite", "--db", db)
	require.NoError(t, show.Err)
	assert.Contains(t, show.Stdout, "Matched 5 of 5 materials")
}
