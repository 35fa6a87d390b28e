package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/matex/internal/material"
	"github.com/roach88/matex/internal/queryir"
	"github.com/roach88/matex/internal/querysql"
)

func TestReadAll_EmptyStore(t *testing.T) {
	s := createTestStore(t)

	records, err := s.ReadAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestReplaceAll_RoundTripKeepsOrder(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	tbl := sampleTable(t)

	require.NoError(t, s.ReplaceAll(ctx, tbl))

	records, err := s.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, tbl.Records(), records)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestReplaceAll_ReplacesPreviousDataset(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	require.NoError(t, s.ReplaceAll(ctx, sampleTable(t)))

	smaller := material.MustNewTable([]material.Record{
		{ID: "mp-9", Formula: "SiO2", BandGap: 4.5, Density: 2.6},
	})
	require.NoError(t, s.ReplaceAll(ctx, smaller))

	records, err := s.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, smaller.Records(), records)
}

func TestFingerprint(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	fp, err := s.Fingerprint(ctx)
	require.NoError(t, err)
	assert.Empty(t, fp, "fresh store has no fingerprint")

	tbl := sampleTable(t)
	require.NoError(t, s.ReplaceAll(ctx, tbl))

	fp, err = s.Fingerprint(ctx)
	require.NoError(t, err)
	assert.Equal(t, tbl.Fingerprint(), fp)
}

func TestReplaceAll_CancelledContextLeavesStoreUnchanged(t *testing.T) {
	s := createTestStore(t)
	tbl := sampleTable(t)
	require.NoError(t, s.ReplaceAll(context.Background(), tbl))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.ReplaceAll(ctx, material.MustNewTable([]material.Record{{ID: "mp-9", Formula: "SiO2", Density: 2.6}}))
	require.Error(t, err)

	records, err := s.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, tbl.Records(), records)
}

func TestQueryMaterials_PushDown(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	require.NoError(t, s.ReplaceAll(ctx, sampleTable(t)))

	tests := []struct {
		name    string
		spec    queryir.FilterSpec
		wantIDs []string
	}{
		{
			name:    "empty spec",
			spec:    queryir.FilterSpec{},
			wantIDs: []string{"mp-1", "mp-2", "mp-3", "mp-4"},
		},
		{
			name:    "inclusive band gap range",
			spec:    queryir.FilterSpec{}.WithRange(queryir.Between(material.FieldBandGap, 2.0, 3.3)),
			wantIDs: []string{"mp-1", "mp-4"},
		},
		{
			name:    "case-insensitive formula",
			spec:    queryir.FilterSpec{}.WithFormula("tio"),
			wantIDs: []string{"mp-2"},
		},
		{
			name:    "element O is not Os",
			spec:    queryir.FilterSpec{}.WithElements("Os"),
			wantIDs: []string{"mp-3"},
		},
		{
			name:    "element O matches every oxide",
			spec:    queryir.FilterSpec{}.WithElements("O"),
			wantIDs: []string{"mp-1", "mp-2", "mp-3", "mp-4"},
		},
		{
			name: "combined",
			spec: queryir.FilterSpec{}.
				WithRange(queryir.AtLeast(material.FieldDensity, 5)).
				WithElements("Zn", "O"),
			wantIDs: []string{"mp-4"},
		},
		{
			name:    "no match",
			spec:    queryir.FilterSpec{}.WithFormula("Al"),
			wantIDs: []string{},
		},
	}

	compiler := querysql.NewSQLCompiler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, params, err := compiler.CompileSpec(tt.spec)
			require.NoError(t, err)

			records, err := s.QueryMaterials(ctx, query, params...)
			require.NoError(t, err)

			ids := make([]string, 0, len(records))
			for _, r := range records {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}
