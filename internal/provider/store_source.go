package provider

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/matex/internal/engine"
	"github.com/roach88/matex/internal/material"
	"github.com/roach88/matex/internal/queryir"
	"github.com/roach88/matex/internal/querysql"
	"github.com/roach88/matex/internal/store"
)

// StoreSource loads materials from a SQLite store.
//
// It implements FilterableSource: LoadFiltered compiles the spec to SQL and
// lets SQLite evaluate it.
type StoreSource struct {
	store    *store.Store
	compiler *querysql.SQLCompiler
	logger   *slog.Logger
}

// NewStoreSource creates a source reading from s. A nil logger disables
// logging.
func NewStoreSource(s *store.Store, logger *slog.Logger) *StoreSource {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &StoreSource{
		store:    s,
		compiler: querysql.NewSQLCompiler(),
		logger:   logger,
	}
}

// Load reads every stored record in insertion order.
func (s *StoreSource) Load(ctx context.Context) (material.Table, error) {
	records, err := s.store.ReadAll(ctx)
	if err != nil {
		return material.Table{}, fmt.Errorf("load from store: %w", err)
	}
	t, err := material.NewTable(records)
	if err != nil {
		return material.Table{}, fmt.Errorf("load from store: %w", err)
	}
	s.logger.Debug("store load", "rows", t.Len())
	return t, nil
}

// LoadFiltered evaluates spec inside SQLite.
//
// A malformed spec returns the engine's INVALID_SPEC error before any query
// runs. Store failures are DATA_UNAVAILABLE.
func (s *StoreSource) LoadFiltered(ctx context.Context, spec queryir.FilterSpec) (material.Table, error) {
	if err := engine.Validate(spec); err != nil {
		return material.Table{}, err
	}

	query, params, err := s.compiler.CompileSpec(spec)
	if err != nil {
		return material.Table{}, fmt.Errorf("compile filter: %w", err)
	}

	records, err := s.store.QueryMaterials(ctx, query, params...)
	if err != nil {
		return material.Table{}, unavailable("", "filtered store query failed", err)
	}

	t, err := material.NewTable(records)
	if err != nil {
		return material.Table{}, unavailable("", "store returned malformed rows", err)
	}
	s.logger.Debug("store filter", "spec", spec.String(), "rows", t.Len())
	return t, nil
}
