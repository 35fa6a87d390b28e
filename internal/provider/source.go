package provider

import (
	"context"

	"github.com/roach88/matex/internal/material"
	"github.com/roach88/matex/internal/queryir"
)

// Source produces a complete material table.
//
// Load may block (I/O, generation) and must honor ctx cancellation.
// Implementations return an error rather than a partial table.
type Source interface {
	Load(ctx context.Context) (material.Table, error)
}

// FilterableSource is a Source that can evaluate a FilterSpec itself.
//
// LoadFiltered returns the same rows, in the same order, as loading the full
// table and filtering it with the engine. An empty result is not an error.
type FilterableSource interface {
	Source
	LoadFiltered(ctx context.Context, spec queryir.FilterSpec) (material.Table, error)
}

// Func adapts an ordinary function to the Source interface.
type Func func(ctx context.Context) (material.Table, error)

// Load calls f(ctx).
func (f Func) Load(ctx context.Context) (material.Table, error) {
	return f(ctx)
}

// Static returns a Source that always yields t.
func Static(t material.Table) Source {
	return Func(func(ctx context.Context) (material.Table, error) {
		if err := ctx.Err(); err != nil {
			return material.Table{}, err
		}
		return t, nil
	})
}
