package engine

import (
	"io"
	"log/slog"

	"github.com/roach88/matex/internal/material"
	"github.com/roach88/matex/internal/queryir"
)

// Engine evaluates filter specs and point lookups against tables.
//
// Thread-safety: Engine holds no mutable state and is safe for concurrent
// use. The zero Engine is ready to use and logs nothing.
type Engine struct {
	logger *slog.Logger
}

// New creates an engine that logs query summaries at debug level.
// A nil logger disables logging.
func New(logger *slog.Logger) *Engine {
	return &Engine{logger: logger}
}

func (e *Engine) log() *slog.Logger {
	if e == nil || e.logger == nil {
		return discard
	}
	return e.logger
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// Validate checks a spec and returns an INVALID_SPEC QueryError listing
// every problem, or nil.
func Validate(spec queryir.FilterSpec) error {
	result := queryir.Validate(spec)
	if !result.Valid {
		return NewInvalidSpecError(result.Problems)
	}
	return nil
}

// Filter returns the rows of t satisfying every active predicate of spec,
// in t's order.
//
// An empty spec returns t itself. A malformed spec returns an INVALID_SPEC
// error and an empty table; no partial result is ever returned. t is never
// modified.
func (e *Engine) Filter(t material.Table, spec queryir.FilterSpec) (material.Table, error) {
	if err := Validate(spec); err != nil {
		e.log().Debug("filter rejected", "spec", spec.String(), "error", err)
		return material.Table{}, err
	}

	if spec.IsEmpty() {
		e.log().Debug("filter passthrough", "rows", t.Len())
		return t, nil
	}

	m := newMatcher(spec.Predicate())

	candidates := t.RowsWithElements(m.elements)
	positions := make([]int, 0, candidates.GetCardinality())
	it := candidates.Iterator()
	for it.HasNext() {
		i := int(it.Next())
		if m.matchScalar(t.At(i)) {
			positions = append(positions, i)
		}
	}

	out := t.Subset(positions)
	e.log().Debug("filter applied",
		"spec", spec.String(),
		"snapshot", t.Snapshot(),
		"candidates", candidates.GetCardinality(),
		"rows_in", t.Len(),
		"rows_out", out.Len(),
	)
	return out, nil
}

// FindByID returns the record with the given id, or a NOT_FOUND error.
// Lookups use the table's id index, built once per table.
func (e *Engine) FindByID(t material.Table, id string) (material.Record, error) {
	r, ok := t.Lookup(id)
	if !ok {
		return material.Record{}, NewNotFoundError(id)
	}
	return r, nil
}

// Lookup is FindByID for callers that treat absence as an ordinary empty
// result.
func (e *Engine) Lookup(t material.Table, id string) (material.Record, bool) {
	return t.Lookup(id)
}

// Matches reports whether a single record satisfies spec.
//
// Matches evaluates every predicate directly against the record, without
// any table index, so it can cross-check Filter.
func Matches(spec queryir.FilterSpec, r material.Record) (bool, error) {
	if err := Validate(spec); err != nil {
		return false, err
	}
	m := newMatcher(spec.Predicate())
	return m.matchElements(r) && m.matchScalar(r), nil
}
