package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/matex/internal/engine"
	"github.com/roach88/matex/internal/material"
	"github.com/roach88/matex/internal/provider"
)

// Run executes a scenario and returns the result.
//
// A scenario that runs but misses an expectation returns a failing Result
// and a nil error. Errors are reserved for scenarios that cannot run at all
// (bad dataset, provider failure).
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario, nil)
}

// RunContext is Run with a context and an optional logger for engine
// debug output.
func RunContext(ctx context.Context, scenario *Scenario, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	src, err := scenario.Dataset.source()
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}

	snapshot := scenario.Snapshot
	if snapshot == "" {
		snapshot = DefaultSnapshot
	}
	cache := provider.NewCache(src,
		provider.WithSnapshotGenerator(provider.NewFixedGenerator(snapshot)),
		provider.WithLogger(logger),
	)

	table, err := cache.Get(ctx, provider.Key(scenario.Name))
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	eng := engine.New(logger)
	result := NewResult()
	result.Snapshot = table.Snapshot()
	result.Rows = table.Len()

	for i, step := range scenario.Steps {
		event := execute(eng, table, i, step)
		result.Trace = append(result.Trace, event)
		checkExpect(result, i, step.Expect, event)
	}

	return result, nil
}

// execute runs one step. Query errors are recorded in the event, not
// returned.
func execute(eng *engine.Engine, table material.Table, index int, step Step) TraceEvent {
	event := TraceEvent{Step: index, Op: step.Op(), IDs: []string{}}

	switch step.Op() {
	case OpFilter:
		spec := step.Filter.Spec()
		event.Query = spec.String()
		out, err := eng.Filter(table, spec)
		if err != nil {
			event.Error = errorCode(err)
			return event
		}
		event.IDs = out.IDs()
	case OpFind:
		event.Query = step.Find
		r, err := eng.FindByID(table, step.Find)
		if err != nil {
			event.Error = errorCode(err)
			return event
		}
		event.IDs = []string{r.ID}
	}

	event.Count = len(event.IDs)
	return event
}

func errorCode(err error) string {
	var qe *engine.QueryError
	if errors.As(err, &qe) {
		return string(qe.Code)
	}
	return err.Error()
}

// source builds the provider.Source for the dataset.
func (d Dataset) source() (provider.Source, error) {
	if d.Synthetic != nil {
		return provider.NewSynthetic(d.Synthetic.Rows, d.Synthetic.Seed), nil
	}
	table, err := material.NewTable(d.Records)
	if err != nil {
		return nil, err
	}
	return provider.Static(table), nil
}
