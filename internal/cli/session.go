package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/roach88/matex/internal/config"
	"github.com/roach88/matex/internal/material"
	"github.com/roach88/matex/internal/provider"
	"github.com/roach88/matex/internal/store"
)

// session is the dataset side of one command invocation: the configured
// source behind a provider cache.
type session struct {
	opts   *RootOptions
	source provider.Source
	cache  *provider.Cache
	store  *store.Store
}

// openSession builds the configured source. Callers must Close the session.
func openSession(opts *RootOptions) (*session, error) {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	s := &session{opts: opts}

	switch {
	case opts.source != nil:
		s.source = opts.source
	case opts.Source == config.SourceSQLite:
		if _, err := os.Stat(opts.DB); errors.Is(err, os.ErrNotExist) {
			return nil, &provider.Error{
				Code:    provider.ErrCodeDataUnavailable,
				Message: fmt.Sprintf("database %s does not exist (create it with matex seed)", opts.DB),
			}
		}
		st, err := store.Open(opts.DB)
		if err != nil {
			return nil, &provider.Error{Code: provider.ErrCodeDataUnavailable, Message: "cannot open database", Err: err}
		}
		s.store = st
		s.source = provider.NewStoreSource(st, opts.Logger)
	default:
		s.source = provider.NewSynthetic(opts.Rows, opts.Seed)
	}

	cacheOpts := []provider.CacheOption{provider.WithLogger(opts.Logger)}
	if opts.snapshots != nil {
		cacheOpts = append(cacheOpts, provider.WithSnapshotGenerator(opts.snapshots))
	}
	s.cache = provider.NewCache(s.source, cacheOpts...)
	return s, nil
}

// Table returns the dataset for the configured cache key.
func (s *session) Table(ctx context.Context) (material.Table, error) {
	t, err := s.cache.Get(ctx, provider.Key(s.opts.CacheKey))
	if err != nil {
		return material.Table{}, err
	}
	stats := s.cache.Stats()
	s.opts.Logger.Debug("dataset ready",
		"source", s.opts.Source,
		"rows", t.Len(),
		"snapshot", t.Snapshot(),
		"loads", stats.Loads,
		"hits", stats.Hits,
	)
	return t, nil
}

// Filterable returns the source's push-down interface, if it has one.
func (s *session) Filterable() (provider.FilterableSource, bool) {
	fs, ok := s.source.(provider.FilterableSource)
	return fs, ok
}

// Close releases the database, if one was opened.
func (s *session) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}
