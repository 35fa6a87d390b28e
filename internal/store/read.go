package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/matex/internal/material"
	"github.com/roach88/matex/internal/querysql"
)

// ReadAll returns every stored record in insertion order.
//
// Returns an empty slice (not nil) for an empty store.
func (s *Store) ReadAll(ctx context.Context) ([]material.Record, error) {
	query, params, err := querysql.NewSQLCompiler().Compile(nil)
	if err != nil {
		return nil, fmt.Errorf("read materials: %w", err)
	}
	return s.QueryMaterials(ctx, query, params...)
}

// QueryMaterials runs a query produced by querysql and scans its rows.
//
// The query must select querysql.Columns in order.
func (s *Store) QueryMaterials(ctx context.Context, query string, args ...any) ([]material.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query materials: %w", err)
	}
	defer rows.Close()

	records := []material.Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate materials: %w", err)
	}

	return records, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM materials`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count materials: %w", err)
	}
	return n, nil
}

// Fingerprint returns the fingerprint recorded by the last ReplaceAll,
// or "" if the store has never been written.
func (s *Store) Fingerprint(ctx context.Context) (string, error) {
	var fp string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, metaFingerprint).Scan(&fp)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read fingerprint: %w", err)
	}
	return fp, nil
}

// scanRecord scans one row in querysql.Columns order.
func scanRecord(rows *sql.Rows) (material.Record, error) {
	var r material.Record
	err := rows.Scan(
		&r.ID,
		&r.Formula,
		&r.BandGap,
		&r.Density,
		&r.EnergyAboveHull,
		&r.FormationEnergy,
	)
	if err != nil {
		return material.Record{}, fmt.Errorf("scan material: %w", err)
	}
	return r, nil
}
