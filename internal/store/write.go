package store

import (
	"context"
	"fmt"

	"github.com/roach88/matex/internal/material"
	"github.com/roach88/matex/internal/querysql"
)

const metaFingerprint = "fingerprint"

// ReplaceAll replaces the stored dataset with t in one transaction.
//
// Rows get seq = position+1, so reading back yields t's order. The table's
// fingerprint is recorded in the meta table. On error nothing changes.
func (s *Store) ReplaceAll(ctx context.Context, t material.Table) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace materials: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM materials`); err != nil {
		return fmt.Errorf("replace materials: clear: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO materials
		(seq, id, formula, elements, band_gap, density, energy_above_hull, formation_energy)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("replace materials: prepare: %w", err)
	}
	defer stmt.Close()

	for i := range t.Len() {
		r := t.At(i)
		_, err := stmt.ExecContext(ctx,
			int64(i+1),
			r.ID,
			r.Formula,
			querysql.EncodeElements(r.Formula),
			r.BandGap,
			r.Density,
			r.EnergyAboveHull,
			r.FormationEnergy,
		)
		if err != nil {
			return fmt.Errorf("replace materials: insert %q: %w", r.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, metaFingerprint, t.Fingerprint())
	if err != nil {
		return fmt.Errorf("replace materials: record fingerprint: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace materials: commit: %w", err)
	}
	return nil
}
