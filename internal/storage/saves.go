package storage

import (
	"fmt"
	"strconv"
	"time"

	"github.com/vovakirdan/bizsim/internal/game"
)

// SaveMeta describes one save slot.
type SaveMeta struct {
	Slot       string
	BusinessID string
	ProfileID  string
	Period     int
	UpdatedAt  time.Time
}

// SaveGame replaces the contents of slot with rec.
func (s *Store) SaveGame(slot string, rec game.Record) error {
	if slot == "" {
		return fmt.Errorf("storage: empty save slot")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM saves WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("storage: cannot clear slot %s: %w", slot, err)
	}

	stmt, err := tx.Prepare("INSERT INTO saves (slot, key, value) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, key := range rec.Keys() {
		if _, err := stmt.Exec(slot, key, rec[key]); err != nil {
			return fmt.Errorf("storage: cannot save %s: %w", key, err)
		}
	}

	period, _ := strconv.Atoi(rec[game.KeyPeriod])
	_, err = tx.Exec(
		`INSERT INTO save_meta (slot, business_id, profile_id, period, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET
		   business_id = excluded.business_id,
		   profile_id = excluded.profile_id,
		   period = excluded.period,
		   updated_at = CURRENT_TIMESTAMP`,
		slot, rec[game.KeyBusiness], rec[game.KeyProfile], period,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit save: %w", err)
	}
	return nil
}

// LoadGame returns the record stored in slot, or nil if the slot is empty.
func (s *Store) LoadGame(slot string) (game.Record, error) {
	rows, err := s.db.Query("SELECT key, value FROM saves WHERE slot = ?", slot)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load slot %s: %w", slot, err)
	}
	defer rows.Close()

	var rec game.Record
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if rec == nil {
			rec = make(game.Record)
		}
		rec[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rec, nil
}

// ListSaves returns every save slot, most recently updated first.
func (s *Store) ListSaves() ([]SaveMeta, error) {
	rows, err := s.db.Query(
		`SELECT slot, business_id, profile_id, period, updated_at
		 FROM save_meta
		 ORDER BY updated_at DESC, slot ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list saves: %w", err)
	}
	defer rows.Close()

	var metas []SaveMeta
	for rows.Next() {
		var m SaveMeta
		var updatedAt any
		if err := rows.Scan(&m.Slot, &m.BusinessID, &m.ProfileID, &m.Period, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		m.UpdatedAt = parseTime(updatedAt)
		metas = append(metas, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return metas, nil
}

// DeleteSave removes a slot. Deleting an empty slot is not an error.
func (s *Store) DeleteSave(slot string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM saves WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("storage: cannot delete slot %s: %w", slot, err)
	}
	if _, err := tx.Exec("DELETE FROM save_meta WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("storage: cannot delete slot %s: %w", slot, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}
