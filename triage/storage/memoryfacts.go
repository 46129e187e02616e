package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/carebridge/symptom-triage/triage/episode"
)

// MemoryFactStore holds user-confirmed memory facts. Candidates never land
// here directly; callers write a fact only after explicit confirmation.
type MemoryFactStore struct {
	db *sql.DB
}

func NewMemoryFactStore(db *sql.DB) *MemoryFactStore {
	return &MemoryFactStore{db: db}
}

// Confirm stores a candidate the member accepted. Re-confirming the same
// value refreshes its confidence.
func (s *MemoryFactStore) Confirm(ctx context.Context, memberID string, cand episode.MemoryCandidate) error {
	if cand.Type.IsZero() {
		return fmt.Errorf("cannot confirm candidate %s: missing memory type", cand.ID)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO memory_facts (id, member_id, fact_type, label, value, confidence, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (member_id, fact_type, value) DO UPDATE SET
			label = excluded.label,
			confidence = excluded.confidence`,
		cand.ID, memberID, cand.Type.String(), cand.Label, cand.Value, string(cand.Confidence),
		time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to confirm memory fact for member %s: %w", memberID, err)
	}
	return nil
}

// Snapshot assembles the member's confirmed facts grouped by type.
func (s *MemoryFactStore) Snapshot(ctx context.Context, memberID string) (episode.MemorySnapshot, error) {
	var snap episode.MemorySnapshot

	rows, err := s.db.QueryContext(ctx, `
		SELECT fact_type, value FROM memory_facts
		WHERE member_id = ? ORDER BY created_at`, memberID)
	if err != nil {
		return snap, fmt.Errorf("failed to load memory facts for member %s: %w", memberID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var factType, value string
		if err := rows.Scan(&factType, &value); err != nil {
			return snap, err
		}
		memType, ok := episode.ParseMemoryType(factType)
		if !ok {
			// Skip rows written by a newer schema rather than failing the read.
			continue
		}
		switch memType {
		case episode.MemoryAllergy:
			snap.Allergies = append(snap.Allergies, value)
		case episode.MemoryCondition:
			snap.Conditions = append(snap.Conditions, value)
		case episode.MemoryMedication:
			snap.Medications = append(snap.Medications, value)
		case episode.MemoryPreference:
			snap.Preferences = append(snap.Preferences, value)
		case episode.MemoryTrigger:
			snap.Triggers = append(snap.Triggers, value)
		}
	}
	return snap, rows.Err()
}

// Forget removes a confirmed fact by value.
func (s *MemoryFactStore) Forget(ctx context.Context, memberID string, memType episode.MemoryType, value string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM memory_facts WHERE member_id = ? AND fact_type = ? AND value = ?`,
		memberID, memType.String(), value)
	if err != nil {
		return fmt.Errorf("failed to forget memory fact for member %s: %w", memberID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
