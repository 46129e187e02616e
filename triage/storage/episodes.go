package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/carebridge/symptom-triage/triage/episode"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("storage: not found")

// EpisodeStore persists episodes keyed by member.
type EpisodeStore struct {
	db *sql.DB
}

func NewEpisodeStore(db *sql.DB) *EpisodeStore {
	return &EpisodeStore{db: db}
}

// Save upserts the episode. Context, flow state and turns are stored as JSON
// so the schema survives additive type changes.
func (s *EpisodeStore) Save(ctx context.Context, memberID string, ep episode.Episode) error {
	contextJSON, err := json.Marshal(ep.Context)
	if err != nil {
		return fmt.Errorf("failed to encode episode context: %w", err)
	}
	flowJSON, err := json.Marshal(ep.FlowState)
	if err != nil {
		return fmt.Errorf("failed to encode flow state: %w", err)
	}
	turnsJSON, err := json.Marshal(ep.Turns)
	if err != nil {
		return fmt.Errorf("failed to encode turns: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO episodes (id, member_id, for_whom, context, flow_state, turns, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			for_whom = excluded.for_whom,
			context = excluded.context,
			flow_state = excluded.flow_state,
			turns = excluded.turns,
			updated_at = excluded.updated_at`,
		ep.ID, memberID, ep.ForWhom, string(contextJSON), string(flowJSON), string(turnsJSON),
		ep.CreatedAt.Unix(), ep.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to save episode %s: %w", ep.ID, err)
	}
	return nil
}

// Get loads a single episode by ID.
func (s *EpisodeStore) Get(ctx context.Context, id string) (episode.Episode, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, for_whom, context, flow_state, turns, created_at, updated_at
		FROM episodes WHERE id = ?`, id)
	ep, err := scanEpisode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return episode.Episode{}, ErrNotFound
	}
	return ep, err
}

// ListForMember returns a member's episodes, most recently updated first.
func (s *EpisodeStore) ListForMember(ctx context.Context, memberID string, limit int) ([]episode.Episode, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, for_whom, context, flow_state, turns, created_at, updated_at
		FROM episodes WHERE member_id = ?
		ORDER BY updated_at DESC LIMIT ?`, memberID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list episodes for member %s: %w", memberID, err)
	}
	defer rows.Close()

	var episodes []episode.Episode
	for rows.Next() {
		ep, err := scanEpisode(rows)
		if err != nil {
			return nil, err
		}
		episodes = append(episodes, ep)
	}
	return episodes, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEpisode(row rowScanner) (episode.Episode, error) {
	var (
		ep                             episode.Episode
		contextJSON, flowJSON, turnsJS string
		createdAt, updatedAt           int64
	)
	if err := row.Scan(&ep.ID, &ep.ForWhom, &contextJSON, &flowJSON, &turnsJS, &createdAt, &updatedAt); err != nil {
		return episode.Episode{}, err
	}
	if err := json.Unmarshal([]byte(contextJSON), &ep.Context); err != nil {
		return episode.Episode{}, fmt.Errorf("failed to decode episode context: %w", err)
	}
	if err := json.Unmarshal([]byte(flowJSON), &ep.FlowState); err != nil {
		return episode.Episode{}, fmt.Errorf("failed to decode flow state: %w", err)
	}
	if err := json.Unmarshal([]byte(turnsJS), &ep.Turns); err != nil {
		return episode.Episode{}, fmt.Errorf("failed to decode turns: %w", err)
	}
	ep.CreatedAt = time.Unix(createdAt, 0).UTC()
	ep.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return ep, nil
}
