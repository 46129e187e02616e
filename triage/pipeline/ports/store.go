package pipelineports

import (
	"context"

	"github.com/carebridge/symptom-triage/triage/episode"
)

// EpisodeStore persists episode state between turns.
type EpisodeStore interface {
	Save(ctx context.Context, memberID string, ep episode.Episode) error
	Get(ctx context.Context, id string) (episode.Episode, error)
	ListForMember(ctx context.Context, memberID string, limit int) ([]episode.Episode, error)
}

// MemoryFactStore reads and writes user-confirmed health facts. The pipeline
// only reads snapshots; confirmation happens outside the message loop.
type MemoryFactStore interface {
	Snapshot(ctx context.Context, memberID string) (episode.MemorySnapshot, error)
	Confirm(ctx context.Context, memberID string, cand episode.MemoryCandidate) error
}
