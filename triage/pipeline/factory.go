package pipeline

import (
	"context"
	"database/sql"

	"github.com/carebridge/symptom-triage/triage/config"
	"github.com/carebridge/symptom-triage/triage/episode"
	"github.com/carebridge/symptom-triage/triage/flow"
	"github.com/carebridge/symptom-triage/triage/pipeline/adapters"
	ports "github.com/carebridge/symptom-triage/triage/pipeline/ports"
	"github.com/carebridge/symptom-triage/triage/storage"
	"github.com/rs/zerolog"
)

// Factory creates and wires pipeline components from configuration.
type Factory struct {
	cfg    *config.Config
	db     *sql.DB // Optional, for episode and memory persistence
	logger zerolog.Logger
}

// NewFactory creates a new pipeline factory.
func NewFactory(cfg *config.Config, db *sql.DB, logger zerolog.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		db:     db,
		logger: logger,
	}
}

// CreatePipeline creates a fully wired Pipeline from config.
func (f *Factory) CreatePipeline() *Pipeline {
	controller := flow.NewController(f.cfg.Flow.Limits())
	tracer := f.createTracer()
	episodes, memories := f.createStores()

	persist := f.cfg.Pipeline.PersistEpisodes && f.db != nil

	return New(controller, tracer, episodes, memories, f.cfg.Pipeline.MemoryExtraction, persist)
}

// createTracer creates a tracer adapter from config.
func (f *Factory) createTracer() ports.Tracer {
	if !f.cfg.Pipeline.EnableTracing {
		return &noOpTracer{}
	}

	return adapters.NewZerologTracer(f.logger)
}

// createStores creates persistence adapters, falling back to no-ops when no
// database was provided.
func (f *Factory) createStores() (ports.EpisodeStore, ports.MemoryFactStore) {
	if f.db == nil {
		return &noOpEpisodeStore{}, &noOpMemoryStore{}
	}

	return storage.NewEpisodeStore(f.db), storage.NewMemoryFactStore(f.db)
}

// noOpTracer implements Tracer interface with no-op behavior.
type noOpTracer struct{}

func (t *noOpTracer) StartSpan(ctx context.Context, name string, attrs map[string]any) (context.Context, func(err error)) {
	return ctx, func(err error) {}
}

func (t *noOpTracer) Event(ctx context.Context, name string, attrs map[string]any) {}

// noOpEpisodeStore implements EpisodeStore interface with no-op behavior.
type noOpEpisodeStore struct{}

func (s *noOpEpisodeStore) Save(ctx context.Context, memberID string, ep episode.Episode) error {
	return nil
}

func (s *noOpEpisodeStore) Get(ctx context.Context, id string) (episode.Episode, error) {
	return episode.Episode{}, storage.ErrNotFound
}

func (s *noOpEpisodeStore) ListForMember(ctx context.Context, memberID string, limit int) ([]episode.Episode, error) {
	return nil, nil
}

// noOpMemoryStore implements MemoryFactStore interface with no-op behavior.
type noOpMemoryStore struct{}

func (s *noOpMemoryStore) Snapshot(ctx context.Context, memberID string) (episode.MemorySnapshot, error) {
	return episode.MemorySnapshot{}, nil
}

func (s *noOpMemoryStore) Confirm(ctx context.Context, memberID string, cand episode.MemoryCandidate) error {
	return nil
}

// Ensure all no-op types implement their interfaces.
var (
	_ ports.Tracer          = (*noOpTracer)(nil)
	_ ports.EpisodeStore    = (*noOpEpisodeStore)(nil)
	_ ports.MemoryFactStore = (*noOpMemoryStore)(nil)
)
