package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/carebridge/symptom-triage/triage/episode"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestDB opens a fresh migrated database in a temp directory.
func createTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "triage-test.db")
	db, err := ConnectToDB(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestEpisodeStoreSaveAndGet(t *testing.T) {
	db := createTestDB(t)
	store := NewEpisodeStore(db)
	ctx := context.Background()

	ep := episode.NewEpisode("headache", episode.CategoryHeadache)
	ep.ForWhom = "me"
	ep = ep.WithTurn("user", "I have a headache")

	require.NoError(t, store.Save(ctx, "member-1", ep))

	got, err := store.Get(ctx, ep.ID)
	require.NoError(t, err)
	assert.Equal(t, ep.ID, got.ID)
	assert.Equal(t, "me", got.ForWhom)
	assert.Equal(t, "headache", got.Context.PrimarySymptom)
	assert.Equal(t, episode.CategoryHeadache, got.FlowState.SymptomCategory)
	require.Len(t, got.Turns, 1)
	assert.Equal(t, "I have a headache", got.Turns[0].Content)
}

func TestEpisodeStoreUpsert(t *testing.T) {
	db := createTestDB(t)
	store := NewEpisodeStore(db)
	ctx := context.Background()

	ep := episode.NewEpisode("cough", episode.CategoryRespiratory)
	require.NoError(t, store.Save(ctx, "member-1", ep))

	ep = ep.WithTurn("assistant", "How long has this been going on?")
	ep = ep.WithTurn("user", "About three days")
	require.NoError(t, store.Save(ctx, "member-1", ep))

	got, err := store.Get(ctx, ep.ID)
	require.NoError(t, err)
	assert.Len(t, got.Turns, 2)
}

func TestEpisodeStoreGetMissing(t *testing.T) {
	db := createTestDB(t)
	store := NewEpisodeStore(db)

	_, err := store.Get(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEpisodeStoreListForMember(t *testing.T) {
	db := createTestDB(t)
	store := NewEpisodeStore(db)
	ctx := context.Background()

	first := episode.NewEpisode("headache", episode.CategoryHeadache)
	second := episode.NewEpisode("rash", episode.CategorySkin)
	require.NoError(t, store.Save(ctx, "member-1", first))
	require.NoError(t, store.Save(ctx, "member-1", second))
	require.NoError(t, store.Save(ctx, "member-2", episode.NewEpisode("fever", episode.CategoryFever)))

	episodes, err := store.ListForMember(ctx, "member-1", 10)
	require.NoError(t, err)
	assert.Len(t, episodes, 2)
}

func TestMemoryFactStoreConfirmAndSnapshot(t *testing.T) {
	db := createTestDB(t)
	store := NewMemoryFactStore(db)
	ctx := context.Background()

	candidates := []episode.MemoryCandidate{
		{ID: uuid.New().String(), Type: episode.MemoryAllergy, Label: "Allergy", Value: "penicillin", Confidence: episode.ConfidenceHigh},
		{ID: uuid.New().String(), Type: episode.MemoryCondition, Label: "Condition", Value: "asthma", Confidence: episode.ConfidenceMedium},
		{ID: uuid.New().String(), Type: episode.MemoryMedication, Label: "Medication", Value: "albuterol", Confidence: episode.ConfidenceMedium},
	}
	for _, cand := range candidates {
		require.NoError(t, store.Confirm(ctx, "member-1", cand))
	}

	snap, err := store.Snapshot(ctx, "member-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"penicillin"}, snap.Allergies)
	assert.Equal(t, []string{"asthma"}, snap.Conditions)
	assert.Equal(t, []string{"albuterol"}, snap.Medications)

	// Other members see nothing
	other, err := store.Snapshot(ctx, "member-2")
	require.NoError(t, err)
	assert.True(t, other.IsEmpty())
}

func TestMemoryFactStoreConfirmIsIdempotent(t *testing.T) {
	db := createTestDB(t)
	store := NewMemoryFactStore(db)
	ctx := context.Background()

	cand := episode.MemoryCandidate{
		ID: uuid.New().String(), Type: episode.MemoryTrigger,
		Label: "Trigger", Value: "dairy", Confidence: episode.ConfidenceLow,
	}
	require.NoError(t, store.Confirm(ctx, "member-1", cand))

	// Same value again with a fresh ID should not duplicate
	cand.ID = uuid.New().String()
	cand.Confidence = episode.ConfidenceHigh
	require.NoError(t, store.Confirm(ctx, "member-1", cand))

	snap, err := store.Snapshot(ctx, "member-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"dairy"}, snap.Triggers)
}

func TestMemoryFactStoreRejectsZeroType(t *testing.T) {
	db := createTestDB(t)
	store := NewMemoryFactStore(db)

	err := store.Confirm(context.Background(), "member-1", episode.MemoryCandidate{
		ID: uuid.New().String(), Value: "something",
	})
	assert.Error(t, err)
}

func TestMemoryFactStoreForget(t *testing.T) {
	db := createTestDB(t)
	store := NewMemoryFactStore(db)
	ctx := context.Background()

	cand := episode.MemoryCandidate{
		ID: uuid.New().String(), Type: episode.MemoryPreference,
		Label: "Preference", Value: "avoid needles", Confidence: episode.ConfidenceLow,
	}
	require.NoError(t, store.Confirm(ctx, "member-1", cand))
	require.NoError(t, store.Forget(ctx, "member-1", episode.MemoryPreference, "avoid needles"))

	snap, err := store.Snapshot(ctx, "member-1")
	require.NoError(t, err)
	assert.True(t, snap.IsEmpty())

	assert.ErrorIs(t, store.Forget(ctx, "member-1", episode.MemoryPreference, "avoid needles"), ErrNotFound)
}
