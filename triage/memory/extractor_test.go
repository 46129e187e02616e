package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/symptom-triage/triage/episode"
)

// TestExtract_AllTypesAllowed verifies every produced type is a member of
// the closed allow-list.
func TestExtract_AllTypesAllowed(t *testing.T) {
	texts := []string{
		"I'm allergic to penicillin and my head hurts",
		"I was diagnosed with asthma as a kid",
		"I have diabetes, and I take metformin daily",
		"I'd rather avoid needles. It flares up when I eat dairy.",
	}

	valid := map[string]bool{}
	for _, mt := range episode.AllMemoryTypes() {
		valid[mt.String()] = true
	}

	for _, text := range texts {
		for _, cand := range Extract(text) {
			assert.True(t, valid[cand.Type.String()], "type %q", cand.Type)
			assert.False(t, cand.Type.IsZero())
			assert.NotEmpty(t, cand.ID)
			assert.NotEmpty(t, cand.Value)
		}
	}
}

// TestExtract_Allergy verifies the allergy capture.
func TestExtract_Allergy(t *testing.T) {
	got := Extract("I'm allergic to penicillin, and I have a headache")
	require.NotEmpty(t, got)
	assert.Equal(t, episode.MemoryAllergy, got[0].Type)
	assert.Equal(t, "penicillin", got[0].Value)
	assert.Equal(t, episode.ConfidenceHigh, got[0].Confidence)
}

// TestExtract_MedicationAndCondition verifies multiple candidates from one
// message, deduplicated by type and value.
func TestExtract_MedicationAndCondition(t *testing.T) {
	got := Extract("I have diabetes and I take metformin daily. I take metformin daily.")

	var types []string
	for _, c := range got {
		types = append(types, c.Type.String())
	}
	assert.Contains(t, types, "condition")
	assert.Contains(t, types, "medication")

	meds := 0
	for _, c := range got {
		if c.Type == episode.MemoryMedication {
			meds++
		}
	}
	assert.Equal(t, 1, meds, "duplicate medication should collapse")
}

// TestExtract_TransientSymptomsIgnored verifies one-time symptoms and
// emotional states never become candidates.
func TestExtract_TransientSymptomsIgnored(t *testing.T) {
	texts := []string{
		"I have a terrible headache",
		"I feel really anxious today",
		"I threw up this morning",
		"last year I had the flu",
	}
	for _, text := range texts {
		assert.Empty(t, Extract(text), "text %q", text)
	}
}

// TestApplySnapshot verifies snapshot facts pre-fill the context without
// dropping existing values.
func TestApplySnapshot(t *testing.T) {
	ctx := episode.HealthContext{
		PrimarySymptom:    "headache",
		ChronicConditions: []string{"asthma"},
	}
	snapshot := episode.MemorySnapshot{
		Conditions: []string{"asthma", "hypertension"},
		Allergies:  []string{"penicillin"},
	}

	got := ApplySnapshot(ctx, snapshot)
	assert.ElementsMatch(t, []string{"asthma", "hypertension"}, got.ChronicConditions)
	assert.Contains(t, got.RiskFactors, "penicillin")
}
