package differential

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carebridge/symptom-triage/triage/episode"
)

func ctxWith(symptom string, notes ...string) episode.HealthContext {
	return episode.HealthContext{PrimarySymptom: symptom, AdditionalNotes: notes}
}

// TestGenerate_CapAndUniqueness verifies every result list has at most three
// entries with pairwise distinct names.
func TestGenerate_CapAndUniqueness(t *testing.T) {
	contexts := []episode.HealthContext{
		ctxWith("headache", "stress at work", "too much screen time", "tension in my neck"),
		ctxWith("fever and cough", "sore throat", "body ache"),
		ctxWith("nausea and vomiting", "stomach cramp"),
		ctxWith("something unclassifiable"),
	}

	for _, ctx := range contexts {
		got := Generate(ctx, episode.SafetyAssessment{Urgency: episode.UrgencySelfCare})
		assert.NotEmpty(t, got)
		assert.LessOrEqual(t, len(got), 3)
		seen := map[string]bool{}
		for _, p := range got {
			assert.False(t, seen[p.Name], "duplicate name %q", p.Name)
			seen[p.Name] = true
		}
	}
}

// TestGenerate_OptionalUpgrade verifies two or more optional matches upgrade
// likelihood one tier, capped at high.
func TestGenerate_OptionalUpgrade(t *testing.T) {
	// Only the required symptom: baseline likelihoods.
	baseline := Generate(ctxWith("headache"), episode.SafetyAssessment{})
	assert.Equal(t, "Tension-type headache", baseline[0].Name)
	assert.Equal(t, episode.LikelihoodModerate, baseline[0].Likelihood)

	// Stress + screen + neck: three optional matches, everything upgrades.
	upgraded := Generate(ctxWith("headache", "stress", "screen time", "neck strain"), episode.SafetyAssessment{})
	assert.Equal(t, episode.LikelihoodHigh, upgraded[0].Likelihood)
}

// TestGenerate_HardExclusion verifies excluding symptoms suppress a pattern
// even when its required symptoms match.
func TestGenerate_HardExclusion(t *testing.T) {
	got := Generate(ctxWith("worst headache of my life"), episode.SafetyAssessment{})
	for _, p := range got {
		assert.NotEqual(t, "Tension-type headache", p.Name)
	}
}

// TestGenerate_AgeModifiers verifies pediatric and senior extras only appear
// for the matching age group.
func TestGenerate_AgeModifiers(t *testing.T) {
	ctx := ctxWith("fever", "cough")

	adult := Generate(ctx, episode.SafetyAssessment{})
	for _, p := range adult {
		assert.NotEqual(t, "Common childhood viral illness", p.Name)
		assert.NotEqual(t, "Possible bacterial infection", p.Name)
	}

	ctx.AgeGroup = episode.AgeChild
	child := Generate(ctx, episode.SafetyAssessment{})
	names := make([]string, 0, len(child))
	for _, p := range child {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "Common childhood viral illness")

	ctx.AgeGroup = episode.AgeSenior
	senior := Generate(ctx, episode.SafetyAssessment{})
	names = names[:0]
	for _, p := range senior {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "Possible bacterial infection")
}

// TestGenerate_PlaceholderNeverEmpty verifies the generic placeholder is
// returned instead of an empty list.
func TestGenerate_PlaceholderNeverEmpty(t *testing.T) {
	got := Generate(ctxWith("xyzzy"), episode.SafetyAssessment{})
	assert.Len(t, got, 1)
	assert.Equal(t, "Further evaluation needed", got[0].Name)
}

// TestGenerate_SortedByLikelihood verifies high ranks before moderate before
// low in the returned order.
func TestGenerate_SortedByLikelihood(t *testing.T) {
	got := Generate(ctxWith("headache", "stress", "screen", "nausea"), episode.SafetyAssessment{})
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Likelihood.Rank(), got[i].Likelihood.Rank())
	}
}
