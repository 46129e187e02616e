package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carebridge/symptom-triage/triage/episode"
)

// TestClassify_EmergencyKeywordsAlwaysWin verifies rule 1 dominates any
// other content regardless of age.
func TestClassify_EmergencyKeywordsAlwaysWin(t *testing.T) {
	inputs := []string{
		"I have chest pain",
		"she can't breathe",
		"he is unconscious after the fall",
		"severe bleeding from the cut",
		"I think my dad is having a stroke",
		"my son had a seizure and a slight fever",
		"the baby is not breathing",
	}

	for _, in := range inputs {
		for _, age := range []episode.AgeGroup{episode.AgeInfant, episode.AgeChild, episode.AgeAdult, episode.AgeSenior, ""} {
			a := Classify(in, age)
			assert.Equal(t, episode.UrgencyEmergency, a.Urgency, "input %q age %q", in, age)
			assert.NotEmpty(t, a.RedFlagsDetected)
		}
	}
}

// TestClassify_InfantFeverIsEmergency verifies the infant fever override is
// never downgraded, even when only generic urgent keywords also match.
func TestClassify_InfantFeverIsEmergency(t *testing.T) {
	a := Classify("my infant has a fever of 102", episode.AgeInfant)
	assert.Equal(t, episode.UrgencyEmergency, a.Urgency)

	// The same text for a child is urgent, not emergency.
	a = Classify("high fever since yesterday", episode.AgeChild)
	assert.Equal(t, episode.UrgencyUrgent, a.Urgency)

	// And for an adult it falls through to the generic urgent rule.
	a = Classify("high fever since yesterday", episode.AgeAdult)
	assert.Equal(t, episode.UrgencyUrgent, a.Urgency)
}

// TestClassify_PediatricWarningSigns verifies rule 4 fires only for
// pediatric ages.
func TestClassify_PediatricWarningSigns(t *testing.T) {
	a := Classify("he is lethargic and not drinking", episode.AgeChild)
	assert.Equal(t, episode.UrgencyUrgent, a.Urgency)
	assert.Contains(t, a.RedFlagsDetected, "lethargic")
	assert.Contains(t, a.RedFlagsDetected, "not drinking")

	a = Classify("feeling lethargic today", episode.AgeAdult)
	assert.Equal(t, episode.UrgencySelfCare, a.Urgency)
}

// TestClassify_SeniorOverrides verifies falls and confusion escalate for
// seniors but not for younger adults.
func TestClassify_SeniorOverrides(t *testing.T) {
	a := Classify("my mother fell this morning and seems confused", episode.AgeSenior)
	assert.Equal(t, episode.UrgencyUrgent, a.Urgency)

	a = Classify("I fell while jogging", episode.AgeAdult)
	assert.Equal(t, episode.UrgencySelfCare, a.Urgency)
}

// TestClassify_SoonAndDefault covers the lower tiers.
func TestClassify_SoonAndDefault(t *testing.T) {
	a := Classify("the rash is spreading and getting worse", episode.AgeAdult)
	assert.Equal(t, episode.UrgencySoon, a.Urgency)
	assert.Contains(t, a.RedFlagsDetected, "spreading")
	assert.Contains(t, a.RedFlagsDetected, "getting worse")

	a = Classify("I have a slight headache", episode.AgeAdult)
	assert.Equal(t, episode.UrgencySelfCare, a.Urgency)
	assert.Empty(t, a.RedFlagsDetected)
}

// TestClassify_RedFlagsFromNonWinningTiers verifies red flags collect from
// evaluated tiers even when a later rule decides the urgency.
func TestClassify_RedFlagsFromNonWinningTiers(t *testing.T) {
	// Fever is matched (tier 2/3 evaluated) but the adult age gate fails,
	// so the urgency comes from the soon tier; the fever flag must remain.
	a := Classify("fever that is getting worse", episode.AgeAdult)
	assert.Equal(t, episode.UrgencySoon, a.Urgency)
	assert.Contains(t, a.RedFlagsDetected, "fever")
	assert.Contains(t, a.RedFlagsDetected, "getting worse")
}

// TestInternalLevelFold pins the mapping from the six-grade working scale
// down to the four boundary values, including the two grades no cascade
// rule currently produces.
func TestInternalLevelFold(t *testing.T) {
	cases := map[internalLevel]episode.Urgency{
		levelEmergency: episode.UrgencyEmergency,
		levelUrgent:    episode.UrgencyUrgent,
		levelSoon:      episode.UrgencySoon,
		levelNonUrgent: episode.UrgencySoon,
		levelMonitor:   episode.UrgencySelfCare,
		levelSelfCare:  episode.UrgencySelfCare,
	}
	for level, want := range cases {
		assert.Equal(t, want, level.external())
	}
}

// TestClassify_Deterministic verifies repeated calls agree.
func TestClassify_Deterministic(t *testing.T) {
	first := Classify("persistent cough for several days", episode.AgeAdult)
	second := Classify("persistent cough for several days", episode.AgeAdult)
	assert.Equal(t, first, second)
}

// TestCrisisAndOverdoseDetection covers the helper predicates the composer
// relies on for resource injection.
func TestCrisisAndOverdoseDetection(t *testing.T) {
	assert.True(t, IsCrisisText("I want to die"))
	assert.True(t, IsOverdoseText("I took too many pills"))
	assert.False(t, IsCrisisText("my foot hurts"))
	assert.False(t, IsOverdoseText("mild headache"))

	// Both route to emergency through the cascade.
	a := Classify("I took too many pills", episode.AgeAdult)
	assert.Equal(t, episode.UrgencyEmergency, a.Urgency)
}
