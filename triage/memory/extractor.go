// Package memory extracts proposed durable health facts from conversation
// text. Candidates are only ever offered to the caller for explicit user
// confirmation; nothing is saved here. The closed episode.MemoryType set
// guarantees one-time symptoms, emotional states, and past episodes can
// never be proposed for persistence.
package memory

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/carebridge/symptom-triage/triage/episode"
)

// extractionRule pairs a capture pattern with the memory type and
// confidence it yields. Patterns run against lower-cased input; the first
// capture group is the candidate value.
type extractionRule struct {
	pattern    *regexp.Regexp
	memType    episode.MemoryType
	label      string
	confidence episode.MemoryConfidence
	reason     string
}

var extractionRules = []extractionRule{
	{
		pattern:    regexp.MustCompile(`(?:i'?m |i am )?allerg(?:ic|y) to ([a-z][a-z ]{1,40}?)(?:\.|,|;| and | so | but |$)`),
		memType:    episode.MemoryAllergy,
		label:      "Allergy",
		confidence: episode.ConfidenceHigh,
		reason:     "You mentioned an allergy",
	},
	{
		pattern:    regexp.MustCompile(`diagnosed with ([a-z][a-z ]{1,40}?)(?:\.|,|;| and | so | but |$)`),
		memType:    episode.MemoryCondition,
		label:      "Condition",
		confidence: episode.ConfidenceHigh,
		reason:     "You mentioned a diagnosed condition",
	},
	{
		pattern:    regexp.MustCompile(`i have (?:a history of )?(diabetes|asthma|hypertension|high blood pressure|migraines|arthritis|anxiety|depression|copd|heart disease|thyroid [a-z]+)`),
		memType:    episode.MemoryCondition,
		label:      "Condition",
		confidence: episode.ConfidenceMedium,
		reason:     "You mentioned an ongoing condition",
	},
	{
		pattern:    regexp.MustCompile(`i(?:'m| am)? (?:currently )?(?:take|taking|on) ([a-z][a-z0-9 ]{1,40}?)(?: daily| every| each| twice| once|\.|,|;| and | for |$)`),
		memType:    episode.MemoryMedication,
		label:      "Medication",
		confidence: episode.ConfidenceMedium,
		reason:     "You mentioned a medication you take regularly",
	},
	{
		pattern:    regexp.MustCompile(`i(?:'d| would)? (?:prefer|rather) ([a-z][a-z ]{1,40}?)(?:\.|,|;| over |$)`),
		memType:    episode.MemoryPreference,
		label:      "Preference",
		confidence: episode.ConfidenceLow,
		reason:     "You expressed a care preference",
	},
	{
		pattern:    regexp.MustCompile(`(?:triggered by|flares? up (?:when|after)|always happens (?:when|after)) ([a-z][a-z ]{1,40}?)(?:\.|,|;|$)`),
		memType:    episode.MemoryTrigger,
		label:      "Trigger",
		confidence: episode.ConfidenceLow,
		reason:     "This sounds like a recurring trigger",
	},
}

// Extract proposes memory candidates found in the given message text. It
// returns nothing for text that only describes the current complaint:
// transient symptoms are deliberately not extractable.
func Extract(text string) []episode.MemoryCandidate {
	lowered := strings.ToLower(text)

	var out []episode.MemoryCandidate
	seen := make(map[string]bool)

	for _, rule := range extractionRules {
		for _, m := range rule.pattern.FindAllStringSubmatch(lowered, -1) {
			value := strings.TrimSpace(m[1])
			if value == "" {
				continue
			}
			key := rule.memType.String() + ":" + value
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, episode.MemoryCandidate{
				ID:         uuid.New().String(),
				Type:       rule.memType,
				Label:      rule.label,
				Value:      value,
				Confidence: rule.confidence,
				Reason:     rule.reason,
			})
		}
	}
	return out
}

// ApplySnapshot pre-fills the health context from previously confirmed
// facts so the question flow does not re-ask what is already known.
func ApplySnapshot(ctx episode.HealthContext, snapshot episode.MemorySnapshot) episode.HealthContext {
	ctx.ChronicConditions = episode.AppendUnique(ctx.ChronicConditions, snapshot.Conditions...)
	ctx.RiskFactors = episode.AppendUnique(ctx.RiskFactors, snapshot.Allergies...)
	return ctx
}
