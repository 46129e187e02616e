// Package classify implements the layered triage classifier. Rules are an
// explicit ordered cascade evaluated top-down with early return, never a
// scoring system: pediatric and senior overrides must dominate the generic
// keyword rules because the same phrase carries different risk by age.
package classify

import (
	"strings"

	"github.com/carebridge/symptom-triage/triage/episode"
)

// internalLevel is the classifier's working severity scale. It carries two
// more grades than the external enum; External folds them down before the
// result leaves this package.
type internalLevel int

// levelMonitor and levelNonUrgent have no cascade rule of their own today;
// they pin where the six-grade working scale folds at the boundary so a
// future rule tier can slot in without renumbering.
const (
	levelSelfCare internalLevel = iota
	levelMonitor
	levelNonUrgent
	levelSoon
	levelUrgent
	levelEmergency
)

// external maps an internal level to the 4-value boundary enum. The
// non-urgent grade still warrants a consult, so it folds into soon; the
// monitor grade folds into self-care.
func (l internalLevel) external() episode.Urgency {
	switch l {
	case levelEmergency:
		return episode.UrgencyEmergency
	case levelUrgent:
		return episode.UrgencyUrgent
	case levelSoon, levelNonUrgent:
		return episode.UrgencySoon
	default:
		return episode.UrgencySelfCare
	}
}

// emergencyKeywords trigger an emergency classification regardless of age.
var emergencyKeywords = []string{
	"chest pain",
	"can't breathe",
	"cannot breathe",
	"not breathing",
	"unconscious",
	"severe bleeding",
	"stroke",
	"seizure",
}

// crisisKeywords indicate self-harm risk; they classify as emergency and the
// composer must surface the 988 crisis line for them.
var crisisKeywords = []string{
	"suicid",
	"kill myself",
	"want to die",
	"end my life",
	"hurt myself",
}

// overdoseKeywords indicate possible poisoning; emergency, with Poison
// Control surfaced downstream.
var overdoseKeywords = []string{
	"overdose",
	"took too many pills",
	"too many pills",
	"swallowed",
	"poison",
}

var feverKeywords = []string{"fever", "feverish", "temperature", "102", "103", "104"}

// pediatricWarnings are urgent for infants and children even without any
// generic urgent keyword.
var pediatricWarnings = []string{
	"not eating",
	"not drinking",
	"lethargic",
	"limp",
	"won't wake",
	"rash",
	"vomiting",
}

// seniorWarnings are urgent for seniors.
var seniorWarnings = []string{"fall", "fell", "confusion", "confused"}

var urgentKeywords = []string{
	"high fever",
	"severe pain",
	"vomiting blood",
	"sudden weakness",
	"blood in stool",
}

var soonKeywords = []string{
	"persistent",
	"getting worse",
	"several days",
	"spreading",
}

// Classify maps accumulated symptom text plus age context to an urgency
// level. It is pure and deterministic: the first matching rule wins and
// later rules are not reached. RedFlagsDetected collects every keyword
// matched in the tiers that were actually evaluated, including age-gated
// tiers whose gate did not fire.
func Classify(text string, ageGroup episode.AgeGroup) episode.SafetyAssessment {
	lowered := strings.ToLower(text)
	var redFlags []string

	collect := func(keywords []string) bool {
		matched := false
		for _, kw := range keywords {
			if strings.Contains(lowered, kw) {
				redFlags = episode.AppendUnique(redFlags, kw)
				matched = true
			}
		}
		return matched
	}

	result := func(l internalLevel) episode.SafetyAssessment {
		return episode.SafetyAssessment{Urgency: l.external(), RedFlagsDetected: redFlags}
	}

	// 1. Emergency keywords win over everything, regardless of age.
	emergencyHit := collect(emergencyKeywords)
	emergencyHit = collect(crisisKeywords) || emergencyHit
	emergencyHit = collect(overdoseKeywords) || emergencyHit
	if emergencyHit {
		return result(levelEmergency)
	}

	// 2-3. Fever with a pediatric age. Infant fever is never downgraded.
	feverHit := collect(feverKeywords)
	if feverHit && ageGroup == episode.AgeInfant {
		return result(levelEmergency)
	}
	if feverHit && ageGroup.IsPediatric() {
		return result(levelUrgent)
	}

	// 4. Pediatric warning signs.
	if ageGroup.IsPediatric() && collect(pediatricWarnings) {
		return result(levelUrgent)
	}

	// 5. Senior falls and confusion.
	if ageGroup == episode.AgeSenior && collect(seniorWarnings) {
		return result(levelUrgent)
	}

	// 6. Generic urgent keywords.
	if collect(urgentKeywords) {
		return result(levelUrgent)
	}

	// 7. Worsening or persistent complaints should be seen soon.
	if collect(soonKeywords) {
		return result(levelSoon)
	}

	// 8. Default.
	return result(levelSelfCare)
}

// IsCrisisText reports whether the text carries self-harm signals. The
// guidance composer uses this to surface crisis resources.
func IsCrisisText(text string) bool {
	return containsAny(strings.ToLower(text), crisisKeywords)
}

// IsOverdoseText reports whether the text suggests an overdose or poisoning.
func IsOverdoseText(text string) bool {
	return containsAny(strings.ToLower(text), overdoseKeywords)
}

func containsAny(lowered string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
