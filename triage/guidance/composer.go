package guidance

import (
	"fmt"
	"strings"
	"time"

	"github.com/carebridge/symptom-triage/triage/classify"
	"github.com/carebridge/symptom-triage/triage/episode"
)

// GuidanceResponse is the full structured payload returned to the caller
// once the question flow signals enough information.
type GuidanceResponse struct {
	Understanding       string                            `json:"understanding"`
	PossibleCauses      []string                          `json:"possible_causes"`
	ImmediateActions    []string                          `json:"immediate_actions"`
	WhenToSeekHelp      []string                          `json:"when_to_seek_help"`
	SuggestedActions    []SuggestedAction                 `json:"suggested_actions"`
	RecommendedServices []string                          `json:"recommended_services"`
	RiskLevel           episode.RiskLevel                 `json:"risk_level"`
	DetectedSymptoms    []string                          `json:"detected_symptoms"`
	Differentials       []episode.DifferentialPossibility `json:"differentials,omitempty"`
}

const (
	maxCauseEntries   = 2
	maxCausesPerEntry = 3
	maxActionEntries  = 2
	maxActionsEach    = 3
	maxActionLines    = 5
	maxSeekEntries    = 2
	maxSeekEach       = 2
	maxSeekLines      = 5

	understandingOpening = "Thanks for sharing. It sounds like you're dealing with"
	severityQualifier    = "and it sounds quite intense"
)

// durationPhrases humanizes the duration enum for the understanding line
// and booking notes.
var durationPhrases = map[episode.Duration]string{
	episode.DurationJustNow:        "that just started",
	episode.DurationFewHours:       "for the past few hours",
	episode.DurationToday:          "since earlier today",
	episode.DurationOneTwoDays:     "for a day or two",
	episode.DurationThreeSevenDays: "for several days",
	episode.DurationOneTwoWeeks:    "for about a week or two",
	episode.DurationOverTwoWeeks:   "for more than two weeks",
	episode.DurationChronic:        "as an ongoing, long-term issue",
}

// humanizeDuration renders the duration enum as a phrase, with a neutral
// fallback for unset or unmapped values.
func humanizeDuration(d episode.Duration) string {
	if phrase, ok := durationPhrases[d]; ok {
		return phrase
	}
	return "for some time"
}

// symptomFillers are leading first-person phrases stripped before the raw
// symptom text is embedded in a sentence.
var symptomFillers = []string{
	"i think i have ",
	"i've been having ",
	"i have been having ",
	"i'm having ",
	"i am having ",
	"i've got ",
	"i have got ",
	"i've had ",
	"i have had ",
	"i have ",
	"i got ",
	"my ",
}

// cleanSymptom lower-cases the primary symptom and trims first-person
// filler and trailing punctuation so it reads naturally mid-sentence.
func cleanSymptom(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, f := range symptomFillers {
		if strings.HasPrefix(s, f) {
			s = strings.TrimSpace(strings.TrimPrefix(s, f))
			break
		}
	}
	return strings.TrimRight(s, ".!? ")
}

// Compose assembles the guidance response from the accumulated context, the
// safety assessment, and the generated differentials. Pure: same inputs,
// same output, aside from the booking date derived from now.
func Compose(ctx episode.HealthContext, assessment episode.SafetyAssessment, differentials []episode.DifferentialPossibility, profile *MemberProfile) GuidanceResponse {
	return composeAt(ctx, assessment, differentials, profile, time.Now())
}

// composeAt is Compose with an injectable clock for tests.
func composeAt(ctx episode.HealthContext, assessment episode.SafetyAssessment, differentials []episode.DifferentialPossibility, profile *MemberProfile, now time.Time) GuidanceResponse {
	text := ctx.JoinedText()
	matched := matchEntries(text, maxCauseEntries)

	return GuidanceResponse{
		Understanding:       understandingLine(ctx),
		PossibleCauses:      possibleCauses(matched),
		ImmediateActions:    immediateActions(text, matched, assessment),
		WhenToSeekHelp:      whenToSeekHelp(matched, assessment),
		SuggestedActions:    suggestedActions(ctx, assessment.Urgency, profile, now),
		RecommendedServices: recommendedServices(assessment.Urgency),
		RiskLevel:           episode.RiskForUrgency(assessment.Urgency),
		DetectedSymptoms:    detectedSymptoms(ctx),
		Differentials:       differentials,
	}
}

// understandingLine builds the opening statement: preferred opening, the
// primary symptom lower-cased, a humanized duration, and a severity
// qualifier only when severity is 7 or above.
func understandingLine(ctx episode.HealthContext) string {
	symptom := cleanSymptom(ctx.PrimarySymptom)
	if symptom == "" {
		symptom = "some discomfort"
	}

	line := fmt.Sprintf("%s %s %s", understandingOpening, symptom, humanizeDuration(ctx.Duration))
	if ctx.HasSeverity() && ctx.SeverityValue() >= 7 {
		line += ", " + severityQualifier
	}
	return line + "."
}

// possibleCauses unions up to two matching entries' causes, or the generic
// fallback lines, always closing with the disclaimer.
func possibleCauses(matched []entry) []string {
	var causes []string
	for _, e := range matched {
		causes = append(causes, firstN(e.Causes, maxCausesPerEntry)...)
	}
	if len(causes) == 0 {
		causes = append(causes, genericCauses...)
	}
	causes = append(causes, causesDisclaimer)
	return dedupe(causes, len(causes))
}

// immediateActions builds the do-now list: an attention lead for
// emergency/urgent, crisis resources when warranted, matched entry actions,
// and generic rest/hydration fill for self-care.
func immediateActions(text string, matched []entry, assessment episode.SafetyAssessment) []string {
	var actions []string
	urgency := assessment.Urgency

	// Crisis wording given as the answer to a typed question collapses
	// into a structured field and never reaches the context text. The
	// matched keywords survive in the red-flag list, so scan both.
	signals := text + " " + strings.Join(assessment.RedFlagsDetected, " ")

	if urgency == episode.UrgencyEmergency || urgency == episode.UrgencyUrgent {
		actions = append(actions, seekAttentionLead)
	}
	if urgency == episode.UrgencyEmergency {
		actions = append(actions, resourceEmergency)
	}
	if classify.IsCrisisText(signals) {
		actions = append(actions, resourceCrisisLine)
	}
	if classify.IsOverdoseText(signals) {
		actions = append(actions, resourcePoisonControl, resourceCrisisLine)
	}

	for _, e := range firstNEntries(matched, maxActionEntries) {
		actions = append(actions, firstN(e.Actions, maxActionsEach)...)
	}

	if len(actions) == 0 && urgency == episode.UrgencySelfCare {
		actions = append(actions, genericSelfCareActions...)
	}

	return dedupe(actions, maxActionLines)
}

// whenToSeekHelp builds the red-flag watch list: a lead warning when red
// flags were detected, matched entries' items, and the two generic
// catch-alls.
func whenToSeekHelp(matched []entry, assessment episode.SafetyAssessment) []string {
	var items []string
	if len(assessment.RedFlagsDetected) > 0 {
		items = append(items, redFlagLead)
	}
	for _, e := range firstNEntries(matched, maxSeekEntries) {
		items = append(items, firstN(e.WhenToSeekHelp, maxSeekEach)...)
	}
	items = append(items, genericSeekHelp...)
	return dedupe(items, maxSeekLines)
}

func detectedSymptoms(ctx episode.HealthContext) []string {
	symptoms := []string{cleanSymptom(ctx.PrimarySymptom)}
	for _, s := range ctx.AssociatedSymptoms {
		symptoms = append(symptoms, strings.ToLower(s))
	}
	return dedupe(symptoms, len(symptoms))
}

// containsKeyword does a plain substring test on lower-cased text.
func containsKeyword(text, keyword string) bool {
	return strings.Contains(text, keyword)
}

func firstN(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}

func firstNEntries(list []entry, n int) []entry {
	if len(list) > n {
		return list[:n]
	}
	return list
}

// dedupe removes duplicates preserving first-seen order, capped at limit.
func dedupe(list []string, limit int) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out
}
