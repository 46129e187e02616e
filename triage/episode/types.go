// Package episode defines the value types that accumulate over a single
// health conversation: the health context, the question-flow state, and the
// safety/memory types derived from them. All types are plain values; callers
// own them and pass updated copies back in (no hidden shared state).
package episode

import "strings"

// Duration buckets how long the primary symptom has been present.
type Duration string

const (
	DurationJustNow        Duration = "just_now"
	DurationFewHours       Duration = "few_hours"
	DurationToday          Duration = "today"
	DurationOneTwoDays     Duration = "1_2_days"
	DurationThreeSevenDays Duration = "3_7_days"
	DurationOneTwoWeeks    Duration = "1_2_weeks"
	DurationOverTwoWeeks   Duration = "more_than_2_weeks"
	DurationChronic        Duration = "chronic"
)

// Frequency describes how often the symptom occurs.
type Frequency string

const (
	FrequencyConstant     Frequency = "constant"
	FrequencyIntermittent Frequency = "intermittent"
	FrequencyOccasional   Frequency = "occasional"
	FrequencyFirstTime    Frequency = "first_time"
)

// AgeGroup buckets the person the conversation is about.
type AgeGroup string

const (
	AgeInfant AgeGroup = "infant"
	AgeChild  AgeGroup = "child"
	AgeTeen   AgeGroup = "teen"
	AgeAdult  AgeGroup = "adult"
	AgeSenior AgeGroup = "senior"
)

// IsPediatric reports whether the age group gets pediatric safety overrides.
func (a AgeGroup) IsPediatric() bool {
	return a == AgeInfant || a == AgeChild
}

// HealthContext is the accumulating structured record of what is known about
// the current complaint. Fields are monotonically added or overwritten, never
// silently dropped.
type HealthContext struct {
	PrimarySymptom     string    `json:"primary_symptom"`
	Duration           Duration  `json:"duration,omitempty"`
	Severity           *int      `json:"severity,omitempty"` // 0-10 once set
	Frequency          Frequency `json:"frequency,omitempty"`
	AssociatedSymptoms []string  `json:"associated_symptoms,omitempty"`
	AgeGroup           AgeGroup  `json:"age_group,omitempty"`
	ChronicConditions  []string  `json:"chronic_conditions,omitempty"`
	RiskFactors        []string  `json:"risk_factors,omitempty"`
	RecentEvents       []string  `json:"recent_events,omitempty"`
	AdditionalNotes    []string  `json:"additional_notes,omitempty"`
}

// HasSeverity reports whether a severity rating was captured.
func (hc HealthContext) HasSeverity() bool { return hc.Severity != nil }

// SeverityValue returns the captured severity, or -1 when unset.
func (hc HealthContext) SeverityValue() int {
	if hc.Severity == nil {
		return -1
	}
	return *hc.Severity
}

// WithSeverity returns a copy with severity set, clamped to [0,10].
func (hc HealthContext) WithSeverity(v int) HealthContext {
	if v < 0 {
		v = 0
	}
	if v > 10 {
		v = 10
	}
	hc.Severity = &v
	return hc
}

// JoinedText flattens everything known about the complaint into one
// lower-cased string for keyword matching.
func (hc HealthContext) JoinedText() string {
	parts := []string{hc.PrimarySymptom}
	parts = append(parts, hc.AssociatedSymptoms...)
	parts = append(parts, hc.ChronicConditions...)
	parts = append(parts, hc.RiskFactors...)
	parts = append(parts, hc.RecentEvents...)
	parts = append(parts, hc.AdditionalNotes...)
	return strings.ToLower(strings.Join(parts, " "))
}

// AppendUnique adds values to a string set preserving first-seen order.
func AppendUnique(set []string, values ...string) []string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		dup := false
		for _, existing := range set {
			if strings.EqualFold(existing, v) {
				dup = true
				break
			}
		}
		if !dup {
			set = append(set, v)
		}
	}
	return set
}
