package guidance

import (
	"fmt"
	"strings"
	"time"

	"github.com/carebridge/symptom-triage/triage/episode"
)

// ActionType identifies a suggested next step the caller can render as a CTA.
type ActionType string

const (
	ActionCallEmergency  ActionType = "call_emergency"
	ActionBookDoctor     ActionType = "book_doctor"
	ActionVideoConsult   ActionType = "video_consult"
	ActionMonitorAtHome  ActionType = "monitor_at_home"
	ActionNoActionNeeded ActionType = "no_action_needed"
)

// BookingPrefill carries scheduling data attached to schedulable actions.
type BookingPrefill struct {
	MemberID      string `json:"member_id,omitempty"`
	PreferredDate string `json:"preferred_date"` // YYYY-MM-DD
	Notes         string `json:"notes"`
}

// SuggestedAction is one entry of the urgency-driven CTA list; the first
// entry is the primary call to action.
type SuggestedAction struct {
	Type    ActionType      `json:"type"`
	Label   string          `json:"label"`
	Booking *BookingPrefill `json:"booking,omitempty"`
}

// MemberProfile is the optional caller identity used for booking prefill.
type MemberProfile struct {
	MemberID string
	Name     string
}

var actionLabels = map[ActionType]string{
	ActionCallEmergency:  "Call 911",
	ActionBookDoctor:     "Book a doctor's appointment",
	ActionVideoConsult:   "Start a video consult",
	ActionMonitorAtHome:  "Monitor at home",
	ActionNoActionNeeded: "No action needed right now",
}

// actionsForUrgency is the fixed urgency-to-CTA table. The internal
// non-urgent grade folds into soon before composition, so four external
// rows cover the boundary enum.
var actionsForUrgency = map[episode.Urgency][]ActionType{
	episode.UrgencyEmergency: {ActionCallEmergency},
	episode.UrgencyUrgent:    {ActionBookDoctor, ActionVideoConsult},
	episode.UrgencySoon:      {ActionBookDoctor, ActionVideoConsult},
	episode.UrgencySelfCare:  {ActionMonitorAtHome, ActionNoActionNeeded},
}

// schedulable reports whether an action carries booking prefill data.
func schedulable(t ActionType) bool { return t == ActionBookDoctor }

// suggestedActions builds the ordered CTA list for the urgency level,
// attaching booking prefill only to schedulable actions.
func suggestedActions(ctx episode.HealthContext, urgency episode.Urgency, profile *MemberProfile, now time.Time) []SuggestedAction {
	types := actionsForUrgency[urgency]
	out := make([]SuggestedAction, 0, len(types))
	for _, t := range types {
		action := SuggestedAction{Type: t, Label: actionLabels[t]}
		if schedulable(t) {
			action.Booking = buildPrefill(ctx, urgency, profile, now)
		}
		out = append(out, action)
	}
	return out
}

// buildPrefill assembles booking notes from the captured context. Urgent
// cases prefer a same-day slot; everything else the next day.
func buildPrefill(ctx episode.HealthContext, urgency episode.Urgency, profile *MemberProfile, now time.Time) *BookingPrefill {
	date := now.AddDate(0, 0, 1)
	if urgency == episode.UrgencyUrgent {
		date = now
	}

	var notes []string
	if symptom := cleanSymptom(ctx.PrimarySymptom); symptom != "" {
		notes = append(notes, fmt.Sprintf("Primary symptom: %s", symptom))
	}
	if ctx.Duration != "" {
		notes = append(notes, fmt.Sprintf("Duration: %s", humanizeDuration(ctx.Duration)))
	}
	if ctx.HasSeverity() {
		notes = append(notes, fmt.Sprintf("Severity: %d/10", ctx.SeverityValue()))
	}
	if len(ctx.AssociatedSymptoms) > 0 {
		notes = append(notes, fmt.Sprintf("Also reporting: %s", strings.Join(ctx.AssociatedSymptoms, ", ")))
	}

	prefill := &BookingPrefill{
		PreferredDate: date.Format("2006-01-02"),
		Notes:         strings.Join(notes, ". "),
	}
	if profile != nil {
		prefill.MemberID = profile.MemberID
	}
	return prefill
}

// recommendedServices maps urgency to the care settings worth surfacing.
func recommendedServices(urgency episode.Urgency) []string {
	switch urgency {
	case episode.UrgencyEmergency:
		return []string{"Emergency room", "911"}
	case episode.UrgencyUrgent:
		return []string{"Urgent care", "Same-day doctor visit"}
	case episode.UrgencySoon:
		return []string{"Primary care doctor", "Video consult"}
	default:
		return []string{"Self-care at home", "Pharmacist advice"}
	}
}
