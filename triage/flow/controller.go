package flow

import (
	"strings"

	"github.com/carebridge/symptom-triage/triage/episode"
)

// Limits caps how many questions each tier may ask per episode.
type Limits struct {
	MaxPainQuestions    int // structured OPQRST questions
	MaxOptionalSymptom  int // optional symptom-specific questions
	MaxGeneralQuestions int // general fallback questions
	MaxTotalQuestions   int // hard cap across all tiers
	SevereSeverity      int // severity at or above this triggers the shortcut
	SevereMinAsked      int // questions needed before the shortcut applies
	MinAskedForEnough   int // questions needed before coverage rules apply
}

// DefaultLimits returns the standard per-episode question caps.
func DefaultLimits() Limits {
	return Limits{
		MaxPainQuestions:    4,
		MaxOptionalSymptom:  2,
		MaxGeneralQuestions: 3,
		MaxTotalQuestions:   6,
		SevereSeverity:      8,
		SevereMinAsked:      2,
		MinAskedForEnough:   3,
	}
}

// Controller selects clarifying questions for one episode. It is pure given
// its inputs: the caller persists the state returned by RecordAnswer.
type Controller struct {
	limits Limits
}

// NewController builds a controller with the given limits.
func NewController(limits Limits) *Controller {
	return &Controller{limits: limits}
}

// NextQuestion returns the next best clarifying question, or nil when no
// tier can produce one (the signal that guidance should be composed).
// Calling it twice with unchanged state returns the same question.
func (c *Controller) NextQuestion(ctx episode.HealthContext, state episode.QuestionFlowState, snapshot episode.MemorySnapshot) *Question {
	// Tier 1: structured pain assessment.
	if state.UseStructuredPainFlow && len(state.PainQuestionsAsked) < c.limits.MaxPainQuestions {
		for _, tag := range painQuestionOrder {
			if !state.PainAsked(tag) {
				q := painQuestions[tag]
				return &q
			}
		}
	}

	template := symptomTemplates[state.SymptomCategory]

	// Tier 2: unanswered required symptom-specific questions come first.
	for _, sq := range template {
		if sq.Required && !state.SymptomAsked(sq.Question.QuestionID) {
			q := sq.Question
			return &q
		}
	}

	// Tier 3: optional symptom-specific questions, capped.
	if c.optionalAsked(state, template) < c.limits.MaxOptionalSymptom {
		for _, sq := range template {
			if !sq.Required && !state.SymptomAsked(sq.Question.QuestionID) {
				q := sq.Question
				return &q
			}
		}
	}

	// Tier 4: general fallback, skipping anything answered or already
	// inferable from context or the memory snapshot.
	if len(state.GeneralQuestionsAsked) < c.limits.MaxGeneralQuestions {
		for _, tag := range generalQuestionOrder {
			if state.GeneralAsked(tag) {
				continue
			}
			if c.generalInferable(tag, ctx, state, snapshot) {
				continue
			}
			q := generalQuestions[tag]
			return &q
		}
	}

	return nil
}

// optionalAsked counts how many optional template questions were asked.
func (c *Controller) optionalAsked(state episode.QuestionFlowState, template []SymptomQuestion) int {
	n := 0
	for _, sq := range template {
		if !sq.Required && state.SymptomAsked(sq.Question.QuestionID) {
			n++
		}
	}
	return n
}

// generalInferable reports whether a general question's answer is already
// known, so asking it again would be redundant.
func (c *Controller) generalInferable(tag episode.GeneralTag, ctx episode.HealthContext, state episode.QuestionFlowState, snapshot episode.MemorySnapshot) bool {
	switch tag {
	case episode.GeneralDuration:
		return ctx.Duration != ""
	case episode.GeneralSeverity:
		// Skip if already captured, or if the structured pain flow asked it.
		return ctx.HasSeverity() || state.PainAsked(episode.PainSeverity)
	case episode.GeneralAssociatedSymptoms:
		return len(ctx.AssociatedSymptoms) > 0
	case episode.GeneralChronicConditions:
		return len(ctx.ChronicConditions) > 0 || len(snapshot.Conditions) > 0
	case episode.GeneralMedications:
		return len(snapshot.Medications) > 0
	}
	return false
}

// HasEnoughInformation reports whether guidance can be composed without
// asking further questions.
func (c *Controller) HasEnoughInformation(ctx episode.HealthContext, state episode.QuestionFlowState) bool {
	total := state.TotalAsked()

	// Hard cap.
	if total >= c.limits.MaxTotalQuestions {
		return true
	}

	// Severe-case shortcut.
	if ctx.HasSeverity() && ctx.SeverityValue() >= c.limits.SevereSeverity && total >= c.limits.SevereMinAsked {
		return true
	}

	if total < c.limits.MinAskedForEnough {
		return false
	}

	// Structured pain flow: onset, quality, and severity covered.
	if state.UseStructuredPainFlow {
		if state.PainAsked(episode.PainOnset) && state.PainAsked(episode.PainQuality) && state.PainAsked(episode.PainSeverity) {
			return true
		}
	}

	// All required symptom-specific questions answered.
	for _, sq := range symptomTemplates[state.SymptomCategory] {
		if sq.Required && !state.SymptomAsked(sq.Question.QuestionID) {
			return false
		}
	}
	return true
}

// RecordAnswer applies a free-text (or quick-option) answer to the question
// with the given id, returning the updated context and flow state. Malformed
// answers never fail: typed fields fall back to documented defaults and
// unmapped answers land in additional notes verbatim.
func (c *Controller) RecordAnswer(ctx episode.HealthContext, state episode.QuestionFlowState, questionID, answer string) (episode.HealthContext, episode.QuestionFlowState) {
	q, ok := lookupQuestion(questionID, state.SymptomCategory)
	if !ok {
		// Unknown id: keep the information rather than dropping it.
		ctx.AdditionalNotes = episode.AppendUnique(ctx.AdditionalNotes, answer)
		return ctx, state
	}

	state = markAsked(state, questionID)
	ctx = applyAnswer(ctx, q, answer)
	return ctx, state
}

// markAsked records the question id in the tier-appropriate asked set.
func markAsked(state episode.QuestionFlowState, questionID string) episode.QuestionFlowState {
	switch {
	case strings.HasPrefix(questionID, "pain."):
		tag := episode.PainTag(strings.TrimPrefix(questionID, "pain."))
		if !state.PainAsked(tag) {
			state.PainQuestionsAsked = append(state.PainQuestionsAsked, tag)
		}
	case strings.HasPrefix(questionID, "gen."):
		tag := episode.GeneralTag(strings.TrimPrefix(questionID, "gen."))
		if !state.GeneralAsked(tag) {
			state.GeneralQuestionsAsked = append(state.GeneralQuestionsAsked, tag)
		}
	default:
		if !state.SymptomAsked(questionID) {
			state.SymptomQuestionsAsked = append(state.SymptomQuestionsAsked, questionID)
		}
	}
	return state
}

// applyAnswer routes the answer into the typed field the question maps to.
func applyAnswer(ctx episode.HealthContext, q Question, answer string) episode.HealthContext {
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return ctx
	}

	switch q.MapsTo() {
	case FieldDuration:
		ctx.Duration = ParseDuration(trimmed)
	case FieldSeverity:
		ctx = ctx.WithSeverity(ParseSeverity(trimmed))
	case FieldFrequency:
		ctx.Frequency = ParseFrequency(trimmed)
	case FieldAssociatedSymptoms:
		ctx.AssociatedSymptoms = episode.AppendUnique(ctx.AssociatedSymptoms, SplitList(trimmed)...)
	case FieldRecentEvents:
		ctx.RecentEvents = episode.AppendUnique(ctx.RecentEvents, SplitList(trimmed)...)
	case FieldChronicConditions:
		ctx.ChronicConditions = episode.AppendUnique(ctx.ChronicConditions, SplitList(trimmed)...)
	case FieldAgeGroup:
		ctx.AgeGroup = ParseAgeGroup(trimmed)
	default:
		ctx.AdditionalNotes = episode.AppendUnique(ctx.AdditionalNotes, trimmed)
	}
	return ctx
}

// lookupQuestion finds a question definition by id within the episode's
// category scope.
func lookupQuestion(questionID string, category episode.Category) (Question, bool) {
	if strings.HasPrefix(questionID, "pain.") {
		tag := episode.PainTag(strings.TrimPrefix(questionID, "pain."))
		q, ok := painQuestions[tag]
		return q, ok
	}
	if strings.HasPrefix(questionID, "gen.") {
		tag := episode.GeneralTag(strings.TrimPrefix(questionID, "gen."))
		q, ok := generalQuestions[tag]
		return q, ok
	}
	for _, sq := range symptomTemplates[category] {
		if sq.Question.QuestionID == questionID {
			return sq.Question, true
		}
	}
	return Question{}, false
}
