package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/symptom-triage/triage/episode"
)

func newController() *Controller { return NewController(DefaultLimits()) }

// TestNextQuestion_StructuredPainPriority verifies the OPQRST tier leads for
// pain categories, with onset, quality, and severity first.
func TestNextQuestion_StructuredPainPriority(t *testing.T) {
	c := newController()
	ctx := episode.HealthContext{PrimarySymptom: "back pain"}
	state := episode.NewQuestionFlowState(episode.CategoryMusculoskeletal)
	require.True(t, state.UseStructuredPainFlow)

	wantOrder := []string{"pain.onset", "pain.quality", "pain.severity", "pain.radiation"}
	for _, wantID := range wantOrder {
		q := c.NextQuestion(ctx, state, episode.MemorySnapshot{})
		require.NotNil(t, q)
		assert.Equal(t, wantID, q.QuestionID)
		assert.Equal(t, FlowStructuredPain, q.FlowType)
		ctx, state = c.RecordAnswer(ctx, state, q.QuestionID, "a few hours ago")
	}

	// Four structured questions asked: the tier is exhausted and the
	// symptom template takes over.
	q := c.NextQuestion(ctx, state, episode.MemorySnapshot{})
	require.NotNil(t, q)
	assert.Equal(t, FlowSymptomSpecific, q.FlowType)
}

// TestNextQuestion_RequiredBeforeGeneral verifies required symptom questions
// are never skipped in favor of the general fallback.
func TestNextQuestion_RequiredBeforeGeneral(t *testing.T) {
	c := newController()
	ctx := episode.HealthContext{PrimarySymptom: "headache"}
	state := episode.NewQuestionFlowState(episode.CategoryHeadache)

	q := c.NextQuestion(ctx, state, episode.MemorySnapshot{})
	require.NotNil(t, q)
	assert.Equal(t, "sym.headache.location", q.QuestionID)
	assert.Equal(t, FlowSymptomSpecific, q.FlowType)
}

// TestNextQuestion_Idempotent verifies the same state yields the same
// question on repeated calls.
func TestNextQuestion_Idempotent(t *testing.T) {
	c := newController()
	ctx := episode.HealthContext{PrimarySymptom: "cough"}
	state := episode.NewQuestionFlowState(episode.CategoryRespiratory)

	first := c.NextQuestion(ctx, state, episode.MemorySnapshot{})
	second := c.NextQuestion(ctx, state, episode.MemorySnapshot{})
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.QuestionID, second.QuestionID)
}

// TestNextQuestion_OptionalCap verifies at most two optional symptom
// questions are asked before falling through to the general tier.
func TestNextQuestion_OptionalCap(t *testing.T) {
	c := newController()
	ctx := episode.HealthContext{PrimarySymptom: "headache"}
	state := episode.NewQuestionFlowState(episode.CategoryHeadache)

	// Answer both required headache questions.
	ctx, state = c.RecordAnswer(ctx, state, "sym.headache.location", "behind the eyes")
	ctx, state = c.RecordAnswer(ctx, state, "sym.headache.onset", "today")

	// Two optional questions follow.
	for i := 0; i < 2; i++ {
		q := c.NextQuestion(ctx, state, episode.MemorySnapshot{})
		require.NotNil(t, q)
		assert.Equal(t, FlowSymptomSpecific, q.FlowType)
		ctx, state = c.RecordAnswer(ctx, state, q.QuestionID, "yes, a little")
	}

	// The template has no third optional question and duration is already
	// set, so the general tier starts at severity.
	q := c.NextQuestion(ctx, state, episode.MemorySnapshot{})
	require.NotNil(t, q)
	assert.Equal(t, FlowGeneral, q.FlowType)
	assert.Equal(t, "gen.severity", q.QuestionID)
}

// TestNextQuestion_GeneralSkipsInferable verifies answered or known values
// suppress their general questions, including snapshot-known conditions.
func TestNextQuestion_GeneralSkipsInferable(t *testing.T) {
	c := newController()
	ctx := episode.HealthContext{
		PrimarySymptom:     "tired",
		Duration:           episode.DurationToday,
		AssociatedSymptoms: []string{"low energy"},
	}
	ctx = ctx.WithSeverity(4)
	state := episode.NewQuestionFlowState(episode.CategoryGeneral)
	ctx, state = c.RecordAnswer(ctx, state, "sym.general.main", "just exhausted")

	snapshot := episode.MemorySnapshot{Conditions: []string{"asthma"}}
	q := c.NextQuestion(ctx, state, snapshot)
	require.NotNil(t, q)
	assert.Equal(t, "gen.medications", q.QuestionID)
}

// TestNextQuestion_SeveritySkippedAfterPainFlow verifies the general tier
// does not re-ask severity once the OPQRST severity question was asked.
func TestNextQuestion_SeveritySkippedAfterPainFlow(t *testing.T) {
	c := newController()
	ctx := episode.HealthContext{PrimarySymptom: "back pain", Duration: episode.DurationToday}
	state := episode.NewQuestionFlowState(episode.CategoryPain)

	for _, id := range []string{"pain.onset", "pain.quality", "pain.severity", "pain.radiation"} {
		ctx, state = c.RecordAnswer(ctx, state, id, "6")
	}
	ctx, state = c.RecordAnswer(ctx, state, "sym.pain.injury", "no")

	q := c.NextQuestion(ctx, state, episode.MemorySnapshot{})
	require.NotNil(t, q)
	assert.Equal(t, "gen.associated_symptoms", q.QuestionID)
}

// TestNextQuestion_Exhaustion verifies the controller eventually returns nil.
func TestNextQuestion_Exhaustion(t *testing.T) {
	c := newController()
	ctx := episode.HealthContext{PrimarySymptom: "tired"}
	state := episode.NewQuestionFlowState(episode.CategoryGeneral)

	for i := 0; i < 10; i++ {
		q := c.NextQuestion(ctx, state, episode.MemorySnapshot{})
		if q == nil {
			return
		}
		ctx, state = c.RecordAnswer(ctx, state, q.QuestionID, "answer")
	}
	t.Fatal("controller never ran out of questions")
}

// TestHasEnoughInformation covers the four termination rules.
func TestHasEnoughInformation(t *testing.T) {
	c := newController()

	t.Run("pain flow coverage", func(t *testing.T) {
		ctx := episode.HealthContext{PrimarySymptom: "back pain"}
		state := episode.NewQuestionFlowState(episode.CategoryPain)
		assert.False(t, c.HasEnoughInformation(ctx, state))

		for _, id := range []string{"pain.onset", "pain.quality", "pain.severity"} {
			ctx, state = c.RecordAnswer(ctx, state, id, "4")
		}
		assert.True(t, c.HasEnoughInformation(ctx, state))
	})

	t.Run("required coverage needs three total", func(t *testing.T) {
		ctx := episode.HealthContext{PrimarySymptom: "headache"}
		state := episode.NewQuestionFlowState(episode.CategoryHeadache)

		ctx, state = c.RecordAnswer(ctx, state, "sym.headache.location", "forehead")
		ctx, state = c.RecordAnswer(ctx, state, "sym.headache.onset", "today")
		assert.False(t, c.HasEnoughInformation(ctx, state), "only two questions asked")

		ctx, state = c.RecordAnswer(ctx, state, "sym.headache.light", "no")
		assert.True(t, c.HasEnoughInformation(ctx, state))
	})

	t.Run("hard cap at six", func(t *testing.T) {
		ctx := episode.HealthContext{PrimarySymptom: "cough"}
		state := episode.NewQuestionFlowState(episode.CategoryRespiratory)
		state.SymptomQuestionsAsked = []string{"a", "b", "c", "d", "e", "f"}
		assert.True(t, c.HasEnoughInformation(ctx, state))
	})

	t.Run("severe shortcut after two", func(t *testing.T) {
		ctx := episode.HealthContext{PrimarySymptom: "stomach pain"}
		ctx = ctx.WithSeverity(9)
		state := episode.NewQuestionFlowState(episode.CategoryGI)
		state.SymptomQuestionsAsked = []string{"sym.gi.main", "sym.gi.food"}
		assert.True(t, c.HasEnoughInformation(ctx, state))

		mild := episode.HealthContext{PrimarySymptom: "stomach pain"}
		mild = mild.WithSeverity(4)
		assert.False(t, c.HasEnoughInformation(mild, state))
	})
}

// TestRecordAnswer_UnknownIDGoesToNotes verifies nothing is silently dropped.
func TestRecordAnswer_UnknownIDGoesToNotes(t *testing.T) {
	c := newController()
	ctx := episode.HealthContext{PrimarySymptom: "headache"}
	state := episode.NewQuestionFlowState(episode.CategoryHeadache)

	ctx, state = c.RecordAnswer(ctx, state, "bogus.id", "it throbs at night")
	assert.Contains(t, ctx.AdditionalNotes, "it throbs at night")
	assert.Zero(t, state.TotalAsked())
}
