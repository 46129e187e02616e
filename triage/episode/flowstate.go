package episode

// Category is the detected symptom category, fixed for the episode's lifetime.
type Category string

const (
	CategoryHeadache        Category = "headache"
	CategoryGI              Category = "gi"
	CategoryFever           Category = "fever"
	CategoryRespiratory     Category = "respiratory"
	CategorySkin            Category = "skin"
	CategoryMusculoskeletal Category = "musculoskeletal"
	CategoryNeurological    Category = "neurological"
	CategoryPain            Category = "pain"
	CategoryGeneral         Category = "general"
)

// PainTag identifies one OPQRST structured pain-assessment question.
type PainTag string

const (
	PainOnset       PainTag = "onset"
	PainQuality     PainTag = "quality"
	PainSeverity    PainTag = "severity"
	PainRadiation   PainTag = "radiation"
	PainProvocation PainTag = "provocation"
	PainPalliation  PainTag = "palliation"
	PainTiming      PainTag = "timing"
)

// GeneralTag identifies one general fallback question.
type GeneralTag string

const (
	GeneralDuration           GeneralTag = "duration"
	GeneralSeverity           GeneralTag = "severity"
	GeneralAssociatedSymptoms GeneralTag = "associated_symptoms"
	GeneralChronicConditions  GeneralTag = "chronic_conditions"
	GeneralMedications        GeneralTag = "medications"
)

// QuestionFlowState tracks what has been asked during one episode. It is
// created once from the detected category, mutated by copy after every
// answered question, and discarded when the episode ends.
type QuestionFlowState struct {
	SymptomCategory       Category     `json:"symptom_category"`
	UseStructuredPainFlow bool         `json:"use_structured_pain_flow"`
	PainQuestionsAsked    []PainTag    `json:"pain_questions_asked,omitempty"` // insertion order preserved
	SymptomQuestionsAsked []string     `json:"symptom_questions_asked,omitempty"`
	GeneralQuestionsAsked []GeneralTag `json:"general_questions_asked,omitempty"`
}

// NewQuestionFlowState builds the flow state for a freshly detected category.
// The structured pain flow applies to the pain and musculoskeletal buckets.
func NewQuestionFlowState(category Category) QuestionFlowState {
	return QuestionFlowState{
		SymptomCategory:       category,
		UseStructuredPainFlow: category == CategoryPain || category == CategoryMusculoskeletal,
	}
}

// TotalAsked is the number of questions asked so far across all tiers.
func (s QuestionFlowState) TotalAsked() int {
	return len(s.PainQuestionsAsked) + len(s.SymptomQuestionsAsked) + len(s.GeneralQuestionsAsked)
}

// PainAsked reports whether the given OPQRST tag was already asked.
func (s QuestionFlowState) PainAsked(tag PainTag) bool {
	for _, t := range s.PainQuestionsAsked {
		if t == tag {
			return true
		}
	}
	return false
}

// SymptomAsked reports whether the symptom-specific question id was asked.
func (s QuestionFlowState) SymptomAsked(id string) bool {
	for _, q := range s.SymptomQuestionsAsked {
		if q == id {
			return true
		}
	}
	return false
}

// GeneralAsked reports whether the general question tag was asked.
func (s QuestionFlowState) GeneralAsked(tag GeneralTag) bool {
	for _, t := range s.GeneralQuestionsAsked {
		if t == tag {
			return true
		}
	}
	return false
}
