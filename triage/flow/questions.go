// Package flow selects the next best clarifying question for an episode
// from three tiers: the OPQRST structured pain assessment, symptom-specific
// templates, and a general fallback list. It also parses free-text answers
// into the typed health-context fields.
package flow

import "github.com/carebridge/symptom-triage/triage/episode"

// FlowType labels which tier produced a question.
type FlowType string

const (
	FlowStructuredPain  FlowType = "structured_pain"
	FlowSymptomSpecific FlowType = "symptom_specific"
	FlowGeneral         FlowType = "general"
)

// Field names the typed health-context field an answer maps to. Answers to
// questions with FieldNone go to additional notes verbatim.
type Field string

const (
	FieldNone               Field = ""
	FieldDuration           Field = "duration"
	FieldSeverity           Field = "severity"
	FieldFrequency          Field = "frequency"
	FieldAssociatedSymptoms Field = "associated_symptoms"
	FieldRecentEvents       Field = "recent_events"
	FieldChronicConditions  Field = "chronic_conditions"
	FieldAgeGroup           Field = "age_group"
)

// Question is the next-question payload returned to the caller.
type Question struct {
	QuestionID   string   `json:"question_id"`
	FlowType     FlowType `json:"flow_type"`
	Question     string   `json:"question"`
	Explanation  string   `json:"explanation,omitempty"`
	QuickOptions []string `json:"quick_options,omitempty"`

	mapsTo Field
}

// MapsTo exposes the typed field this question's answer feeds.
func (q Question) MapsTo() Field { return q.mapsTo }

// painQuestionOrder is the OPQRST ask order: onset, quality, and severity are
// prioritized ahead of the remaining four.
var painQuestionOrder = []episode.PainTag{
	episode.PainOnset,
	episode.PainQuality,
	episode.PainSeverity,
	episode.PainRadiation,
	episode.PainProvocation,
	episode.PainPalliation,
	episode.PainTiming,
}

var painQuestions = map[episode.PainTag]Question{
	episode.PainOnset: {
		QuestionID:  "pain.onset",
		FlowType:    FlowStructuredPain,
		Question:    "When did the pain start?",
		Explanation: "Knowing the onset helps gauge how quickly things are changing.",
		QuickOptions: []string{
			"Just now", "A few hours ago", "Today", "1-2 days ago", "About a week ago", "More than 2 weeks",
		},
		mapsTo: FieldDuration,
	},
	episode.PainQuality: {
		QuestionID:   "pain.quality",
		FlowType:     FlowStructuredPain,
		Question:     "How would you describe the pain?",
		QuickOptions: []string{"Sharp", "Dull", "Throbbing", "Burning", "Cramping", "Aching"},
		mapsTo:       FieldNone,
	},
	episode.PainSeverity: {
		QuestionID:   "pain.severity",
		FlowType:     FlowStructuredPain,
		Question:     "On a scale of 0 to 10, how bad is the pain right now?",
		Explanation:  "0 means no pain, 10 is the worst pain imaginable.",
		QuickOptions: []string{"1-3 (mild)", "4-6 (moderate)", "7-10 (severe)"},
		mapsTo:       FieldSeverity,
	},
	episode.PainRadiation: {
		QuestionID: "pain.radiation",
		FlowType:   FlowStructuredPain,
		Question:   "Does the pain stay in one place, or does it spread anywhere else?",
		mapsTo:     FieldNone,
	},
	episode.PainProvocation: {
		QuestionID: "pain.provocation",
		FlowType:   FlowStructuredPain,
		Question:   "Does anything make the pain worse?",
		mapsTo:     FieldNone,
	},
	episode.PainPalliation: {
		QuestionID: "pain.palliation",
		FlowType:   FlowStructuredPain,
		Question:   "Does anything make it feel better?",
		mapsTo:     FieldNone,
	},
	episode.PainTiming: {
		QuestionID:   "pain.timing",
		FlowType:     FlowStructuredPain,
		Question:     "Is the pain constant, or does it come and go?",
		QuickOptions: []string{"Constant", "Comes and goes", "Only sometimes", "First time"},
		mapsTo:       FieldFrequency,
	},
}

// SymptomQuestion is one entry in a category's template set.
type SymptomQuestion struct {
	Question Question
	Required bool
}

// symptomTemplates holds the symptom-specific question set per category.
// Required questions are always asked before optional ones.
var symptomTemplates = map[episode.Category][]SymptomQuestion{
	episode.CategoryHeadache: {
		{Required: true, Question: Question{
			QuestionID: "sym.headache.location", FlowType: FlowSymptomSpecific,
			Question:     "Where is the headache located?",
			QuickOptions: []string{"Forehead", "One side", "Both sides", "Back of head", "Behind the eyes"},
		}},
		{Required: true, Question: Question{
			QuestionID: "sym.headache.onset", FlowType: FlowSymptomSpecific,
			Question:     "When did the headache start?",
			QuickOptions: []string{"Just now", "A few hours ago", "Today", "1-2 days ago", "Longer"},
			mapsTo:       FieldDuration,
		}},
		{Question: Question{
			QuestionID: "sym.headache.light", FlowType: FlowSymptomSpecific,
			Question: "Are you more sensitive to light or sound than usual?",
		}},
		{Question: Question{
			QuestionID: "sym.headache.nausea", FlowType: FlowSymptomSpecific,
			Question: "Any nausea or vision changes along with it?",
			mapsTo:   FieldAssociatedSymptoms,
		}},
	},
	episode.CategoryGI: {
		{Required: true, Question: Question{
			QuestionID: "sym.gi.main", FlowType: FlowSymptomSpecific,
			Question:     "Which is bothering you most: nausea, vomiting, diarrhea, or stomach pain?",
			QuickOptions: []string{"Nausea", "Vomiting", "Diarrhea", "Stomach pain"},
			mapsTo:       FieldAssociatedSymptoms,
		}},
		{Required: true, Question: Question{
			QuestionID: "sym.gi.food", FlowType: FlowSymptomSpecific,
			Question: "Did the symptoms start after eating something in particular?",
			mapsTo:   FieldRecentEvents,
		}},
		{Question: Question{
			QuestionID: "sym.gi.fluids", FlowType: FlowSymptomSpecific,
			Question: "Are you able to keep fluids down?",
		}},
		{Question: Question{
			QuestionID: "sym.gi.others", FlowType: FlowSymptomSpecific,
			Question: "Is anyone around you sick with something similar?",
			mapsTo:   FieldRecentEvents,
		}},
	},
	episode.CategoryFever: {
		{Required: true, Question: Question{
			QuestionID: "sym.fever.temp", FlowType: FlowSymptomSpecific,
			Question:     "Have you taken a temperature? If so, what was the reading?",
			QuickOptions: []string{"Under 100.4°F", "100.4-102°F", "Over 102°F", "Haven't measured"},
		}},
		{Required: true, Question: Question{
			QuestionID: "sym.fever.duration", FlowType: FlowSymptomSpecific,
			Question: "How long has the fever been going on?",
			mapsTo:   FieldDuration,
		}},
		{Question: Question{
			QuestionID: "sym.fever.other", FlowType: FlowSymptomSpecific,
			Question: "Any other symptoms along with the fever, like cough, sore throat, or a rash?",
			mapsTo:   FieldAssociatedSymptoms,
		}},
	},
	episode.CategoryRespiratory: {
		{Required: true, Question: Question{
			QuestionID: "sym.resp.breathing", FlowType: FlowSymptomSpecific,
			Question:     "Are you having any trouble breathing?",
			QuickOptions: []string{"No", "A little when active", "Yes, even at rest"},
		}},
		{Question: Question{
			QuestionID: "sym.resp.cough", FlowType: FlowSymptomSpecific,
			Question: "Is the cough dry, or are you bringing anything up?",
		}},
		{Question: Question{
			QuestionID: "sym.resp.fever", FlowType: FlowSymptomSpecific,
			Question: "Any fever or chills with it?",
			mapsTo:   FieldAssociatedSymptoms,
		}},
	},
	episode.CategorySkin: {
		{Required: true, Question: Question{
			QuestionID: "sym.skin.where", FlowType: FlowSymptomSpecific,
			Question: "Where on the body is the rash or irritation, and is it spreading?",
		}},
		{Required: true, Question: Question{
			QuestionID: "sym.skin.new", FlowType: FlowSymptomSpecific,
			Question: "Any new soaps, detergents, foods, or medications recently?",
			mapsTo:   FieldRecentEvents,
		}},
		{Question: Question{
			QuestionID: "sym.skin.itch", FlowType: FlowSymptomSpecific,
			Question:     "Is it itchy, painful, or neither?",
			QuickOptions: []string{"Itchy", "Painful", "Both", "Neither"},
		}},
	},
	episode.CategoryNeurological: {
		{Required: true, Question: Question{
			QuestionID: "sym.neuro.when", FlowType: FlowSymptomSpecific,
			Question: "When does the dizziness or numbness happen, and how long does it last?",
		}},
		{Required: true, Question: Question{
			QuestionID: "sym.neuro.trigger", FlowType: FlowSymptomSpecific,
			Question:     "Does it happen when standing up, moving your head, or at random?",
			QuickOptions: []string{"Standing up", "Moving my head", "At random"},
		}},
		{Question: Question{
			QuestionID: "sym.neuro.other", FlowType: FlowSymptomSpecific,
			Question: "Any headache, vision changes, or weakness along with it?",
			mapsTo:   FieldAssociatedSymptoms,
		}},
	},
	// Pain and musculoskeletal use the structured OPQRST flow; their template
	// set only adds context questions after the structured tier is done.
	episode.CategoryPain: {
		{Question: Question{
			QuestionID: "sym.pain.injury", FlowType: FlowSymptomSpecific,
			Question: "Was there an injury or unusual activity before the pain started?",
			mapsTo:   FieldRecentEvents,
		}},
	},
	episode.CategoryMusculoskeletal: {
		{Question: Question{
			QuestionID: "sym.msk.injury", FlowType: FlowSymptomSpecific,
			Question: "Did the pain start after an injury, a fall, or unusual activity?",
			mapsTo:   FieldRecentEvents,
		}},
		{Question: Question{
			QuestionID: "sym.msk.swelling", FlowType: FlowSymptomSpecific,
			Question: "Any swelling, bruising, or trouble putting weight on it?",
			mapsTo:   FieldAssociatedSymptoms,
		}},
	},
	episode.CategoryGeneral: {
		{Required: true, Question: Question{
			QuestionID: "sym.general.main", FlowType: FlowSymptomSpecific,
			Question: "What is bothering you the most right now?",
		}},
	},
}

// generalQuestionOrder is the fixed fallback ordering.
var generalQuestionOrder = []episode.GeneralTag{
	episode.GeneralDuration,
	episode.GeneralSeverity,
	episode.GeneralAssociatedSymptoms,
	episode.GeneralChronicConditions,
	episode.GeneralMedications,
}

var generalQuestions = map[episode.GeneralTag]Question{
	episode.GeneralDuration: {
		QuestionID: "gen.duration", FlowType: FlowGeneral,
		Question:     "How long has this been going on?",
		QuickOptions: []string{"Just now", "A few hours", "Today", "1-2 days", "3-7 days", "1-2 weeks", "More than 2 weeks"},
		mapsTo:       FieldDuration,
	},
	episode.GeneralSeverity: {
		QuestionID: "gen.severity", FlowType: FlowGeneral,
		Question:     "On a scale of 0 to 10, how bad does it feel?",
		QuickOptions: []string{"1-3 (mild)", "4-6 (moderate)", "7-10 (severe)"},
		mapsTo:       FieldSeverity,
	},
	episode.GeneralAssociatedSymptoms: {
		QuestionID: "gen.associated_symptoms", FlowType: FlowGeneral,
		Question: "Are you noticing any other symptoms along with this?",
		mapsTo:   FieldAssociatedSymptoms,
	},
	episode.GeneralChronicConditions: {
		QuestionID: "gen.chronic_conditions", FlowType: FlowGeneral,
		Question: "Do you have any ongoing health conditions I should know about?",
		mapsTo:   FieldChronicConditions,
	},
	episode.GeneralMedications: {
		QuestionID: "gen.medications", FlowType: FlowGeneral,
		Question: "Are you taking any medications regularly?",
	},
}
