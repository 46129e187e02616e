// Package guidance assembles the user-facing structured response from the
// controller, classifier, and differential outputs. Everything it produces
// is phrased as guidance, never as a diagnosis.
package guidance

// entry is one row of the guidance knowledge base: keyword-gated cause,
// action, and escalation text. Flat tuples on purpose; no hierarchy.
type entry struct {
	Keywords       []string
	Causes         []string
	Actions        []string
	WhenToSeekHelp []string
}

var guidanceEntries = []entry{
	{
		Keywords: []string{"headache", "migraine"},
		Causes: []string{
			"Tension from stress, posture, or long screen time",
			"Dehydration or skipped meals",
			"Eye strain",
		},
		Actions: []string{
			"Rest in a quiet, dimly lit room",
			"Drink a full glass of water",
			"Apply a cool compress to your forehead",
		},
		WhenToSeekHelp: []string{
			"The headache is sudden and the worst you've ever had",
			"You notice vision changes, weakness, or confusion with it",
		},
	},
	{
		Keywords: []string{"fever", "chills", "temperature"},
		Causes: []string{
			"A viral infection such as a cold or the flu",
			"Your body responding to a developing infection",
		},
		Actions: []string{
			"Rest and drink plenty of fluids",
			"Dress lightly and keep the room comfortable",
			"Track your temperature every few hours",
		},
		WhenToSeekHelp: []string{
			"Fever above 103°F or lasting more than three days",
			"A fever with stiff neck, rash, or trouble breathing",
		},
	},
	{
		Keywords: []string{"cough", "congestion", "sore throat", "runny nose"},
		Causes: []string{
			"A common cold or other viral infection",
			"Seasonal allergies",
			"Post-nasal drip irritating the throat",
		},
		Actions: []string{
			"Warm fluids like tea with honey can ease the throat",
			"A humidifier or steamy shower can loosen congestion",
			"Rest your voice and body",
		},
		WhenToSeekHelp: []string{
			"Breathing becomes difficult or wheezy",
			"Symptoms last beyond ten days or worsen after improving",
		},
	},
	{
		Keywords: []string{"nausea", "vomit", "diarrhea", "stomach"},
		Causes: []string{
			"A stomach virus",
			"Something you ate that didn't agree with you",
			"Indigestion",
		},
		Actions: []string{
			"Take small, frequent sips of clear fluids",
			"Ease back into eating with bland foods",
			"Avoid dairy, caffeine, and heavy meals for now",
		},
		WhenToSeekHelp: []string{
			"Signs of dehydration: very dark urine, dizziness, dry mouth",
			"Blood in vomit or stool",
		},
	},
	{
		Keywords: []string{"rash", "itch", "hives"},
		Causes: []string{
			"Contact with an irritant like a new soap or plant",
			"A mild allergic reaction",
			"Dry or sensitive skin",
		},
		Actions: []string{
			"Avoid scratching and keep the area clean and dry",
			"A cool compress can calm the itching",
			"Switch back from any newly introduced products",
		},
		WhenToSeekHelp: []string{
			"The rash spreads quickly or blisters",
			"Any swelling of the face, lips, or throat",
		},
	},
	{
		Keywords: []string{"back pain", "muscle", "joint", "sprain", "strain"},
		Causes: []string{
			"A muscle strain from lifting or activity",
			"A minor sprain",
			"Stiffness from posture or overuse",
		},
		Actions: []string{
			"Rest the area, but keep gently moving as tolerated",
			"Ice for the first day or two, then warmth",
			"Avoid the activity that brought it on",
		},
		WhenToSeekHelp: []string{
			"Numbness, tingling, or weakness in a limb",
			"Pain after a significant fall or accident",
		},
	},
	{
		Keywords: []string{"dizzy", "lightheaded"},
		Causes: []string{
			"Standing up too quickly",
			"Dehydration or low blood sugar",
			"Inner-ear changes",
		},
		Actions: []string{
			"Sit or lie down until it passes",
			"Drink water and eat something if you haven't recently",
			"Rise slowly from sitting or lying positions",
		},
		WhenToSeekHelp: []string{
			"Dizziness with chest pain, fainting, or slurred speech",
			"Repeated episodes over several days",
		},
	},
}

// genericCauses back-fill when no knowledge-base entry matches.
var genericCauses = []string{
	"A minor, self-limiting illness",
	"Everyday strain, stress, or fatigue",
	"A passing reaction to something in your routine or environment",
}

// causesDisclaimer is always the last possible-causes line.
const causesDisclaimer = "These are common possibilities, not a diagnosis. Only a clinician who examines you can say for certain."

var genericSelfCareActions = []string{
	"Rest and give your body a chance to recover",
	"Stay well hydrated",
}

// genericSeekHelp lines close every when-to-seek-help list.
var genericSeekHelp = []string{
	"Symptoms suddenly get much worse",
	"You feel something is seriously wrong, trust that instinct and get care",
}

const (
	seekAttentionLead = "Based on what you've described, please seek medical attention promptly."
	redFlagLead       = "Some of what you mentioned deserves extra attention. Get care right away if:"
)

// Crisis resources surfaced for emergencies, self-harm, and poisoning.
const (
	resourceEmergency     = "If this is an emergency, call 911 now."
	resourceCrisisLine    = "You can call or text 988 (Suicide & Crisis Lifeline) any time, day or night."
	resourcePoisonControl = "Poison Control is available 24/7 at 1-800-222-1222."
)

// matchEntries returns up to limit knowledge-base entries whose keywords
// appear in the joined context text.
func matchEntries(text string, limit int) []entry {
	var matched []entry
	for _, e := range guidanceEntries {
		for _, kw := range e.Keywords {
			if containsKeyword(text, kw) {
				matched = append(matched, e)
				break
			}
		}
		if len(matched) == limit {
			break
		}
	}
	return matched
}
