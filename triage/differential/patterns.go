// Package differential pattern-matches accumulated symptom text against a
// small knowledge base of symptom clusters to produce ranked, deduplicated
// plausible explanations. Output is always phrased as a possibility, never a
// diagnosis.
package differential

import "github.com/carebridge/symptom-triage/triage/episode"

// possibility is a knowledge-base entry before likelihood adjustment.
type possibility struct {
	Name                string
	Description         string
	Likelihood          episode.Likelihood
	TypicalPresentation string
}

// pattern is one symptom cluster. RequiredSymptoms gates the pattern in,
// ExcludingSymptoms gates it out even when required symptoms match, and two
// or more OptionalSymptoms matches upgrade every possibility one tier.
type pattern struct {
	RequiredSymptoms  []string
	OptionalSymptoms  []string
	ExcludingSymptoms []string
	Possibilities     []possibility
	PediatricExtra    []possibility
	SeniorExtra       []possibility
}

// patterns is the immutable symptom-cluster table. Entries are flat tuples
// of keyword lists and text, matched in order.
var patterns = []pattern{
	{
		RequiredSymptoms:  []string{"headache"},
		OptionalSymptoms:  []string{"stress", "screen", "tension", "neck", "tired"},
		ExcludingSymptoms: []string{"worst headache", "thunderclap", "head injury"},
		Possibilities: []possibility{
			{
				Name:                "Tension-type headache",
				Description:         "Often related to stress, posture, or eye strain",
				Likelihood:          episode.LikelihoodModerate,
				TypicalPresentation: "Dull, band-like pressure on both sides of the head",
			},
			{
				Name:                "Dehydration headache",
				Description:         "Can follow low fluid intake, heat, or exertion",
				Likelihood:          episode.LikelihoodLow,
				TypicalPresentation: "Throbbing discomfort that improves with fluids and rest",
			},
		},
	},
	{
		RequiredSymptoms:  []string{"headache"},
		OptionalSymptoms:  []string{"light", "nausea", "aura", "one side", "sound"},
		ExcludingSymptoms: []string{"fever", "stiff neck"},
		Possibilities: []possibility{
			{
				Name:                "Migraine episode",
				Description:         "Recurring headaches with sensitivity to light or sound",
				Likelihood:          episode.LikelihoodLow,
				TypicalPresentation: "Pulsing pain, often one-sided, worsened by activity",
			},
		},
	},
	{
		RequiredSymptoms:  []string{"fever"},
		OptionalSymptoms:  []string{"cough", "sore throat", "congestion", "body ache", "runny nose"},
		ExcludingSymptoms: []string{"rash", "stiff neck"},
		Possibilities: []possibility{
			{
				Name:                "Viral upper respiratory infection",
				Description:         "Common cold or flu-like illness",
				Likelihood:          episode.LikelihoodModerate,
				TypicalPresentation: "Fever with cough, congestion, and general achiness",
			},
		},
		PediatricExtra: []possibility{
			{
				Name:                "Common childhood viral illness",
				Description:         "Children often run higher fevers with routine viral infections",
				Likelihood:          episode.LikelihoodModerate,
				TypicalPresentation: "Fever with irritability and reduced appetite",
			},
		},
		SeniorExtra: []possibility{
			{
				Name:                "Possible bacterial infection",
				Description:         "Fever in older adults more often reflects a bacterial source",
				Likelihood:          episode.LikelihoodModerate,
				TypicalPresentation: "Fever with fatigue or confusion, sometimes without local signs",
			},
		},
	},
	{
		RequiredSymptoms:  []string{"cough", "sore throat", "congestion"},
		OptionalSymptoms:  []string{"runny nose", "sneez", "mild fever", "hoarse"},
		ExcludingSymptoms: []string{"can't breathe", "chest pain"},
		Possibilities: []possibility{
			{
				Name:                "Common cold",
				Description:         "Self-limiting viral infection of the nose and throat",
				Likelihood:          episode.LikelihoodModerate,
				TypicalPresentation: "Gradual onset of congestion, sore throat, and cough",
			},
			{
				Name:                "Seasonal allergies",
				Description:         "Airborne allergen response, often seasonal",
				Likelihood:          episode.LikelihoodLow,
				TypicalPresentation: "Sneezing and clear runny nose without fever",
			},
		},
	},
	{
		RequiredSymptoms:  []string{"stomach", "nausea", "vomit", "diarrhea"},
		OptionalSymptoms:  []string{"cramp", "food", "chills", "others sick"},
		ExcludingSymptoms: []string{"blood", "severe pain"},
		Possibilities: []possibility{
			{
				Name:                "Viral gastroenteritis",
				Description:         "Stomach bug, often short-lived",
				Likelihood:          episode.LikelihoodModerate,
				TypicalPresentation: "Nausea, vomiting, or diarrhea with stomach cramps",
			},
			{
				Name:                "Food-related upset",
				Description:         "Reaction to something recently eaten",
				Likelihood:          episode.LikelihoodLow,
				TypicalPresentation: "Symptoms starting within hours of a meal",
			},
		},
		SeniorExtra: []possibility{
			{
				Name:                "Medication-related stomach upset",
				Description:         "Common medications can irritate the stomach in older adults",
				Likelihood:          episode.LikelihoodLow,
				TypicalPresentation: "Ongoing queasiness tied to medication timing",
			},
		},
	},
	{
		RequiredSymptoms:  []string{"rash", "itch", "hives"},
		OptionalSymptoms:  []string{"new soap", "new detergent", "new food", "plant", "spreading"},
		ExcludingSymptoms: []string{"can't breathe", "swelling of", "throat"},
		Possibilities: []possibility{
			{
				Name:                "Contact irritation",
				Description:         "Skin reaction to something touched or worn",
				Likelihood:          episode.LikelihoodModerate,
				TypicalPresentation: "Localized redness and itching where contact occurred",
			},
			{
				Name:                "Mild allergic skin reaction",
				Description:         "Histamine response to a food, medication, or environment",
				Likelihood:          episode.LikelihoodLow,
				TypicalPresentation: "Raised itchy welts that come and go",
			},
		},
	},
	{
		RequiredSymptoms:  []string{"back pain", "joint", "muscle", "sprain", "strain"},
		OptionalSymptoms:  []string{"lifting", "exercise", "fell", "overuse", "swelling"},
		ExcludingSymptoms: []string{"numbness", "can't move", "bladder"},
		Possibilities: []possibility{
			{
				Name:                "Muscle strain",
				Description:         "Overstretched or overworked muscle tissue",
				Likelihood:          episode.LikelihoodModerate,
				TypicalPresentation: "Soreness that worsens with movement and eases with rest",
			},
			{
				Name:                "Minor joint sprain",
				Description:         "Stretched ligaments around a joint",
				Likelihood:          episode.LikelihoodLow,
				TypicalPresentation: "Localized swelling and pain with use",
			},
		},
		SeniorExtra: []possibility{
			{
				Name:                "Age-related joint wear",
				Description:         "Degenerative joint changes are common with age",
				Likelihood:          episode.LikelihoodModerate,
				TypicalPresentation: "Stiffness that is worst after rest and eases with gentle movement",
			},
		},
	},
	{
		RequiredSymptoms:  []string{"dizzy", "lightheaded"},
		OptionalSymptoms:  []string{"standing", "dehydrat", "skipped", "hungry", "hot"},
		ExcludingSymptoms: []string{"chest pain", "fainted", "slurred"},
		Possibilities: []possibility{
			{
				Name:                "Orthostatic lightheadedness",
				Description:         "Brief drop in blood pressure when standing",
				Likelihood:          episode.LikelihoodModerate,
				TypicalPresentation: "Momentary dizziness on standing up quickly",
			},
			{
				Name:                "Dehydration or low blood sugar",
				Description:         "Insufficient fluids or food intake",
				Likelihood:          episode.LikelihoodLow,
				TypicalPresentation: "Gradual lightheadedness improving after eating or drinking",
			},
		},
	},
}
