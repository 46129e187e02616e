package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carebridge/symptom-triage/triage/episode"
)

// TestDetect_PriorityOrder verifies the first matching category wins and
// headache beats the generic pain bucket.
func TestDetect_PriorityOrder(t *testing.T) {
	tests := []struct {
		text     string
		expected episode.Category
	}{
		{"I have a headache that started this morning", episode.CategoryHeadache},
		{"my head hurts and the pain is bad", episode.CategoryHeadache}, // headache before pain
		{"I feel nauseous and my stomach hurts", episode.CategoryGI},
		{"running a fever since last night", episode.CategoryFever},
		{"bad cough and a sore throat", episode.CategoryRespiratory},
		{"itchy rash on my arm", episode.CategorySkin},
		{"I sprained my ankle playing soccer", episode.CategoryMusculoskeletal},
		{"feeling dizzy and lightheaded", episode.CategoryNeurological},
		{"my elbow hurts", episode.CategoryPain},
		{"I just feel off today", episode.CategoryGeneral},
		{"", episode.CategoryGeneral},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Detect(tt.text), "text: %q", tt.text)
	}
}

// TestDetect_CaseInsensitive verifies matching is done on lower-cased input.
func TestDetect_CaseInsensitive(t *testing.T) {
	assert.Equal(t, episode.CategoryHeadache, Detect("TERRIBLE MIGRAINE"))
	assert.Equal(t, episode.CategoryFever, Detect("Fever of 102"))
}
