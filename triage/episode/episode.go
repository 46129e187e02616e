package episode

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Turn is one exchange in the episode transcript.
type Turn struct {
	Role      string    `json:"role"` // "user" | "assistant"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Episode is one conversation thread about a single health concern, from the
// initial symptom report to resolution. The caller owns it and must not let
// more than one in-flight call mutate it at a time.
type Episode struct {
	ID        string            `json:"id"`
	ForWhom   string            `json:"for_whom,omitempty"` // "me" | "family"
	Context   HealthContext     `json:"context"`
	FlowState QuestionFlowState `json:"flow_state"`
	Turns     []Turn            `json:"turns,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewEpisode starts an episode for the given primary symptom and category.
func NewEpisode(primarySymptom string, category Category) Episode {
	now := time.Now()
	return Episode{
		ID: uuid.New().String(),
		Context: HealthContext{
			PrimarySymptom: primarySymptom,
		},
		FlowState: NewQuestionFlowState(category),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// WithTurn returns a copy with the turn appended and the timestamp advanced.
func (e Episode) WithTurn(role, content string) Episode {
	turns := make([]Turn, len(e.Turns), len(e.Turns)+1)
	copy(turns, e.Turns)
	e.Turns = append(turns, Turn{Role: role, Content: content, CreatedAt: time.Now()})
	e.UpdatedAt = time.Now()
	return e
}

// AllUserText joins every user turn plus the accumulated context text, for
// keyword matching across the whole episode.
func (e Episode) AllUserText() string {
	text := e.Context.JoinedText()
	for _, t := range e.Turns {
		if t.Role == "user" {
			text += " " + t.Content
		}
	}
	return strings.ToLower(text)
}
