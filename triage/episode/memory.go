package episode

import "fmt"

// MemoryType is the closed set of durable fact kinds the assistant may offer
// to remember. The unexported field keeps the set closed: code outside this
// package cannot construct a value that is not one of the five below, so
// one-time symptoms, emotional states, and past episodes can never become
// persistence candidates.
type MemoryType struct{ v string }

var (
	MemoryAllergy    = MemoryType{"allergy"}
	MemoryCondition  = MemoryType{"condition"}
	MemoryMedication = MemoryType{"medication"}
	MemoryPreference = MemoryType{"preference"}
	MemoryTrigger    = MemoryType{"trigger"}
)

// AllMemoryTypes lists every valid memory type.
func AllMemoryTypes() []MemoryType {
	return []MemoryType{MemoryAllergy, MemoryCondition, MemoryMedication, MemoryPreference, MemoryTrigger}
}

// ParseMemoryType resolves a string to a memory type, reporting whether the
// string names a valid member of the set.
func ParseMemoryType(s string) (MemoryType, bool) {
	for _, t := range AllMemoryTypes() {
		if t.v == s {
			return t, true
		}
	}
	return MemoryType{}, false
}

func (t MemoryType) String() string { return t.v }

// IsZero reports whether the type was left unset (the zero value is not a
// member of the closed set).
func (t MemoryType) IsZero() bool { return t.v == "" }

// MarshalJSON encodes the type as its string name.
func (t MemoryType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.v + `"`), nil
}

// UnmarshalJSON decodes and validates the type name.
func (t *MemoryType) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("memory type must be a JSON string, got %s", data)
	}
	parsed, ok := ParseMemoryType(string(data[1 : len(data)-1]))
	if !ok {
		return fmt.Errorf("disallowed memory type %s", data)
	}
	*t = parsed
	return nil
}

// MemoryConfidence grades how sure the extractor is about a candidate.
type MemoryConfidence string

const (
	ConfidenceLow    MemoryConfidence = "low"
	ConfidenceMedium MemoryConfidence = "medium"
	ConfidenceHigh   MemoryConfidence = "high"
)

// MemoryCandidate is a proposed durable health fact extracted from
// conversation text. The pipeline only proposes; the caller must obtain
// explicit user confirmation before anything is persisted.
type MemoryCandidate struct {
	ID         string           `json:"id"`
	Type       MemoryType       `json:"type"`
	Label      string           `json:"label"`
	Value      string           `json:"value"`
	Confidence MemoryConfidence `json:"confidence"`
	Reason     string           `json:"reason"`
}

// MemorySnapshot is the read-only view of previously confirmed facts handed
// in by the persistence collaborator. The pipeline uses it to pre-fill
// context and to avoid re-asking what is already known.
type MemorySnapshot struct {
	Allergies   []string `json:"allergies,omitempty"`
	Conditions  []string `json:"conditions,omitempty"`
	Medications []string `json:"medications,omitempty"`
	Preferences []string `json:"preferences,omitempty"`
	Triggers    []string `json:"triggers,omitempty"`
}

// IsEmpty reports whether the snapshot carries no facts at all.
func (m MemorySnapshot) IsEmpty() bool {
	return len(m.Allergies) == 0 && len(m.Conditions) == 0 && len(m.Medications) == 0 &&
		len(m.Preferences) == 0 && len(m.Triggers) == 0
}
