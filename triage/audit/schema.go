//go:build !prod

package audit

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/carebridge/symptom-triage/triage/guidance"
	"github.com/xeipuuv/gojsonschema"
)

// guidanceSchema pins the serialized guidance contract: required sections,
// string arrays, and the closed risk-level enum.
const guidanceSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["understanding", "possible_causes", "immediate_actions", "when_to_seek_help", "risk_level", "detected_symptoms"],
  "properties": {
    "understanding": {"type": "string", "minLength": 1},
    "possible_causes": {"type": "array", "items": {"type": "string"}},
    "immediate_actions": {"type": "array", "items": {"type": "string"}},
    "when_to_seek_help": {"type": "array", "items": {"type": "string"}},
    "suggested_actions": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "required": ["type", "label"],
        "properties": {
          "type": {"type": "string", "enum": ["call_emergency", "book_doctor", "video_consult", "monitor_at_home", "no_action_needed"]},
          "label": {"type": "string", "minLength": 1}
        }
      }
    },
    "recommended_services": {"type": ["array", "null"], "items": {"type": "string"}},
    "risk_level": {"type": "string", "enum": ["low", "moderate", "high", "critical"]},
    "detected_symptoms": {"type": "array", "items": {"type": "string"}},
    "differentials": {
      "type": ["array", "null"],
      "maxItems": 3,
      "items": {
        "type": "object",
        "required": ["name", "likelihood"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "likelihood": {"type": "string", "enum": ["high", "moderate", "low"]}
        }
      }
    }
  }
}`

// validateGuidance serializes the response and checks it against the schema.
func validateGuidance(g *guidance.GuidanceResponse) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to serialize guidance: %w", err)
	}

	schemaLoader := gojsonschema.NewStringLoader(guidanceSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	if !result.Valid() {
		var errors []string
		for _, err := range result.Errors() {
			errors = append(errors, err.String())
		}
		return fmt.Errorf("schema validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}
