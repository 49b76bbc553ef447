package plan

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

// decompositionSchemaJSON is the structural contract for raw decompositions
// coming back from the reasoning provider. The payload is untrusted and is
// always validated before any scheduling work happens.
const decompositionSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "goal_id": { "type": "string" },
    "main_goal": { "type": "string" },
    "estimated_duration": { "type": "number" },
    "sub_goals": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": { "type": "string" },
          "description": { "type": "string" },
          "tasks": { "type": "array" }
        }
      }
    },
    "dependencies": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "task_id": { "type": "string" },
          "depends_on": { "type": "array", "items": { "type": "string" } }
        }
      }
    }
  }
}`

var decompositionSchemaLoader = gojsonschema.NewStringLoader(decompositionSchemaJSON)

// Validator turns a raw decomposition payload into a TaskPlan.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks the raw payload structurally and semantically, failing on
// the first violation found. On success it returns a TaskPlan at version 1.
func (v *Validator) Validate(raw []byte) (*TaskPlan, error) {
	result, err := gojsonschema.Validate(decompositionSchemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, &FormatError{Reason: fmt.Sprintf("payload is not valid JSON: %v", err)}
	}
	if !result.Valid() {
		first := result.Errors()[0]
		return nil, &FormatError{Field: first.Field(), Reason: first.Description()}
	}

	var p TaskPlan
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, &FormatError{Reason: fmt.Sprintf("cannot decode decomposition: %v", err)}
	}

	if len(p.SubGoals) == 0 {
		return nil, &FormatError{Field: "sub_goals", Reason: "must be a non-empty list"}
	}
	if p.EstimatedDuration <= 0 {
		return nil, &FormatError{Field: "estimated_duration", Reason: "must be a positive number"}
	}

	seen := make(map[string]bool)
	for i, sg := range p.SubGoals {
		if sg.ID == "" {
			return nil, &FormatError{Field: fmt.Sprintf("sub_goals[%d].id", i), Reason: "is required"}
		}
		if sg.Description == "" {
			return nil, &FormatError{Field: fmt.Sprintf("sub_goals[%d].description", i), Reason: "is required"}
		}
		if len(sg.Tasks) == 0 {
			return nil, &FormatError{Field: fmt.Sprintf("sub_goals[%d].tasks", i), Reason: "must be a non-empty list"}
		}
		for j, t := range sg.Tasks {
			field := fmt.Sprintf("sub_goals[%d].tasks[%d]", i, j)
			if t.ID == "" {
				return nil, &FormatError{Field: field + ".id", Reason: "is required"}
			}
			if t.Name == "" {
				return nil, &FormatError{Field: field + ".name", Reason: "is required"}
			}
			if !t.Kind.IsValid() {
				return nil, &FormatError{Field: field + ".kind", Reason: fmt.Sprintf("must be %q or %q", KindAtomic, KindComposite)}
			}
			if seen[t.ID] {
				return nil, &FormatError{Field: field + ".id", Reason: fmt.Sprintf("duplicate task id %q", t.ID)}
			}
			seen[t.ID] = true
			if t.Priority == "" {
				sg.Tasks[j].Priority = PriorityMedium
			} else if !t.Priority.IsValid() {
				return nil, &FormatError{Field: field + ".priority", Reason: fmt.Sprintf("unknown priority %q", t.Priority)}
			}
		}
		p.SubGoals[i] = sg
	}

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.Version = 1
	return &p, nil
}
