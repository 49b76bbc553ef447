package plan

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLToPayload converts a YAML decomposition document into the JSON payload
// the Validator accepts. Estimate fields may use the shorthand syntax
// ("30m", "4h", "2d", "1w"); they are normalized to minutes.
func YAMLToPayload(raw []byte) ([]byte, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, &FormatError{Reason: fmt.Sprintf("payload is not valid YAML: %v", err)}
	}

	if err := normalizeEstimates(doc, ""); err != nil {
		return nil, err
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, &FormatError{Reason: fmt.Sprintf("cannot encode decomposition: %v", err)}
	}
	return out, nil
}

// normalizeEstimates walks the decoded document and rewrites string-valued
// estimated_duration fields into minute numbers.
func normalizeEstimates(node any, path string) error {
	switch v := node.(type) {
	case map[string]any:
		for key, value := range v {
			field := key
			if path != "" {
				field = path + "." + key
			}
			if key == "estimated_duration" {
				if s, ok := value.(string); ok {
					minutes, err := ParseEstimate(s)
					if err != nil {
						return &FormatError{Field: field, Reason: err.Error()}
					}
					v[key] = minutes
					continue
				}
			}
			if err := normalizeEstimates(value, field); err != nil {
				return err
			}
		}
	case []any:
		for i, item := range v {
			if err := normalizeEstimates(item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}
