// Package validation provides the optional structural gate for incoming
// docmap JSON. It checks the chain skeleton only (identifiers, container
// types); extraction-level defects such as an action without outputs remain
// the steps package's responsibility.
package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const docmapSchema = `{
    "$schema": "https://json-schema.org/draft/2020-12/schema",
    "type": "object",
    "required": ["first-step", "steps"],
    "properties": {
        "first-step": {"type": "string", "minLength": 1},
        "steps": {
            "type": "object",
            "minProperties": 1,
            "additionalProperties": {
                "type": "object",
                "properties": {
                    "inputs": {"type": "array"},
                    "actions": {
                        "type": "array",
                        "items": {
                            "type": "object",
                            "properties": {
                                "outputs": {"type": "array"}
                            }
                        }
                    },
                    "assertions": {"type": "array"},
                    "next-step": {"type": "string"},
                    "previous-step": {"type": "string"}
                }
            }
        }
    }
}`

var compiled = jsonschema.MustCompileString("docmap.schema.json", docmapSchema)

// Issue captures a single validation failure.
type Issue struct {
	Location string
	Message  string
}

// ValidateDocmap checks raw docmap JSON against the structural schema.
func ValidateDocmap(data []byte) error {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("docmap is not valid JSON: %w", err)
	}
	return compiled.Validate(decoded)
}

// Issues extracts the leaf validation failures from a schema error.
func Issues(err error) []Issue {
	if err == nil {
		return nil
	}
	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []Issue{{Message: err.Error()}}
	}
	return collectIssues(validationErr)
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if strings.TrimSpace(location) == "" {
			location = "#"
		}
		return []Issue{{Location: location, Message: err.Message}}
	}
	var issues []Issue
	for _, cause := range err.Causes {
		issues = append(issues, collectIssues(cause)...)
	}
	return issues
}
