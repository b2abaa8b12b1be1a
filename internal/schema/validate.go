package schema

import (
	"fmt"
	"strings"
)

// Violation describes one field that did not satisfy its rule.
type Violation struct {
	// Field is the payload key.
	Field string `json:"field"`
	// Missing is true when the key was absent rather than invalid.
	Missing bool `json:"missing"`
	// Message is a human-readable description.
	Message string `json:"message"`
}

func (v Violation) String() string {
	return v.Message
}

// Violations is the result of validating one payload.
type Violations []Violation

// Error joins every message so Violations can travel as an error.
func (v Violations) Error() string {
	msgs := make([]string, len(v))
	for i, violation := range v {
		msgs[i] = violation.Message
	}
	return strings.Join(msgs, "; ")
}

// Validate checks payload against rs and returns every violation in RuleSet
// order. Keys not named by rs are ignored.
func Validate(payload map[string]any, rs RuleSet) Violations {
	var violations Violations
	for _, field := range rs {
		value, ok := payload[field.Name]
		if !ok {
			violations = append(violations, Violation{
				Field:   field.Name,
				Missing: true,
				Message: fmt.Sprintf("missing field %s", field.Name),
			})
			continue
		}
		if !field.Rule.Check(value) {
			violations = append(violations, Violation{
				Field:   field.Name,
				Message: fmt.Sprintf("field %s invalid", field.Name),
			})
		}
	}
	return violations
}
