package schema

import (
	"encoding/json"
	"time"

	"github.com/DIMO-Network/webhook-validator/internal/celcondition"
)

// Kind tags the variant of a Rule.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindMap
	KindPredicate
)

var kindNames = map[Kind]string{
	KindString:    "string",
	KindNumber:    "number",
	KindBool:      "bool",
	KindMap:       "map",
	KindPredicate: "predicate",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Rule constrains the value of a single payload field. Primitive kinds check
// the decoded JSON type; KindPredicate delegates to Predicate.
type Rule struct {
	Kind      Kind
	Predicate func(value any) bool
}

// String requires a JSON string.
func String() Rule { return Rule{Kind: KindString} }

// Number requires a JSON number.
func Number() Rule { return Rule{Kind: KindNumber} }

// Bool requires a JSON boolean.
func Bool() Rule { return Rule{Kind: KindBool} }

// Map requires a JSON object, empty or not.
func Map() Rule { return Rule{Kind: KindMap} }

// Predicate wraps an arbitrary check.
func Predicate(fn func(value any) bool) Rule {
	return Rule{Kind: KindPredicate, Predicate: fn}
}

// Timestamp requires an ISO-8601 string.
func Timestamp() Rule { return Predicate(IsISO8601) }

// Expression builds a predicate rule from a CEL expression over "value".
func Expression(expr string) (Rule, error) {
	prg, err := celcondition.PrepareCondition(expr)
	if err != nil {
		return Rule{}, err
	}
	return Predicate(func(value any) bool {
		ok, err := celcondition.EvaluateCondition(prg, value)
		return err == nil && ok
	}), nil
}

// Check reports whether value satisfies the rule.
func (r Rule) Check(value any) bool {
	switch r.Kind {
	case KindString:
		_, ok := value.(string)
		return ok
	case KindNumber:
		switch value.(type) {
		case float64, float32, int, int64, json.Number:
			return true
		}
		return false
	case KindBool:
		_, ok := value.(bool)
		return ok
	case KindMap:
		_, ok := value.(map[string]any)
		return ok
	case KindPredicate:
		return r.Predicate != nil && r.Predicate(value)
	default:
		return false
	}
}

// iso8601Layouts are the forms accepted for timestamps: a full date-time with
// optional fraction, or a bare calendar date, each with an optional zone
// written as Z, ±hh, ±hhmm or ±hh:mm.
var iso8601Layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02Z07:00",
	"2006-01-02Z0700",
	"2006-01-02Z07",
	"2006-01-02",
}

// IsISO8601 reports whether value is a string holding an ISO-8601 timestamp.
func IsISO8601(value any) bool {
	str, ok := value.(string)
	if !ok {
		return false
	}
	for _, layout := range iso8601Layouts {
		if _, err := time.Parse(layout, str); err == nil {
			return true
		}
	}
	return false
}
