// Package schema holds the payload contracts and the engine that checks
// payloads against them.
package schema

import (
	"fmt"
	"maps"
	"slices"
)

type constError string

func (e constError) Error() string {
	return string(e)
}

// ErrValidatorNotFound is returned when a validator name has no RuleSet.
const ErrValidatorNotFound constError = "validator not found"

// Name identifies a RuleSet.
type Name string

const (
	AccountCreated     Name = "account_created"
	AccountDeactivated Name = "account_deactivated"
	EventViewed        Name = "event_viewed"
	EventMCDGenerated  Name = "event_mcd_generated"
	EventVoicemail     Name = "event_voicemail"
	EventCallCapture   Name = "event_call_capture"
	EventTemplate      Name = "event_template"
)

// Names lists every validator name in the default contract.
var Names = []Name{
	AccountCreated,
	AccountDeactivated,
	EventViewed,
	EventMCDGenerated,
	EventVoicemail,
	EventCallCapture,
	EventTemplate,
}

// Field pairs a required payload key with its rule.
type Field struct {
	Name string
	Rule Rule
}

// RuleSet is the ordered list of required fields for one validator.
type RuleSet []Field

// FieldNames returns the required keys in order.
func (rs RuleSet) FieldNames() []string {
	names := make([]string, len(rs))
	for i, f := range rs {
		names[i] = f.Name
	}
	return names
}

// Registry maps validator names to their RuleSets. It is read-only after
// construction and safe for concurrent use.
type Registry struct {
	ruleSets map[Name]RuleSet
}

// NewRegistry copies ruleSets into a new Registry.
func NewRegistry(ruleSets map[Name]RuleSet) *Registry {
	copied := make(map[Name]RuleSet, len(ruleSets))
	for name, rs := range ruleSets {
		copied[name] = slices.Clone(rs)
	}
	return &Registry{ruleSets: copied}
}

// Lookup returns the RuleSet registered under name.
func (r *Registry) Lookup(name Name) (RuleSet, error) {
	rs, ok := r.ruleSets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrValidatorNotFound, name)
	}
	return rs, nil
}

// Names returns the registered validator names, sorted.
func (r *Registry) Names() []Name {
	return slices.Sorted(maps.Keys(r.ruleSets))
}

// NewDefaultRegistry builds the contract agreed with the event publisher.
func NewDefaultRegistry() (*Registry, error) {
	nonEmptyMap, err := Expression("type(value) == map && size(value) > 0")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare values rule: %w", err)
	}

	eventFields := func(extra ...Field) RuleSet {
		rs := RuleSet{
			{Name: "accountGuid", Rule: String()},
			{Name: "eventGuid", Rule: String()},
			{Name: "eventTime", Rule: Timestamp()},
		}
		return append(rs, extra...)
	}

	return NewRegistry(map[Name]RuleSet{
		AccountCreated: {
			{Name: "accountGuid", Rule: String()},
			{Name: "accountNumber", Rule: String()},
			{Name: "firstName", Rule: String()},
			{Name: "lastName", Rule: String()},
			{Name: "acn", Rule: String()},
			{Name: "acnExtension", Rule: String()},
			{Name: "acnPass", Rule: String()},
			{Name: "eventTime", Rule: Timestamp()},
		},
		AccountDeactivated: {
			{Name: "accountGuid", Rule: String()},
			{Name: "accountNumber", Rule: String()},
			{Name: "firstName", Rule: String()},
			{Name: "lastName", Rule: String()},
			{Name: "eventTime", Rule: Timestamp()},
		},
		EventViewed:       eventFields(),
		EventMCDGenerated: eventFields(Field{Name: "mcdUrl", Rule: String()}),
		EventVoicemail:    eventFields(Field{Name: "voicemailUrl", Rule: String()}),
		EventCallCapture:  eventFields(Field{Name: "recordingUrl", Rule: String()}),
		EventTemplate: eventFields(
			Field{Name: "templateId", Rule: String()},
			Field{Name: "values", Rule: nonEmptyMap},
		),
	}), nil
}
