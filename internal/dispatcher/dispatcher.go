// Package dispatcher picks the validator for a payload from its "type" and,
// for generic events, "eventType" discriminators.
package dispatcher

import (
	"fmt"
	"strings"

	"github.com/DIMO-Network/webhook-validator/internal/schema"
)

type constError string

func (e constError) Error() string {
	return string(e)
}

const (
	ErrUnknownType      constError = "unknown type"
	ErrUnknownEventType constError = "unknown eventType"
)

const (
	TypeField      = "type"
	EventTypeField = "eventType"

	TypeAccountCreated     = "ACCOUNT_CREATED"
	TypeAccountDeactivated = "ACCOUNT_DEACTIVATED"
	TypeEventViewed        = "EVENT_VIEWED"
	TypeEvent              = "EVENT"
)

var typeValidators = map[string]schema.Name{
	TypeAccountCreated:     schema.AccountCreated,
	TypeAccountDeactivated: schema.AccountDeactivated,
	TypeEventViewed:        schema.EventViewed,
}

// EventTypes are the accepted eventType values for type EVENT.
var EventTypes = []string{"MCD_GENERATED", "VOICEMAIL", "CALL_CAPTURE", "TEMPLATE"}

// DiscriminatorError reports an unrecognized type or eventType value.
type DiscriminatorError struct {
	// Kind is ErrUnknownType or ErrUnknownEventType.
	Kind  constError
	Value any
}

func (e *DiscriminatorError) Error() string {
	if e.Kind == ErrUnknownEventType {
		return "Invalid eventType " + DisplayValue(e.Value)
	}
	return "Unknown type: " + DisplayValue(e.Value)
}

func (e *DiscriminatorError) Unwrap() error {
	return e.Kind
}

// DisplayValue renders a discriminator for messages. Absent or null values
// render as "".
func DisplayValue(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

// SelectValidator returns the validator name for payload.
func SelectValidator(payload map[string]any) (schema.Name, error) {
	payloadType := payload[TypeField]
	typeStr, _ := payloadType.(string)

	if name, ok := typeValidators[typeStr]; ok {
		return name, nil
	}
	if typeStr != TypeEvent {
		return "", &DiscriminatorError{Kind: ErrUnknownType, Value: payloadType}
	}

	eventType := payload[EventTypeField]
	eventTypeStr, _ := eventType.(string)
	for _, known := range EventTypes {
		if eventTypeStr == known {
			return schema.Name("event_" + strings.ToLower(known)), nil
		}
	}
	return "", &DiscriminatorError{Kind: ErrUnknownEventType, Value: eventType}
}
