package receiver

import "github.com/DIMO-Network/webhook-validator/internal/schema"

// ValidationFailureResponse is returned when a payload breaks its contract.
type ValidationFailureResponse struct {
	// Message is a short summary of the failure.
	Message string `json:"message"`
	// Violations lists every missing or invalid field.
	Violations []schema.Violation `json:"violations"`
}

// verdict is the outcome of checking a payload that could be dispatched.
type verdict struct {
	payloadType string
	validator   schema.Name
	violations  schema.Violations
}
