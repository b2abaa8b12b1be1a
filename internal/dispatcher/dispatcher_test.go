package dispatcher

import (
	"testing"

	"github.com/DIMO-Network/webhook-validator/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectValidator(t *testing.T) {
	tests := []struct {
		name     string
		payload  map[string]any
		expected schema.Name
	}{
		{
			name:     "account created",
			payload:  map[string]any{"type": "ACCOUNT_CREATED"},
			expected: schema.AccountCreated,
		},
		{
			name:     "account deactivated",
			payload:  map[string]any{"type": "ACCOUNT_DEACTIVATED"},
			expected: schema.AccountDeactivated,
		},
		{
			name:     "event viewed",
			payload:  map[string]any{"type": "EVENT_VIEWED"},
			expected: schema.EventViewed,
		},
		{
			name:     "mcd generated",
			payload:  map[string]any{"type": "EVENT", "eventType": "MCD_GENERATED"},
			expected: schema.EventMCDGenerated,
		},
		{
			name:     "voicemail",
			payload:  map[string]any{"type": "EVENT", "eventType": "VOICEMAIL"},
			expected: schema.EventVoicemail,
		},
		{
			name:     "call capture",
			payload:  map[string]any{"type": "EVENT", "eventType": "CALL_CAPTURE"},
			expected: schema.EventCallCapture,
		},
		{
			name:     "template",
			payload:  map[string]any{"type": "EVENT", "eventType": "TEMPLATE"},
			expected: schema.EventTemplate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, err := SelectValidator(tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, name)
		})
	}
}

func TestSelectValidator_EveryNameIsRegistered(t *testing.T) {
	registry, err := schema.NewDefaultRegistry()
	require.NoError(t, err)

	payloads := []map[string]any{
		{"type": TypeAccountCreated},
		{"type": TypeAccountDeactivated},
		{"type": TypeEventViewed},
	}
	for _, eventType := range EventTypes {
		payloads = append(payloads, map[string]any{"type": TypeEvent, "eventType": eventType})
	}
	for _, payload := range payloads {
		name, err := SelectValidator(payload)
		require.NoError(t, err)
		_, err = registry.Lookup(name)
		require.NoError(t, err, "validator %s", name)
	}
}

func TestSelectValidator_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		kind    error
		message string
	}{
		{
			name:    "unknown type",
			payload: map[string]any{"type": "NOT_A_TYPE"},
			kind:    ErrUnknownType,
			message: "Unknown type: NOT_A_TYPE",
		},
		{
			name:    "lowercase type",
			payload: map[string]any{"type": "account_created"},
			kind:    ErrUnknownType,
			message: "Unknown type: account_created",
		},
		{
			name:    "missing type",
			payload: map[string]any{},
			kind:    ErrUnknownType,
			message: "Unknown type: ",
		},
		{
			name:    "unknown event type",
			payload: map[string]any{"type": "EVENT", "eventType": "bogus"},
			kind:    ErrUnknownEventType,
			message: "Invalid eventType bogus",
		},
		{
			name:    "lowercase event type",
			payload: map[string]any{"type": "EVENT", "eventType": "voicemail"},
			kind:    ErrUnknownEventType,
			message: "Invalid eventType voicemail",
		},
		{
			name:    "missing event type",
			payload: map[string]any{"type": "EVENT"},
			kind:    ErrUnknownEventType,
			message: "Invalid eventType ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SelectValidator(tt.payload)
			require.ErrorIs(t, err, tt.kind)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestDisplayValue(t *testing.T) {
	assert.Empty(t, DisplayValue(nil))
	assert.Equal(t, "EVENT", DisplayValue("EVENT"))
	assert.Equal(t, "12", DisplayValue(float64(12)))
	assert.Equal(t, "true", DisplayValue(true))
}
