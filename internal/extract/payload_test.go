package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waymarkhq/waymark/pkg/errors"
)

func TestValidatePayloadAccepts(t *testing.T) {
	raw := []byte(`{
		"input_type": "recommendation",
		"recommendation_id": "rec-1",
		"timestamp": "2025-06-01T12:00:00Z",
		"source_url": "https://example.com/guide",
		"analysis": {"recommendations": []}
	}`)

	env, err := ValidatePayload(raw)
	require.NoError(t, err)
	assert.Equal(t, "recommendation", env.InputType)
	assert.Equal(t, "rec-1", env.RecommendationID)
	assert.JSONEq(t, `{"recommendations": []}`, string(env.Analysis))
}

func TestValidatePayloadRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ``},
		{"not json", `not json`},
		{"trailing content", `{"input_type":"email","recommendation_id":"r","analysis":{}} extra`},
		{"missing input_type", `{"recommendation_id":"r","analysis":{}}`},
		{"unknown input_type", `{"input_type":"fax","recommendation_id":"r","analysis":{}}`},
		{"missing recommendation_id", `{"input_type":"email","analysis":{}}`},
		{"blank recommendation_id", `{"input_type":"email","recommendation_id":"  ","analysis":{}}`},
		{"missing analysis", `{"input_type":"email","recommendation_id":"r"}`},
		{"analysis not object", `{"input_type":"email","recommendation_id":"r","analysis":[]}`},
		{"bad timestamp", `{"input_type":"email","recommendation_id":"r","timestamp":"yesterday","analysis":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidatePayload([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestValidatePayloadBlankIDIsValidationError(t *testing.T) {
	_, err := ValidatePayload([]byte(`{"input_type":"manual","recommendation_id":" ","analysis":{}}`))
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}
