// Package extract ingests the payloads upstream extraction posts to the
// webhook: an envelope identifying the source document wrapped around an
// untrusted analysis blob. The envelope is validated strictly; the analysis
// inside is decoded best-effort, since the reconciliation layer is designed
// to absorb partial and malformed shapes rather than reject them.
package extract

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/waymarkhq/waymark/pkg/errors"
)

//go:embed payload.schema.json
var payloadSchemaJSON string

// Envelope is the outer webhook payload.
type Envelope struct {
	InputType        string          `json:"input_type"`
	RecommendationID string          `json:"recommendation_id"`
	Timestamp        string          `json:"timestamp,omitempty"`
	SourceURL        string          `json:"source_url,omitempty"`
	SourceTitle      string          `json:"source_title,omitempty"`
	SourceImage      string          `json:"source_image,omitempty"`
	Analysis         json.RawMessage `json:"analysis"`
}

var (
	compileOnce       sync.Once
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error
)

// ValidatePayload validates the raw webhook payload against the envelope
// schema and returns the decoded envelope. Only the envelope is validated;
// the analysis blob stays opaque here.
func ValidatePayload(raw []byte) (*Envelope, error) {
	value, err := decodeStrictJSON(raw)
	if err != nil {
		return nil, errors.WrapParse("json", "payload", err)
	}

	schema, err := loadSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(value); err != nil {
		return nil, errors.WrapValidation("payload", err)
	}

	normalized, err := json.Marshal(value)
	if err != nil {
		return nil, errors.WrapParse("json", "payload", err)
	}

	var env Envelope
	if err := json.Unmarshal(normalized, &env); err != nil {
		return nil, errors.WrapParse("json", "payload", err)
	}

	if err := validateSemantics(&env); err != nil {
		return nil, err
	}
	return &env, nil
}

func loadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		if err := compiler.AddResource("payload.schema.json", strings.NewReader(payloadSchemaJSON)); err != nil {
			compiledSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}

		schema, err := compiler.Compile("payload.schema.json")
		if err != nil {
			compiledSchemaErr = fmt.Errorf("compile schema: %w", err)
			return
		}
		compiledSchema = schema
	})

	if compiledSchemaErr != nil {
		return nil, compiledSchemaErr
	}
	return compiledSchema, nil
}

// decodeStrictJSON decodes exactly one JSON value and rejects trailing
// content.
func decodeStrictJSON(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("payload is empty")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("payload contains trailing content")
	}
	return value, nil
}

func validateSemantics(env *Envelope) error {
	if strings.TrimSpace(env.RecommendationID) == "" {
		return errors.NewValidationError("recommendation_id", env.RecommendationID, "must not be blank")
	}
	if env.Timestamp != "" {
		if _, err := time.Parse(time.RFC3339, strings.TrimSpace(env.Timestamp)); err != nil {
			return errors.NewValidationError("timestamp", env.Timestamp, "must be RFC3339")
		}
	}
	return nil
}
