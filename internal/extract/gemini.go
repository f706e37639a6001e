package extract

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/waymarkhq/waymark/pkg/errors"
	"github.com/waymarkhq/waymark/pkg/logging"
)

// maxAnalysisInput bounds how much source text is sent per analysis call.
const maxAnalysisInput = 5000

// Analyzer extracts trip facts from free text with Gemini. Its output is an
// untrusted analysis blob that goes through the same decode path as webhook
// payloads.
type Analyzer struct {
	apiKey string
	model  string
	prompt string

	mu     sync.Mutex
	client *genai.Client
}

// NewAnalyzer creates an analyzer for the given model. The prompt is built
// from the category and geo-type vocabularies.
func NewAnalyzer(apiKey, model string, categories, geoTypes []string) *Analyzer {
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	if len(geoTypes) == 0 {
		geoTypes = DefaultGeoTypes
	}
	return &Analyzer{
		apiKey: apiKey,
		model:  model,
		prompt: BuildPrompt(categories, geoTypes),
	}
}

// ensureClient initializes the GenAI client on first use.
func (a *Analyzer) ensureClient(ctx context.Context) (*genai.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}
	if a.apiKey == "" {
		return nil, errors.ErrAPIKeyRequired
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  a.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	a.client = client
	return client, nil
}

// AnalyzeText runs extraction over free text and returns the raw analysis
// JSON.
func (a *Analyzer) AnalyzeText(ctx context.Context, text string) (json.RawMessage, error) {
	client, err := a.ensureClient(ctx)
	if err != nil {
		return nil, err
	}

	if len(text) > maxAnalysisInput {
		text = text[:maxAnalysisInput]
	}
	prompt := "Analyze this text and extract locations:\n" + text + "\n\n" + a.prompt

	resp, err := client.Models.GenerateContent(ctx, a.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return nil, err
	}

	out := strings.TrimSpace(resp.Text())
	if out == "" {
		return nil, errors.ErrNoData
	}

	logging.Ctx(ctx).Debug().
		Str("model", a.model).
		Int("response_bytes", len(out)).
		Msg("Completed text analysis")
	return json.RawMessage(out), nil
}
