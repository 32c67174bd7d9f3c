package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// advicePrompt wraps user questions in the fixed healthcare-assistant
// instruction before they are forwarded upstream.
const advicePrompt = `As a healthcare assistant, please provide helpful, accurate, and compassionate advice about:

%s

Focus on general wellness information, transportation options, nursing care, and care coordination. Do not provide specific medical diagnoses or treatment recommendations.`

// adviceTimeout bounds the upstream call so a stalled endpoint cannot
// hang the request indefinitely.
const adviceTimeout = 30 * time.Second

// AdviceService generates care advice for a free-text user query.
type AdviceService interface {
	GenerateAdvice(ctx context.Context, query string) (string, error)
}

// adviceService is the process-wide advice service instance.
var adviceService AdviceService

// GetAdviceService returns the configured advice service.
func GetAdviceService() AdviceService {
	return adviceService
}

// SetAdviceService replaces the advice service (used in tests and
// during startup wiring).
func SetAdviceService(s AdviceService) {
	adviceService = s
}

// GeminiAdviceService forwards queries to the Gemini API wrapped in the
// care-advice prompt template. There is no retry: a failure surfaces
// immediately to the caller.
type GeminiAdviceService struct {
	model *genai.GenerativeModel
}

// NewGeminiAdviceService creates an advice service backed by the Gemini
// API using the given key.
func NewGeminiAdviceService(apiKey string) (*GeminiAdviceService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiAdviceService{model: client.GenerativeModel("models/gemini-1.5-pro")}, nil
}

// GenerateAdvice sends the wrapped query upstream and returns the
// completion text.
func (s *GeminiAdviceService) GenerateAdvice(ctx context.Context, query string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, adviceTimeout)
	defer cancel()

	resp, err := s.model.GenerateContent(ctx, genai.Text(fmt.Sprintf(advicePrompt, query)))
	if err != nil {
		return "", fmt.Errorf("advice generation failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("advice generation returned no content")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}
