package intent

import (
	"context"
	"errors"
	"fmt"

	routeDomain "github.com/Kilat-Pet-Delivery/service-route-planner/internal/domain/route"
	"go.uber.org/zap"
	genai "google.golang.org/genai"
)

// ErrEmptyResponse is returned when the model produces no candidate text.
var ErrEmptyResponse = errors.New("model returned no candidates")

// Config configures the Gemini extractor.
type Config struct {
	APIKey      string
	Model       string
	Temperature float32
}

// contentGenerator is the part of genai.Models the extractor uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiExtractor implements route.IntentExtractor on the Gemini API.
type GeminiExtractor struct {
	models      contentGenerator
	model       string
	temperature float32
	logger      *zap.Logger
}

// NewGeminiExtractor creates a GeminiExtractor with its own genai client.
func NewGeminiExtractor(ctx context.Context, cfg Config, logger *zap.Logger) (*GeminiExtractor, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return newGeminiExtractor(cli.Models, cfg, logger), nil
}

func newGeminiExtractor(models contentGenerator, cfg Config, logger *zap.Logger) *GeminiExtractor {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	return &GeminiExtractor{
		models:      models,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		logger:      logger,
	}
}

// Extract asks the model for the waypoint JSON of prompt and decodes it.
func (e *GeminiExtractor) Extract(ctx context.Context, prompt string) (*routeDomain.TripPlan, error) {
	resp, err := e.models.GenerateContent(ctx, e.model,
		[]*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: SystemPrompt}}},
			Temperature:       genai.Ptr(e.temperature),
			ResponseMIMEType:  "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, ErrEmptyResponse
	}

	txt := resp.Candidates[0].Content.Parts[0].Text
	plan, err := DecodePlan(txt)
	if err != nil {
		e.logger.Warn("model reply is not a waypoint plan", zap.String("reply", txt), zap.Error(err))
		return nil, err
	}

	e.logger.Debug("extracted waypoint plan",
		zap.Int("waypoints", len(plan.Intents)),
		zap.Bool("round_trip", plan.RoundTrip),
	)
	return plan, nil
}
