package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/xpanvictor/voicetaker/pkg/Logger"
	"github.com/xpanvictor/voicetaker/pkg/io/translate"
	"google.golang.org/api/option"
)

// generator is the slice of *genai.GenerativeModel the translator needs.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Config holds configuration for the Gemini translator
type Config struct {
	APIKey    string
	ModelName string // e.g., "gemini-1.5-flash"
}

// Translator implements translate.Translator using Google Gemini
type Translator struct {
	client *genai.Client
	// withInstruction returns a generator carrying the system prompt for one call
	withInstruction func(instruction string) generator
	logger          *Logger.Logger
}

var _ translate.Translator = (*Translator)(nil)

// New creates a new Gemini translator
func New(ctx context.Context, config Config, logger *Logger.Logger) (*Translator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	modelName := config.ModelName
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	model := client.GenerativeModel(modelName)
	model.Temperature = &[]float32{0.1}[0] // translations should be deterministic

	return &Translator{
		client: client,
		withInstruction: func(instruction string) generator {
			m := *model
			m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(instruction)}}
			return &m
		},
		logger: logger,
	}, nil
}

func (g *Translator) Translate(ctx context.Context, text, source, target string) (string, error) {
	gen := g.withInstruction(translate.Instruction(source, target))
	resp, err := gen.GenerateContent(ctx, genai.Text(text))
	if err != nil {
		return "", fmt.Errorf("%w: %v", translate.ErrUnavailable, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", translate.ErrEmptyTranslation
	}

	var responseText string
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			responseText += string(textPart)
		}
	}

	g.logger.Debugf("Gemini translation: %s", responseText)
	return translate.Clean(responseText)
}

// Close cleans up the Gemini client
func (g *Translator) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
