package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"firefly-assistant/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Completer turns a rendered prompt into the model's raw text reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Close() error
}

var ErrEmptyCompletion = errors.New("no response from LLM")

func buildSystemInstruction() string {
	return `You are a bookkeeping assistant for a personal Firefly III ledger.
You turn short, informal notes about spending into structured withdrawal records.
Always answer with a single JSON object and nothing else: no markdown, no code fences, no commentary outside the JSON.
Only use categories from the list you are given. Keep amounts as plain numbers without currency symbols.`
}

// NewCompleter picks the provider named in cfg.LLM.Provider.
func NewCompleter(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Completer, error) {
	switch strings.ToLower(cfg.LLM.Provider) {
	case config.ProviderGigaChat, "":
		return NewGigaChatCompleter(ctx, &cfg.GigaChat, cfg.LLM.Temperature, logger)
	case config.ProviderGemini:
		return NewGeminiCompleter(ctx, &cfg.Gemini, cfg.LLM.Temperature, logger)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLM.Provider)
	}
}

type GigaChatCompleter struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	logger *zap.Logger
}

func NewGigaChatCompleter(ctx context.Context, cfg *config.GigaChatConfig, temperature float64, logger *zap.Logger) (*GigaChatCompleter, error) {
	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}

	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SystemInstruction = buildSystemInstruction()
	setFloat(&model.Temperature, temperature)

	logger.Info("Using GigaChat model", zap.String("model", cfg.Model))

	return &GigaChatCompleter{client: client, model: model, logger: logger}, nil
}

func (c *GigaChatCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	}

	resp, err := c.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *GigaChatCompleter) Close() error {
	if c.client != nil {
		c.client.Close()
	}
	return nil
}

type GeminiCompleter struct {
	client      *genai.Client
	model       string
	temperature float32
	logger      *zap.Logger
}

func NewGeminiCompleter(ctx context.Context, cfg *config.GeminiConfig, temperature float64, logger *zap.Logger) (*GeminiCompleter, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	logger.Info("Using Gemini model", zap.String("model", cfg.Model))

	return &GeminiCompleter{
		client:      client,
		model:       cfg.Model,
		temperature: float32(temperature),
		logger:      logger,
	}, nil
}

func (c *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(buildSystemInstruction(), genai.RoleUser),
		Temperature:       genai.Ptr(c.temperature),
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

func (c *GeminiCompleter) Close() error {
	return nil
}

// setFloat assigns v to a float field whatever its width.
func setFloat[T ~float32 | ~float64](dst *T, v float64) {
	*dst = T(v)
}
