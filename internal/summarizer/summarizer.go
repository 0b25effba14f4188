// Package summarizer generates short Spanish summaries for article bodies
// using the OpenAI chat completions API, falling back to plain truncation
// when the API is unavailable.
package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/jonesrussell/newsgate/internal/config/summarizer"
	"github.com/jonesrussell/newsgate/internal/domain"
	"github.com/jonesrussell/newsgate/internal/logger"
)

const systemPrompt = "Eres un asistente que resume noticias financieras en español. " +
	"Responde solo con el resumen, sin preámbulos."

// Service produces article summaries.
type Service struct {
	cfg    *summarizer.Config
	client openai.Client
	logger logger.Interface
}

// New creates a summarizer service. With no API key configured the service
// always falls back to truncation.
func New(cfg *summarizer.Config, log logger.Interface) *Service {
	svc := &Service{cfg: cfg, logger: log}
	if cfg.Enabled() {
		opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
		if cfg.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.BaseURL))
		}
		svc.client = openai.NewClient(opts...)
	}
	return svc
}

// Enabled reports whether AI summaries are available.
func (s *Service) Enabled() bool {
	return s.cfg.Enabled()
}

// Summarize returns a summary for the given body. Bodies shorter than the
// bypass threshold are returned verbatim without any API call. API failures
// degrade to truncation rather than failing the caller.
func (s *Service) Summarize(ctx context.Context, title, body string) string {
	if len([]rune(body)) < domain.ShortContentBypass {
		return body
	}
	if !s.Enabled() {
		return domain.Truncate(body, domain.SummaryLimit)
	}

	summary, err := s.complete(ctx, title, body)
	if err != nil {
		s.logger.Warn("summary generation failed, falling back to truncation",
			"title", title, "error", err)
		return domain.Truncate(body, domain.SummaryLimit)
	}
	// Model output is token-bounded, not character-bounded, so the cap
	// still applies here.
	return domain.Truncate(summary, domain.SummaryLimit)
}

func (s *Service) complete(ctx context.Context, title, body string) (string, error) {
	prompt := fmt.Sprintf(
		"Resume la siguiente noticia en un máximo de 2 frases.\n\nTítulo: %s\n\n%s",
		title, body)

	response, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0.3),
		MaxTokens:   openai.Int(int64(s.cfg.MaxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	summary := strings.TrimSpace(response.Choices[0].Message.Content)
	if summary == "" {
		return "", fmt.Errorf("empty summary from openai")
	}
	return summary, nil
}
