// Package claude adapts the Anthropic Messages API to the engine's
// vocalization and syllabification provider capabilities.
package claude

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/myhebrew-backend/internal/config"
	"github.com/heartmarshall/myhebrew-backend/internal/domain"
)

// Provider calls Claude for vocalization and syllabification.
type Provider struct {
	client  anthropic.Client
	cfg     config.ProviderConfig
	log     *slog.Logger
	confErr error
}

// New creates a Provider from config. Fails fast on missing credentials or
// model so a misconfigured deployment surfaces immediately instead of on
// the first reader action.
func New(cfg config.ProviderConfig, logger *slog.Logger) (*Provider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, domain.ErrMissingCredential
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, domain.ErrMissingModel
	}

	return &Provider{
		client: anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		cfg:    cfg,
		log:    logger.With("adapter", "claude"),
	}, nil
}

// Unconfigured returns a Provider whose every call reports the missing
// configuration. Lets the server start and serve cache hits without a
// credential.
func Unconfigured(cfg config.ProviderConfig, logger *slog.Logger) *Provider {
	confErr := domain.ErrMissingCredential
	if strings.TrimSpace(cfg.Model) == "" {
		confErr = domain.ErrMissingModel
	}
	return &Provider{
		cfg:     cfg,
		log:     logger.With("adapter", "claude"),
		confErr: confErr,
	}
}

// Vocalize asks the provider to add full niqqud to unvocalized text.
func (p *Provider) Vocalize(ctx context.Context, text string) (string, error) {
	return p.generate(ctx, "vocalize", p.template(p.cfg.VocalizePrompt, defaultVocalizePrompt), text)
}

// Complete asks the provider to finish the niqqud of a partially
// vocalized text, keeping the existing marks.
func (p *Provider) Complete(ctx context.Context, text string) (string, error) {
	return p.generate(ctx, "complete", p.template(p.cfg.CompletePrompt, defaultCompletePrompt), text)
}

// Syllabify asks the provider to divide vocalized text into syllables.
// The raw reply is returned; parsing is the caller's concern.
func (p *Provider) Syllabify(ctx context.Context, text string) (string, error) {
	return p.generate(ctx, "syllabify", p.template(p.cfg.SyllabifyPrompt, defaultSyllabifyPrompt), text)
}

func (p *Provider) template(configured, fallback string) string {
	if strings.TrimSpace(configured) != "" {
		return configured
	}
	return fallback
}

func (p *Provider) generate(ctx context.Context, op, template, text string) (string, error) {
	if p.confErr != nil {
		return "", p.confErr
	}
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrEmptyInput
	}

	prompt := renderPrompt(template, text)

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(p.cfg.Model),
		MaxTokens:   p.cfg.MaxTokens,
		Temperature: anthropic.Float(p.cfg.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	system := p.template(p.cfg.SystemPrompt, defaultSystemPrompt)
	params.System = []anthropic.TextBlockParam{{Text: system}}

	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	p.log.DebugContext(ctx, "provider request",
		slog.String("op", op),
		slog.String("model", p.cfg.Model),
		slog.Int("text_len", len(text)),
	)

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			p.log.ErrorContext(ctx, "provider http error",
				slog.String("op", op),
				slog.Int("status", apiErr.StatusCode),
			)
			return "", domain.NewProviderHTTPError(apiErr.StatusCode, apiErr.Error())
		}
		return "", fmt.Errorf("%s call: %w", op, err)
	}

	if len(msg.Content) == 0 {
		return "", domain.ErrProviderEmptyResponse
	}

	out := strings.TrimSpace(msg.Content[0].Text)
	if out == "" {
		return "", domain.ErrProviderEmptyResponse
	}

	p.log.DebugContext(ctx, "provider response",
		slog.String("op", op),
		slog.Int("reply_len", len(out)),
	)

	return out, nil
}

// renderPrompt substitutes the {text} placeholder.
func renderPrompt(template, text string) string {
	return strings.ReplaceAll(template, "{text}", text)
}
