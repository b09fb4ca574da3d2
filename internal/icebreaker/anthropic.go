package icebreaker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"leadgen/internal/common/config"
	stderrors "leadgen/internal/common/errors"
	commonhttp "leadgen/internal/common/http"
	"leadgen/internal/common/logger"
	"leadgen/internal/common/metrics"
	"leadgen/internal/common/retry"
	"leadgen/internal/models"
	"leadgen/internal/rules"
)

const (
	defaultEndpoint  = "https://api.anthropic.com/v1/messages"
	anthropicVersion = "2023-06-01"
)

const promptTemplate = `Du bist ein deutschsprachiger B2B-Sales-Texter. Erstelle einen kurzen, personalisierten Icebreaker (1-2 Sätze) für eine Cold-E-Mail.

REGELN:
- Deutsch, professionell, nicht aufdringlich
- Bezug auf Branche, Position oder Unternehmen des Empfängers
- Keine Floskeln wie "Ich hoffe, es geht Ihnen gut"
- Kein "Ich habe gesehen, dass..."
- Maximal 2 Sätze
- Nahtloser Übergang zum Rest der E-Mail

LEAD-INFORMATIONEN:
- Name: {{vorname}} {{nachname}}
- Position: {{position}}
- Firma: {{firma}}
- Branche: {{branche}}
- Unternehmensgröße: {{groesse}}
- Stadt: {{stadt}}

ABSENDER-FIRMA: {{absender_firma}}
KERNLEISTUNG: {{kernleistung}}

Antworte NUR mit dem Icebreaker-Text, ohne Anführungszeichen.`

// Anthropic calls the external text-generation API. Any failure after
// the retry budget degrades to the deterministic fallback; the caller
// never sees an error.
type Anthropic struct {
	registry *rules.Registry
	apiKey   string
	model    string
	maxToken int
	endpoint string

	client   *commonhttp.Client
	policy   retry.Policy
	fallback *Fallback
	logger   logger.Logger
}

// New selects the strategy for the given configuration. Without an API
// key (or with AI disabled) the deterministic fallback is returned
// unconditionally.
func New(cfg config.AIConfig, registry *rules.Registry, log logger.Logger) Provider {
	if !cfg.Enabled || cfg.APIKey == "" {
		return NewFallback()
	}

	return &Anthropic{
		registry: registry,
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		maxToken: cfg.MaxTokens,
		endpoint: defaultEndpoint,
		client:   commonhttp.NewClient(config.GetDuration(cfg.Timeout)),
		policy:   retry.DefaultAIPolicy,
		fallback: NewFallback(),
		logger:   log.WithFields(map[string]interface{}{"stage": "icebreaker"}),
	}
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (a *Anthropic) Generate(ctx context.Context, assignment models.Assignment) string {
	company, ok := a.registry.Company(assignment.CompanyID)
	if !ok {
		return a.fallback.Generate(ctx, assignment)
	}

	prompt := a.buildPrompt(assignment.Lead, company)

	var text string
	err := a.policy.Do(ctx, func(ctx context.Context) error {
		var attemptErr error
		text, attemptErr = a.call(ctx, prompt)
		return attemptErr
	})
	if err != nil {
		stdErr := stderrors.NewAIGenerationFailedError(err)
		a.logger.Warn("Icebreaker-Generierung fehlgeschlagen, nutze Fallback", map[string]interface{}{
			"email": assignment.Lead.Email,
			"error": stdErr.Details,
		})
		return a.fallback.Generate(ctx, assignment)
	}

	if text == "" {
		return a.fallback.Generate(ctx, assignment)
	}

	metrics.IcebreakersGenerated.WithLabelValues("ai").Inc()
	return text
}

func (a *Anthropic) buildPrompt(lead models.Lead, company rules.CompanyRule) string {
	return strings.NewReplacer(
		"{{vorname}}", lead.FirstName,
		"{{nachname}}", lead.LastName,
		"{{position}}", lead.Title,
		"{{firma}}", lead.CompanyName,
		"{{branche}}", lead.Industry,
		"{{groesse}}", lead.CompanySize,
		"{{stadt}}", lead.City,
		"{{absender_firma}}", company.DisplayName,
		"{{kernleistung}}", company.Kernleistung,
	).Replace(promptTemplate)
}

// call performs a single API attempt. A well-formed response without a
// text block yields "", nil: the caller falls back without retrying.
func (a *Anthropic) call(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(messagesRequest{
		Model:     a.model,
		MaxTokens: a.maxToken,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, a.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := a.client.DoWithContext(ctx, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed messagesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(parsed.Content) == 0 || parsed.Content[0].Type != "text" {
		return "", nil
	}

	return strings.TrimSpace(parsed.Content[0].Text), nil
}
