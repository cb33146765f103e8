package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"northwind-ai-api/internal/metrics"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultTimeout bounds a completion call when no client is injected.
const DefaultTimeout = 100 * time.Second

// Diagnostics returned in Result.Message. Failure texts are prefixes followed by detail.
const (
	MsgAPIKeyNotSet    = "OpenRouter API key is missing from configuration"
	msgTransportError  = "Error connecting to OpenRouter: "
	msgHTTPError       = "OpenRouter returned HTTP %d: %s"
	msgParseError      = "Error parsing OpenRouter response: "
	msgUnexpectedError = "Unexpected error calling OpenRouter: "
)

var errNoChoices = errors.New("response has no choices[0].message.content")

// DefaultHTTPClient is the process-wide client used when none is injected.
var DefaultHTTPClient = sync.OnceValue(func() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
})

// Completer sends one prompt to a chat-completion endpoint.
type Completer interface {
	Complete(ctx context.Context, endpointURL, apiKey, model, prompt string) Result
}

// OpenRouterClient calls an OpenRouter-compatible chat-completion endpoint.
// It is safe for concurrent use; the underlying http.Client is shared.
type OpenRouterClient struct {
	httpClient *http.Client
}

// NewOpenRouterClient returns a client that sends requests through httpClient,
// or through DefaultHTTPClient when httpClient is nil.
func NewOpenRouterClient(httpClient *http.Client) *OpenRouterClient {
	if httpClient == nil {
		httpClient = DefaultHTTPClient()
	}
	return &OpenRouterClient{httpClient: httpClient}
}

// Complete posts prompt as a single user message and returns the first choice's
// content. Every failure is reported through the Result; nothing is retried.
func (c *OpenRouterClient) Complete(ctx context.Context, endpointURL, apiKey, model, prompt string) (result Result) {
	log := zerolog.Ctx(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("model", model).Msg("openrouter call panicked")
			metrics.AICalls.WithLabelValues(metrics.OutcomeUnexpected).Inc()
			result = Failed(fmt.Sprintf("%s%v", msgUnexpectedError, r))
		}
	}()

	if strings.TrimSpace(apiKey) == "" {
		log.Error().Msg("openrouter api key is not configured")
		metrics.AICalls.WithLabelValues(metrics.OutcomeNotConfigured).Inc()
		return Failed(MsgAPIKeyNotSet)
	}

	log.Info().Str("model", model).Msg("calling openrouter")

	body, err := json.Marshal(openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return c.unexpected(log, model, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointURL, bytes.NewReader(body))
	if err != nil {
		return c.unexpected(log, model, err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.AICallDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		log.Error().Err(err).Str("model", model).Str("url", endpointURL).Msg("openrouter transport error")
		metrics.AICalls.WithLabelValues(metrics.OutcomeTransportError).Inc()
		return Failed(msgTransportError + err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().Err(err).Str("model", model).Msg("reading openrouter response failed")
		metrics.AICalls.WithLabelValues(metrics.OutcomeTransportError).Inc()
		return Failed(msgTransportError + err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error().
			Int("status", resp.StatusCode).
			Str("body", string(raw)).
			Str("model", model).
			Msg("openrouter returned non-success status")
		metrics.AICalls.WithLabelValues(metrics.OutcomeHTTPError).Inc()
		return Failed(fmt.Sprintf(msgHTTPError, resp.StatusCode, string(raw)))
	}

	text, err := firstChoice(raw)
	if err != nil {
		log.Error().Err(err).Str("body", string(raw)).Str("model", model).Msg("openrouter response could not be parsed")
		metrics.AICalls.WithLabelValues(metrics.OutcomeParseError).Inc()
		return Failed(msgParseError + err.Error())
	}

	log.Info().Int("length", len(text)).Str("model", model).Msg("openrouter call succeeded")
	metrics.AICalls.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return Succeeded(text)
}

func (c *OpenRouterClient) unexpected(log *zerolog.Logger, model string, err error) Result {
	log.Error().Err(err).Str("model", model).Msg("unexpected error preparing openrouter call")
	metrics.AICalls.WithLabelValues(metrics.OutcomeUnexpected).Inc()
	return Failed(msgUnexpectedError + err.Error())
}

// firstChoice extracts choices[0].message.content. A missing or empty content
// is a shape mismatch and reported like a decode error.
func firstChoice(raw []byte) (string, error) {
	var completion openai.ChatCompletionResponse
	if err := json.Unmarshal(raw, &completion); err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", errNoChoices
	}
	return completion.Choices[0].Message.Content, nil
}
