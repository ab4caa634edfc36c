package completion

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"rfpapi/internal/config"
)

// OpenAI implements Completer against the OpenAI chat completions API.
// The HTTP client carries its own timeout so a hung upstream cannot pin a
// request forever; outbound calls are traced via otelhttp.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates a completion client from config. BaseURL, when set,
// overrides the default API endpoint (proxies, tests).
func NewOpenAI(cfg config.OpenAIConfig) *OpenAI {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{
		Timeout:   time.Duration(cfg.TimeoutSec) * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	return &OpenAI{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

var _ Completer = (*OpenAI)(nil)

// Complete sends the prompt pair and returns the first choice's content.
// Deadline overruns, whether from the request context or the client timeout,
// surface as ErrTimeout.
func (o *OpenAI) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
