package textgen

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-analyzer/internal/platform/logging"
	"github.com/riskibarqy/match-analyzer/internal/platform/resilience"
	"github.com/riskibarqy/match-analyzer/internal/usecase"
	"github.com/valyala/fasthttp"
)

const (
	defaultBaseURL = "https://ai.gateway.lovable.dev/v1"
	defaultModel   = "google/gemini-2.5-flash"
	defaultTimeout = 60 * time.Second
	maxBodyBytes   = 2 << 20
)

var errGatewayTransient = crerr.New("text generation transient failure")

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	APIKey         string
	Model          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to an OpenAI-compatible chat completion endpoint.
type Client struct {
	httpClient *fasthttp.Client
	endpoint   string
	apiKey     string
	model      string
	timeout    time.Duration
	maxRetries int
	logger     *logging.Logger
	breaker    *resilience.Breaker
	marshal    func(any) ([]byte, error)
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "match-analyzer",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxBodyBytes,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	return &Client{
		httpClient: httpClient,
		endpoint:   baseURL + "/chat/completions",
		apiKey:     strings.TrimSpace(cfg.APIKey),
		model:      model,
		timeout:    timeout,
		maxRetries: max(cfg.MaxRetries, 0),
		logger:     logger,
		marshal:    sonic.Marshal,
		breaker: resilience.NewBreaker("text-generation", cfg.CircuitBreaker).OnTransition(func(name string, from, to resilience.CircuitState) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", string(from), "to", string(to))
		}),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate writes a narrative for the match context.
func (c *Client) Generate(ctx context.Context, mc usecase.MatchContext) (string, error) {
	body, err := c.marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildUserPrompt(mc)},
		},
	})
	if err != nil {
		return "", crerr.Wrap(err, "marshal chat request")
	}

	// Every admitted request must reach Done, so nothing may return between
	// Allow and post.
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "text generation circuit breaker rejected request", "state", c.breaker.State())
		return "", fmt.Errorf("%w: text generation is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	raw, err := c.post(ctx, body)
	c.breaker.Done(err != nil && stderrors.Is(err, errGatewayTransient))
	if err != nil {
		return "", err
	}

	var decoded chatResponse
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("%w: decode chat response: %v", usecase.ErrDependencyUnavailable, err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("%w: chat response has no choices", usecase.ErrDependencyUnavailable)
	}
	return strings.TrimSpace(decoded.Choices[0].Message.Content), nil
}

func (c *Client) post(ctx context.Context, body []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, status, err := c.do(ctx, body)
		switch {
		case err != nil:
			lastErr = fmt.Errorf("%w: %w: send request: %v", usecase.ErrDependencyUnavailable, errGatewayTransient, err)
		case status >= 200 && status < 300:
			return raw, nil
		case status == fasthttp.StatusTooManyRequests:
			return nil, fmt.Errorf("%w: gateway status=%d", usecase.ErrRateLimited, status)
		case status == fasthttp.StatusPaymentRequired:
			return nil, fmt.Errorf("%w: gateway status=%d", usecase.ErrQuotaExhausted, status)
		case status >= fasthttp.StatusInternalServerError:
			lastErr = fmt.Errorf("%w: %w: gateway status=%d body=%s", usecase.ErrDependencyUnavailable, errGatewayTransient, status, abbreviateBody(raw))
		default:
			return nil, fmt.Errorf("%w: gateway status=%d body=%s", usecase.ErrDependencyUnavailable, status, abbreviateBody(raw))
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * time.Second)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "text generation request failed", "endpoint", c.endpoint, "model", c.model, "error", lastErr)
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, body []byte) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.SetBodyRaw(body)

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return nil, 0, err
	}

	raw := append([]byte(nil), resp.Body()...)
	return raw, resp.StatusCode(), nil
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
