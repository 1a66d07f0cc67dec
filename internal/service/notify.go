package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (j jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (j jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// HTTPDoer is the subset of http.Client the notifier needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// WebhookNotifierOptions configures a WebhookNotifier.
type WebhookNotifierOptions struct {
	// URL receives the POSTed JSON payload.
	URL string
	// BodyExpr optionally reshapes the payload with a JMESPath expression
	// before sending. Empty sends the payload as-is.
	BodyExpr string
	Headers  map[string]string
	Client   HTTPDoer
	Timeout  time.Duration
	// Evaluator defaults to the library implementation.
	Evaluator JMESPathEvaluator
}

// WebhookNotifier delivers notification payloads to a subscribed HTTP
// endpoint. Payloads are marshalled to JSON; a non-2xx response is an error.
type WebhookNotifier struct {
	url      string
	bodyExpr string
	headers  map[string]string
	client   HTTPDoer
	jems     JMESPathEvaluator
}

// NewWebhookNotifier constructs and validates a notifier.
func NewWebhookNotifier(opts WebhookNotifierOptions) (*WebhookNotifier, error) {
	u, err := url.Parse(opts.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid webhook URL %q", opts.URL)
	}

	jems := opts.Evaluator
	if jems == nil {
		jems = jmespathLibEvaluator{}
	}
	if exprErr := jems.Validate(opts.BodyExpr); exprErr != nil {
		return nil, fmt.Errorf("invalid body JMESPath: %w", exprErr)
	}

	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &WebhookNotifier{
		url:      opts.URL,
		bodyExpr: strings.TrimSpace(opts.BodyExpr),
		headers:  opts.Headers,
		client:   client,
		jems:     jems,
	}, nil
}

// Notify posts the payload to the configured endpoint.
func (n *WebhookNotifier) Notify(ctx context.Context, payload any) error {
	body, err := n.buildBody(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range n.headers {
		req.Header.Set(k, v)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver webhook: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

func (n *WebhookNotifier) buildBody(payload any) ([]byte, error) {
	if n.bodyExpr == "" {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal webhook payload: %w", err)
		}
		return b, nil
	}

	// JMESPath operates on generic maps, so round-trip the payload first.
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal webhook payload: %w", err)
	}
	var generic any
	if unmarshalErr := json.Unmarshal(raw, &generic); unmarshalErr != nil {
		return nil, fmt.Errorf("reshape webhook payload: %w", unmarshalErr)
	}

	shaped, err := n.jems.Evaluate(n.bodyExpr, generic)
	if err != nil {
		return nil, fmt.Errorf("evaluate body JMESPath: %w", err)
	}
	if shaped == nil {
		return nil, errors.New("body JMESPath produced no result")
	}

	b, err := json.Marshal(shaped)
	if err != nil {
		return nil, fmt.Errorf("marshal reshaped payload: %w", err)
	}
	return b, nil
}
