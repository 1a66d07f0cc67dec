package config

import (
	"strings"
	"time"
)

// WebhookConfig configures delivery of urgent blood requests to external
// HTTP endpoints.
type WebhookConfig struct {
	// URLs lists the endpoints urgent requests are POSTed to. Empty
	// disables broadcasting.
	URLs []string `env:"URLS" envSeparator:"," envDefault:""`

	// BodyExpr is an optional JMESPath expression reshaping the request
	// payload before delivery (e.g. for chat webhooks expecting {text}).
	BodyExpr string `env:"BODY_EXPR" envDefault:""`

	// Timeout bounds each delivery attempt.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to webhook configuration values.
func (w *WebhookConfig) Sanitize() {
	urls := w.URLs[:0]
	for _, u := range w.URLs {
		if trimmed := strings.TrimSpace(u); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	w.URLs = urls
	if w.Timeout <= 0 {
		w.Timeout = 10 * time.Second
	}
}
