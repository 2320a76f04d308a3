package llm

import (
	"context"
	"time"

	"github.com/abhisek/knowtest/internal/logger"
)

// LoggingProvider logs every request with its latency, token usage and
// estimated cost.
type LoggingProvider struct {
	inner    Provider
	provider string
	log      *logger.Logger
}

// WithLogging wraps p so each Generate call is logged.
func WithLogging(p Provider, provider string, log *logger.Logger) Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &LoggingProvider{inner: p, provider: provider, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	kv := []any{
		"provider", l.provider,
		"model", l.inner.ModelID(),
		"purpose", PurposeFrom(ctx),
		"latency_ms", time.Since(start).Milliseconds(),
		"messages", len(req.Messages),
	}
	if req.Schema != nil {
		kv = append(kv, "schema", req.Schema.Name)
	}

	if err != nil {
		l.log.Warn("llm request failed", append(kv, "error", err)...)
		return nil, err
	}

	kv = append(kv,
		"served_by", resp.Model,
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
		"stop_reason", resp.StopReason,
	)
	if cost := EstimateCost(resp.Model, resp.Usage); cost >= 0 {
		kv = append(kv, "cost_usd", cost)
	}
	l.log.Info("llm request", kv...)
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
