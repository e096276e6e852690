package llm

import (
	"context"
	"time"

	"spmtutor/pkg/logger"
	"spmtutor/pkg/monitoring"

	"go.uber.org/zap"
)

// LoggingProvider logs every provider call and feeds the llm metrics.
type LoggingProvider struct {
	inner Provider
}

func WithLogging(p Provider) Provider {
	return &LoggingProvider{inner: p}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	model := l.inner.ModelID()
	fields := []zap.Field{
		zap.String("model", model),
		zap.String("purpose", purpose),
		zap.Duration("latency", time.Since(start)),
		zap.Bool("success", err == nil),
	}

	status := "ok"
	if err != nil {
		status = "error"
		fields = append(fields, zap.Error(err))
	}
	if resp != nil {
		if resp.Model != "" {
			model = resp.Model
		}
		fields = append(fields,
			zap.Int("input_tokens", resp.Usage.InputTokens),
			zap.Int("output_tokens", resp.Usage.OutputTokens),
			zap.String("stop_reason", resp.StopReason),
		)
		monitoring.LLMTokenCounter.WithLabelValues(model, "input").Add(float64(resp.Usage.InputTokens))
		monitoring.LLMTokenCounter.WithLabelValues(model, "output").Add(float64(resp.Usage.OutputTokens))
	}
	monitoring.LLMRequestCounter.WithLabelValues(model, purpose, status).Inc()

	if err != nil {
		logger.Log.Warn("llm request failed", fields...)
	} else {
		logger.Log.Debug("llm request", fields...)
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
