package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"spmtutor/internal/content"
	"spmtutor/internal/drill"
	"spmtutor/internal/llm"
	"spmtutor/internal/model"
	"spmtutor/internal/util"
	"spmtutor/pkg/logger"
	"spmtutor/pkg/monitoring"
	"spmtutor/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ErrTransport 模型不可达、限流重试耗尽或超时；对外映射为 502 generation_failed
var ErrTransport = errors.New("content generation transport failure")

// Outcome 标记生成结果来源
type Outcome string

const (
	OutcomeGenerated    Outcome = "generated"
	OutcomeRepaired     Outcome = "repaired"
	OutcomeFallback     Outcome = "fallback"
	OutcomeShortCircuit Outcome = "short_circuit"
)

// Origin 映射为持久化的来源字段
func (o Outcome) Origin() string {
	switch o {
	case OutcomeGenerated:
		return model.OriginGenerated
	case OutcomeRepaired:
		return model.OriginRepaired
	}
	return model.OriginFallback
}

// Generation 一次生成的结果，Content 一定已通过校验
type Generation struct {
	Content *content.TaskContent
	Outcome Outcome
}

type GeneratorConfig struct {
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// GeneratorService 调用模型生成练习内容：校验 → 修复重试一次 → 兜底
type GeneratorService struct {
	provider llm.Provider
	cfg      GeneratorConfig
}

func NewGeneratorService(provider llm.Provider, cfg GeneratorConfig) *GeneratorService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1200
	}
	return &GeneratorService{provider: provider, cfg: cfg}
}

// Generate 生成 step 对应的内容。只有传输失败会返回错误（包装 ErrTransport）。
func (s *GeneratorService) Generate(ctx context.Context, step drill.Step, gctx content.Context) (*Generation, error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "generator.generate", attribute.String("mode", string(step)))

	gen, err := s.generate(ctx, step, gctx)

	outcome := "transport_error"
	if err == nil {
		outcome = string(gen.Outcome)
	}
	span.SetAttributes(attribute.String("outcome", outcome))
	tracing.EndSpan(span, err)
	monitoring.ObserveGeneration(string(step), outcome, time.Since(start))

	return gen, err
}

func (s *GeneratorService) generate(ctx context.Context, step drill.Step, gctx content.Context) (*Generation, error) {
	theme := gctx.TodayFocus.Theme

	if step.Grades() && util.IsEmptyOrNonsense(gctx.Content.StudentAnswer) {
		return &Generation{Content: content.Fallback(theme), Outcome: OutcomeShortCircuit}, nil
	}

	userMsg, err := json.Marshal(gctx)
	if err != nil {
		return nil, fmt.Errorf("encode generation context: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()
	ctx = llm.WithPurpose(ctx, "drill:"+string(step))

	task, err := s.attempt(ctx, step, string(userMsg), "")
	if err == nil {
		return &Generation{Content: task, Outcome: OutcomeGenerated}, nil
	}
	if !llm.IsContentError(err) {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	logger.Log.Warn("Model output failed validation, retrying with repair note",
		zap.String("mode", string(step)), zap.Error(err))

	task, err = s.attempt(ctx, step, string(userMsg), repairNote)
	if err == nil {
		return &Generation{Content: task, Outcome: OutcomeRepaired}, nil
	}
	if !llm.IsContentError(err) {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	logger.Log.Warn("Repair attempt failed validation, serving fallback",
		zap.String("mode", string(step)), zap.Error(err))

	return &Generation{Content: content.Fallback(theme), Outcome: OutcomeFallback}, nil
}

func (s *GeneratorService) attempt(ctx context.Context, step drill.Step, userMsg, note string) (*content.TaskContent, error) {
	system := systemPrompt + "\n\n" + developerPrompt(step)
	if note != "" {
		system += "\n\n" + note
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: userMsg}},
		Schema:      content.TaskSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, err
	}
	return content.Validate(resp.Content)
}
