package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"spmtutor/internal/content"
	"spmtutor/internal/llm"
	"spmtutor/internal/model"
	"spmtutor/internal/repository"
	"spmtutor/internal/util"
	"spmtutor/pkg/logger"
	"spmtutor/pkg/monitoring"

	"go.uber.org/zap"
)

const (
	chatMode           = "chat"
	chatTemperature    = 0.3
	minQuestionRunes   = 2
	defaultHistorySize = 20
	maxHistorySize     = 100
)

// ChatService AI 导师问答；模型异常或输出不合规时返回兜底回答
type ChatService struct {
	provider  llm.Provider
	ChatRepo  *repository.ChatRepository
	Limiter   AskLimiter
	MaxTokens int
	Timeout   time.Duration
}

func NewChatService(provider llm.Provider, repo *repository.ChatRepository, limiter AskLimiter, timeout time.Duration) *ChatService {
	return &ChatService{
		provider:  provider,
		ChatRepo:  repo,
		Limiter:   limiter,
		MaxTokens: 600,
		Timeout:   timeout,
	}
}

func (s *ChatService) Ask(ctx context.Context, userID uint, question string) (*content.ChatReply, error) {
	question = strings.TrimSpace(question)
	if len([]rune(question)) < minQuestionRunes {
		monitoring.ObserveGeneration(chatMode, string(OutcomeShortCircuit), 0)
		return content.ChatFallback(""), nil
	}

	if s.Limiter != nil {
		ok, err := s.Limiter.Allow(ctx, strconv.FormatUint(uint64(userID), 10))
		if err != nil {
			// 限流存储不可用时放行
			logger.Log.Warn("Ask limiter unavailable", zap.Error(err))
		} else if !ok {
			return nil, util.ErrTooManyRequests
		}
	}

	start := time.Now()
	reply, outcome := s.answer(ctx, question)
	monitoring.ObserveGeneration(chatMode, string(outcome), time.Since(start))

	err := s.ChatRepo.Create(ctx, &model.ChatMessage{
		UserID:          userID,
		Question:        question,
		Answer:          reply.Answer,
		EnglishQuestion: reply.EnglishQuestion,
		QuickTip:        reply.QuickTip,
		Origin:          outcome.Origin(),
	})
	if err != nil {
		logger.Log.Error("Failed to store chat message", zap.Uint("user_id", userID), zap.Error(err))
	}
	return reply, nil
}

func (s *ChatService) answer(ctx context.Context, question string) (*content.ChatReply, Outcome) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, chatMode)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      chatSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: question}},
		Schema:      content.ChatSchema,
		MaxTokens:   s.MaxTokens,
		Temperature: chatTemperature,
	})
	if err != nil {
		logger.Log.Warn("Chat model call failed, serving fallback", zap.Error(err))
		return content.ChatFallback(question), OutcomeFallback
	}

	reply, err := content.ValidateChat(resp.Content)
	if err != nil {
		logger.Log.Warn("Chat reply failed validation, serving fallback", zap.Error(err))
		return content.ChatFallback(question), OutcomeFallback
	}
	return reply, OutcomeGenerated
}

func (s *ChatService) History(ctx context.Context, userID uint, limit int) ([]model.ChatMessage, error) {
	if limit <= 0 {
		limit = defaultHistorySize
	}
	limit = min(limit, maxHistorySize)
	return s.ChatRepo.History(ctx, userID, limit)
}
