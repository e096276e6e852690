package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spmtutor/internal/content"
	"spmtutor/internal/drill"
	"spmtutor/internal/model"
	"spmtutor/internal/repository"
	"spmtutor/internal/util"
	"spmtutor/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// WeeklyResult 周检查点响应体
type WeeklyResult struct {
	CheckpointID string               `json:"checkpoint_id"`
	Data         *content.TaskContent `json:"data"`
	Done         bool                 `json:"done"`
}

type WeeklyService struct {
	WeeklyRepo *repository.WeeklyRepository
	UserRepo   *repository.UserRepository
	Generator  *GeneratorService
	Location   *time.Location
	Now        util.Clock
}

func NewWeeklyService(
	weeklyRepo *repository.WeeklyRepository,
	userRepo *repository.UserRepository,
	generator *GeneratorService,
	loc *time.Location,
) *WeeklyService {
	return &WeeklyService{
		WeeklyRepo: weeklyRepo,
		UserRepo:   userRepo,
		Generator:  generator,
		Location:   loc,
		Now:        time.Now,
	}
}

// Start 返回当天的检查点题目；已提交时返回反馈
func (s *WeeklyService) Start(ctx context.Context, userID uint) (*WeeklyResult, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUnauthorized
		}
		return nil, err
	}

	date := util.DateKey(s.Now(), s.Location)
	existing, err := s.WeeklyRepo.FindByDay(ctx, userID, date)
	if err == nil {
		return checkpointResult(existing), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	gctx := buildWeeklyContext(drill.StepWeeklyQuestion, user, "", "")
	gen, err := s.Generator.Generate(ctx, drill.StepWeeklyQuestion, gctx)
	if err != nil {
		return nil, util.Wrap(util.ErrGenerationFailed, err)
	}
	// 题干写回上下文，便于审计
	gctx.Content.Question = gen.Content.FirstPrompt(weeklyDefault)

	stored, err := s.WeeklyRepo.Insert(ctx, &model.WeeklyCheckpoint{
		UserID:        userID,
		Date:          date,
		Step:          drill.StepWeeklyQuestion,
		PromptContext: datatypes.NewJSONType(gctx),
		Question:      datatypes.NewJSONType(*gen.Content),
		Origin:        gen.Outcome.Origin(),
	})
	if err != nil {
		return nil, fmt.Errorf("store weekly checkpoint: %w", err)
	}
	return checkpointResult(stored), nil
}

// Submit 评估作答并关闭检查点；每个检查点只能提交一次
func (s *WeeklyService) Submit(ctx context.Context, userID uint, checkpointID, answer string) (*WeeklyResult, error) {
	checkpoint, err := s.WeeklyRepo.FindForUser(ctx, checkpointID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCheckpointNotFound
		}
		return nil, err
	}
	if checkpoint.Submitted() {
		return nil, util.ErrCheckpointSubmitted
	}

	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	question := checkpoint.Question.Data()
	gctx := buildWeeklyContext(drill.StepWeeklyCheckpoint, user, question.FirstPrompt(weeklyDefault), answer)
	gen, err := s.Generator.Generate(ctx, drill.StepWeeklyCheckpoint, gctx)
	if err != nil {
		return nil, util.Wrap(util.ErrGenerationFailed, err)
	}

	if err := s.WeeklyRepo.Submit(ctx, checkpoint.ID, answer, gen.Content); err != nil {
		if errors.Is(err, repository.ErrStaleStep) {
			return nil, util.Wrap(util.ErrCheckpointSubmitted, err)
		}
		return nil, fmt.Errorf("submit weekly checkpoint: %w", err)
	}

	logger.Log.Info("Weekly checkpoint submitted",
		zap.String("checkpoint_id", checkpoint.ID),
		zap.Int("words", util.WordCount(answer)),
		zap.String("outcome", string(gen.Outcome)))

	return &WeeklyResult{CheckpointID: checkpoint.ID, Data: gen.Content, Done: true}, nil
}

func checkpointResult(w *model.WeeklyCheckpoint) *WeeklyResult {
	if w.Submitted() {
		return &WeeklyResult{CheckpointID: w.ID, Data: w.Feedback.Data(), Done: true}
	}
	question := w.Question.Data()
	return &WeeklyResult{CheckpointID: w.ID, Data: &question, Done: false}
}
