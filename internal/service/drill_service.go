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

// StepResult 是 start / next 的响应体
type StepResult struct {
	SessionID string               `json:"session_id"`
	Step      drill.Step           `json:"step,omitempty"`
	Data      *content.TaskContent `json:"data,omitempty"`
	Done      bool                 `json:"done"`
}

// DrillService 驱动每日写作 / 词汇练习的步骤流转
type DrillService struct {
	Kind      drill.Kind
	DrillRepo *repository.DrillRepository
	UserRepo  *repository.UserRepository
	Generator *GeneratorService
	Location  *time.Location
	Now       util.Clock
}

func NewDrillService(
	kind drill.Kind,
	drillRepo *repository.DrillRepository,
	userRepo *repository.UserRepository,
	generator *GeneratorService,
	loc *time.Location,
) *DrillService {
	return &DrillService{
		Kind:      kind,
		DrillRepo: drillRepo,
		UserRepo:  userRepo,
		Generator: generator,
		Location:  loc,
		Now:       time.Now,
	}
}

func (s *DrillService) newSession(userID uint, now time.Time) (*model.DrillSession, error) {
	first, err := drill.First(s.Kind)
	if err != nil {
		return nil, err
	}
	session := &model.DrillSession{
		UserID:      userID,
		Kind:        s.Kind,
		Date:        util.DateKey(now, s.Location),
		CurrentStep: first,
	}
	switch s.Kind {
	case drill.KindVocab:
		word := WordForDay(now.In(s.Location))
		session.TodayFocus = datatypes.NewJSONType(vocabFocus(word))
		session.TaskContent = datatypes.NewJSONType(vocabMaterial(word))
	default:
		session.TodayFocus = datatypes.NewJSONType(writingFocus)
		session.TaskContent = datatypes.NewJSONType(writingMaterial())
	}
	return session, nil
}

// Start 返回当天 session 的当前步骤；已有待作答内容时原样返回，不重新生成
func (s *DrillService) Start(ctx context.Context, userID uint) (*StepResult, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUnauthorized
		}
		return nil, err
	}

	fresh, err := s.newSession(userID, s.Now())
	if err != nil {
		return nil, err
	}
	session, created, err := s.DrillRepo.FindOrCreateSession(ctx, fresh)
	if err != nil {
		return nil, fmt.Errorf("find or create %s session: %w", s.Kind, err)
	}
	if created {
		logger.Log.Info("Drill session created",
			zap.String("session_id", session.ID),
			zap.String("kind", string(s.Kind)),
			zap.Uint("user_id", userID))
	}

	if session.Done() {
		return &StepResult{SessionID: session.ID, Done: true}, nil
	}

	step := session.CurrentStep
	pending, err := s.DrillRepo.FindResponse(ctx, session.ID, step)
	if err == nil {
		return s.result(session.ID, step, pending.Content.Data()), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	gctx := buildDrillContext(step, s.Kind, user, session, "")
	gen, err := s.Generator.Generate(ctx, step, gctx)
	if err != nil {
		return nil, util.Wrap(util.ErrGenerationFailed, err)
	}

	stored, err := s.DrillRepo.InsertResponse(ctx, &model.StepResponse{
		SessionID:     session.ID,
		Step:          step,
		PromptContext: datatypes.NewJSONType(gctx),
		Content:       datatypes.NewJSONType(*gen.Content),
		Origin:        gen.Outcome.Origin(),
	})
	if err != nil {
		return nil, fmt.Errorf("store %s response: %w", step, err)
	}
	return s.result(session.ID, step, stored.Content.Data()), nil
}

// Advance 提交当前步骤的作答并推进到下一步
func (s *DrillService) Advance(ctx context.Context, userID uint, sessionID string, step drill.Step, answer string) (*StepResult, error) {
	session, err := s.DrillRepo.FindSession(ctx, sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}
	if session.CurrentStep != step {
		return nil, util.ErrStepMismatch
	}

	// 当前步骤的内容必须已经下发过
	if _, err := s.DrillRepo.FindResponse(ctx, session.ID, step); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidState
		}
		return nil, err
	}

	var coreAnswer *string
	if step == drill.StepCoreDrill {
		coreAnswer = &answer
	}

	next, err := drill.Next(s.Kind, step)
	if err != nil {
		// done 或不属于本练习的 step
		return nil, util.Wrap(util.ErrStepMismatch, err)
	}

	if next == drill.StepDone {
		err := s.DrillRepo.CommitAdvance(ctx, repository.Advance{
			SessionID:  session.ID,
			From:       step,
			To:         drill.StepDone,
			Answer:     answer,
			CoreAnswer: coreAnswer,
		})
		if err != nil {
			return nil, s.commitError(err)
		}
		logger.Log.Info("Drill session completed",
			zap.String("session_id", session.ID),
			zap.String("kind", string(s.Kind)))
		return &StepResult{SessionID: session.ID, Done: true}, nil
	}

	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// feedback 评估的是 core_drill 阶段的作答
	contextAnswer := answer
	if next == drill.StepFeedback {
		contextAnswer = ""
		if coreAnswer != nil {
			contextAnswer = *coreAnswer
		} else if session.CoreAnswer != nil {
			contextAnswer = *session.CoreAnswer
		}
	}
	if s.Kind == drill.KindVocab {
		contextAnswer = ""
	}

	gctx := buildDrillContext(next, s.Kind, user, session, contextAnswer)
	gen, err := s.Generator.Generate(ctx, next, gctx)
	if err != nil {
		return nil, util.Wrap(util.ErrGenerationFailed, err)
	}

	err = s.DrillRepo.CommitAdvance(ctx, repository.Advance{
		SessionID:  session.ID,
		From:       step,
		To:         next,
		Answer:     answer,
		CoreAnswer: coreAnswer,
		Next: &model.StepResponse{
			SessionID:     session.ID,
			Step:          next,
			PromptContext: datatypes.NewJSONType(gctx),
			Content:       datatypes.NewJSONType(*gen.Content),
			Origin:        gen.Outcome.Origin(),
		},
	})
	if err != nil {
		return nil, s.commitError(err)
	}

	return s.result(session.ID, next, *gen.Content), nil
}

func (s *DrillService) commitError(err error) error {
	if errors.Is(err, repository.ErrStaleStep) {
		return util.Wrap(util.ErrStepMismatch, err)
	}
	if errors.Is(err, repository.ErrNoPendingResponse) {
		return util.Wrap(util.ErrInvalidState, err)
	}
	return fmt.Errorf("commit %s advance: %w", s.Kind, err)
}

// result 写作练习在最后一步时 done=true（客户端据此展示结束按钮），词汇练习恒为 false
func (s *DrillService) result(sessionID string, step drill.Step, data content.TaskContent) *StepResult {
	return &StepResult{
		SessionID: sessionID,
		Step:      step,
		Data:      &data,
		Done:      s.Kind == drill.KindWriting && drill.IsLast(s.Kind, step),
	}
}
