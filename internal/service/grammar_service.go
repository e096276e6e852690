package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"spmtutor/internal/grammar"
	"spmtutor/internal/model"
	"spmtutor/internal/repository"
	"spmtutor/internal/util"
	"spmtutor/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const stateFinished = "finished"

// GrammarNextRequest 语法练习的一次操作
type GrammarNextRequest struct {
	SessionID      string `json:"session_id" binding:"required"`
	Action         string `json:"action" binding:"required"`
	SelectedOption string `json:"selected_option"`
	RewriteText    string `json:"rewrite_text"`
	HintUsed       bool   `json:"hint_used"`
}

type GrammarQuestionResult struct {
	SessionID string `json:"session_id"`
	Done      bool   `json:"done"`
	*grammar.QuestionView
}

type GrammarOptionResult struct {
	SessionID string `json:"session_id"`
	Done      bool   `json:"done"`
	*grammar.OptionView
}

type GrammarRewriteResult struct {
	SessionID string `json:"session_id"`
	Done      bool   `json:"done"`
	*grammar.RewriteView
}

type GrammarFinishedResult struct {
	SessionID string          `json:"session_id"`
	Done      bool            `json:"done"`
	State     string          `json:"state"`
	Summary   grammar.Summary `json:"summary"`
}

// GrammarService 语法填空练习，完全本地判分
type GrammarService struct {
	GrammarRepo *repository.GrammarRepository
	Location    *time.Location
	Now         util.Clock
}

func NewGrammarService(repo *repository.GrammarRepository, loc *time.Location) *GrammarService {
	return &GrammarService{GrammarRepo: repo, Location: loc, Now: time.Now}
}

func (s *GrammarService) Start(ctx context.Context, userID uint) (interface{}, error) {
	now := s.Now()
	state := grammar.NewState(grammar.PickSet(now.In(s.Location)))
	session, created, err := s.GrammarRepo.FindOrCreateSession(ctx, &model.GrammarSession{
		UserID: userID,
		Date:   util.DateKey(now, s.Location),
		Phase:  state.Phase,
		State:  datatypes.NewJSONType(state),
	})
	if err != nil {
		return nil, fmt.Errorf("find or create grammar session: %w", err)
	}
	if created {
		logger.Log.Info("Grammar session created",
			zap.String("session_id", session.ID),
			zap.String("passage_id", state.PassageID),
			zap.Uint("user_id", userID))
	}

	state = session.State.Data()
	if state.Done() {
		return finished(session.ID, &state), nil
	}

	view, err := state.CurrentQuestion()
	if err != nil {
		return nil, mapGrammarError(err)
	}
	result := &GrammarQuestionResult{SessionID: session.ID, QuestionView: view}
	s.audit(ctx, session.ID, string(grammar.PhaseQuestionActive), map[string]string{"state": "question_active"}, result, "")
	return result, nil
}

func (s *GrammarService) Next(ctx context.Context, userID uint, req GrammarNextRequest) (interface{}, error) {
	session, err := s.GrammarRepo.FindSession(ctx, req.SessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}

	state := session.State.Data()
	if state.Done() {
		return nil, util.ErrSessionFinished
	}

	action, err := grammar.ParseAction(req.Action)
	if err != nil {
		return nil, mapGrammarError(err)
	}

	var (
		result        interface{}
		studentAnswer string
	)
	switch action {
	case grammar.ActionAnswerOption:
		view, err := state.AnswerOption(req.SelectedOption, req.HintUsed)
		if err != nil {
			return nil, mapGrammarError(err)
		}
		result = &GrammarOptionResult{SessionID: session.ID, OptionView: view}
		studentAnswer = req.SelectedOption

	case grammar.ActionSubmitRewrite:
		view, err := state.SubmitRewrite(req.RewriteText)
		if err != nil {
			return nil, mapGrammarError(err)
		}
		result = &GrammarRewriteResult{SessionID: session.ID, RewriteView: view}
		studentAnswer = req.RewriteText

	case grammar.ActionNextQuestion:
		done, err := state.NextQuestion()
		if err != nil {
			return nil, mapGrammarError(err)
		}
		if done {
			result = finished(session.ID, &state)
		} else {
			view, err := state.CurrentQuestion()
			if err != nil {
				return nil, mapGrammarError(err)
			}
			result = &GrammarQuestionResult{SessionID: session.ID, QuestionView: view}
		}
	}

	request, err := auditJSON(req)
	if err != nil {
		return nil, err
	}
	payload, err := auditJSON(result)
	if err != nil {
		return nil, err
	}
	session.State = datatypes.NewJSONType(state)
	err = s.GrammarRepo.SaveState(ctx, session, &model.GrammarResponse{
		Step:          string(action),
		Request:       request,
		Payload:       payload,
		StudentAnswer: studentAnswer,
	})
	if err != nil {
		if errors.Is(err, repository.ErrStaleVersion) {
			return nil, util.Wrap(util.ErrConcurrentUpdate, err)
		}
		return nil, fmt.Errorf("save grammar state: %w", err)
	}

	if state.Done() {
		sum := state.Summary()
		logger.Log.Info("Grammar session finished",
			zap.String("session_id", session.ID),
			zap.Int("accuracy", sum.AccuracyPercent),
			zap.Int("stars", sum.Stars))
	}
	return result, nil
}

// audit 失败只记日志，不影响主流程
func (s *GrammarService) audit(ctx context.Context, sessionID, step string, request, payload interface{}, answer string) {
	if err := s.appendAudit(ctx, sessionID, step, request, payload, answer); err != nil {
		logger.Log.Warn("Failed to append grammar audit", zap.String("session_id", sessionID), zap.Error(err))
	}
}

func (s *GrammarService) appendAudit(ctx context.Context, sessionID, step string, request, payload interface{}, answer string) error {
	reqJSON, err := auditJSON(request)
	if err != nil {
		return err
	}
	payloadJSON, err := auditJSON(payload)
	if err != nil {
		return err
	}
	return s.GrammarRepo.AppendAudit(ctx, &model.GrammarResponse{
		SessionID:     sessionID,
		Step:          step,
		Request:       reqJSON,
		Payload:       payloadJSON,
		StudentAnswer: answer,
	})
}

func auditJSON(v interface{}) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode grammar audit: %w", err)
	}
	return datatypes.JSON(b), nil
}

func finished(sessionID string, state *grammar.State) *GrammarFinishedResult {
	return &GrammarFinishedResult{
		SessionID: sessionID,
		Done:      true,
		State:     stateFinished,
		Summary:   state.Summary(),
	}
}

func mapGrammarError(err error) error {
	switch {
	case errors.Is(err, grammar.ErrSessionFinished):
		return util.ErrSessionFinished
	case errors.Is(err, grammar.ErrAnswerOptionFirst):
		return util.ErrAnswerOptionFirst
	case errors.Is(err, grammar.ErrRewriteFirst):
		return util.ErrRewriteFirst
	case errors.Is(err, grammar.ErrMissingOption):
		return util.ErrMissingOption
	case errors.Is(err, grammar.ErrMissingRewrite):
		return util.ErrMissingRewrite
	case errors.Is(err, grammar.ErrInvalidAction):
		return util.Wrap(util.ErrInvalidAction, err)
	case errors.Is(err, grammar.ErrCorruptState):
		return util.Wrap(util.ErrInvalidState, err)
	}
	return err
}
