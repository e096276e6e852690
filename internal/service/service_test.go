package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"spmtutor/internal/drill"
	"spmtutor/internal/llm"
	"spmtutor/internal/model"
	"spmtutor/internal/repository"
	"spmtutor/internal/testutil"
	"spmtutor/internal/util"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// taskJSON 一份合法的任务输出，title 用于区分不同步骤
func taskJSON(title string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{
  "title": %q,
  "instructions": "Follow the prompt.",
  "task_type": "rewrite",
  "items": [{"id": "q1", "prompt": "Upgrade: Technology is important in our life.", "choices": [], "answer_key": "", "hints": ["Add an example."]}],
  "student_action": {"expected_input": "text", "max_words": 30},
  "feedback": {"what_you_did_well": [], "fix_this_next": [], "band_lift_sentence": "", "why_it_works_simple": []},
  "score": {"spm_power_gain": 1, "estimated_band_delta": 0.1, "skill_tags": ["paraphrasing"]},
  "spaced_repetition_update": {"add": [], "review_next": []},
  "next_question": "Try one more sentence."
}`, title))
}

func ok(title string) llm.MockResponse {
	return llm.MockResponse{Content: taskJSON(title)}
}

func invalid() llm.MockResponse {
	return llm.MockResponse{Content: json.RawMessage(`{"title": "missing everything"}`)}
}

func unavailable() llm.MockResponse {
	return llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("connection refused")}}
}

type drillFixture struct {
	db       *gorm.DB
	provider *llm.MockProvider
	service  *DrillService
	user     *model.User
}

func newDrillFixture(t *testing.T, kind drill.Kind) *drillFixture {
	t.Helper()
	db := testutil.NewDB(t)
	provider := llm.NewMockProvider()
	gen := NewGeneratorService(provider, GeneratorConfig{Temperature: 0.3})

	svc := NewDrillService(kind, repository.NewDrillRepository(db), repository.NewUserRepository(db), gen, time.UTC)
	svc.Now = util.FixedClock(testNow)

	user := testutil.SeedUser(t, db, model.User{Form: 4, EstimatedBand: 4.5})
	return &drillFixture{db: db, provider: provider, service: svc, user: user}
}

func (f *drillFixture) responses(t *testing.T, sessionID string) []model.StepResponse {
	t.Helper()
	list, err := f.service.DrillRepo.ListResponses(t.Context(), sessionID)
	require.NoError(t, err)
	return list
}

func (f *drillFixture) session(t *testing.T, sessionID string) *model.DrillSession {
	t.Helper()
	s, err := f.service.DrillRepo.FindSession(t.Context(), sessionID, f.user.ID)
	require.NoError(t, err)
	return s
}

// lastContext 解析最近一次模型调用的用户消息
func lastContext(t *testing.T, p *llm.MockProvider) map[string]any {
	t.Helper()
	call, found := p.LastCall()
	require.True(t, found)
	require.Len(t, call.Messages, 1)
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(call.Messages[0].Content), &m))
	return m
}
