package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spmtutor/internal/config"
	"spmtutor/internal/llm"
	"spmtutor/internal/model"
	"spmtutor/internal/testutil"
	"spmtutor/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "app-test-secret"

func taskResponse(title string) llm.MockResponse {
	return llm.MockResponse{Content: json.RawMessage(fmt.Sprintf(`{
  "title": %q,
  "instructions": "Follow the prompt.",
  "task_type": "rewrite",
  "items": [{"id": "q1", "prompt": "Upgrade: Technology is important in our life.", "choices": [], "answer_key": "", "hints": ["Add an example."]}],
  "student_action": {"expected_input": "text", "max_words": 30},
  "feedback": {"what_you_did_well": [], "fix_this_next": [], "band_lift_sentence": "", "why_it_works_simple": []},
  "score": {"spm_power_gain": 1, "estimated_band_delta": 0.1, "skill_tags": ["paraphrasing"]},
  "spaced_repetition_update": {"add": [], "review_next": []},
  "next_question": "Try one more sentence."
}`, title))}
}

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Port: "0", Mode: "test", Timezone: "UTC"},
		JWT:       config.JWTConfig{Secret: testSecret, ExpireTime: time.Hour},
		AI:        config.AIConfig{Provider: "mock", Temperature: 0.3, MaxTokens: 1200, TimeoutSeconds: 5, RetryAttempts: 1},
		Chat:      config.ChatConfig{CooldownSeconds: 0},
		RateLimit: config.RateLimitConfig{MaxRequests: 1000, WindowMinutes: 1},
	}
}

type testServer struct {
	app      *App
	db       *gorm.DB
	provider *llm.MockProvider
}

func newTestServer(t *testing.T, responses ...llm.MockResponse) *testServer {
	t.Helper()
	db := testutil.NewDB(t)
	provider := llm.NewMockProvider(responses...)
	a := New(testConfig(), db, nil, provider)
	t.Cleanup(a.cancel)
	return &testServer{app: a, db: db, provider: provider}
}

func (s *testServer) token(t *testing.T, user *model.User) string {
	t.Helper()
	token, err := util.GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.app.Router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, map[string]any{"database": "up"}, body["components"])
}

func TestMe(t *testing.T) {
	s := newTestServer(t)
	user := testutil.SeedUser(t, s.db, model.User{Name: "Aina", Form: 5})

	w := s.do(t, http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/me", s.token(t, user), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Aina", body["name"])
	assert.Equal(t, "student", body["role"])

	require.NoError(t, s.db.Delete(&model.User{}, user.ID).Error)
	w = s.do(t, http.MethodGet, "/api/me", s.token(t, user), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTrainingFlow(t *testing.T) {
	s := newTestServer(t, taskResponse("Warm-up"), taskResponse("Core drill"))
	user := testutil.SeedUser(t, s.db, model.User{})
	token := s.token(t, user)

	w := s.do(t, http.MethodPost, "/api/training/start", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	start := decode(t, w)
	assert.Equal(t, "warmup", start["step"])
	assert.Equal(t, false, start["done"])
	sessionID, _ := start["session_id"].(string)
	require.NotEmpty(t, sessionID)

	// 重复 start 不会再次调用模型
	w = s.do(t, http.MethodPost, "/api/training/start", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, sessionID, decode(t, w)["session_id"])
	assert.Equal(t, 1, s.provider.CallCount())

	w = s.do(t, http.MethodPost, "/api/training/next", token, map[string]string{"session_id": sessionID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "missing_fields", decode(t, w)["error"])

	w = s.do(t, http.MethodPost, "/api/training/next", token, map[string]string{
		"session_id": sessionID, "step": "feedback", "student_answer": "x",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "step_mismatch", decode(t, w)["error"])

	w = s.do(t, http.MethodPost, "/api/training/next", token, map[string]string{
		"session_id": sessionID, "step": "warmup", "student_answer": "Technology makes our daily life easier.",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	next := decode(t, w)
	assert.Equal(t, "core_drill", next["step"])
	data, _ := next["data"].(map[string]any)
	assert.Equal(t, "Core drill", data["title"])
}

func TestTrainingGenerationFailure(t *testing.T) {
	s := newTestServer(t, llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	user := testutil.SeedUser(t, s.db, model.User{})

	w := s.do(t, http.MethodPost, "/api/training/start", s.token(t, user), nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "generation_failed", decode(t, w)["error"])
}

func TestTeacherRoutes(t *testing.T) {
	s := newTestServer(t, taskResponse("Warm-up"))
	teacher := testutil.SeedUser(t, s.db, model.User{Name: "Cikgu Lim", Role: model.Teacher})
	student := testutil.SeedUser(t, s.db, model.User{Name: "Adam", TeacherID: &teacher.ID})

	studentToken := s.token(t, student)
	w := s.do(t, http.MethodGet, "/api/teacher/students", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/api/training/start", studentToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	teacherToken := s.token(t, teacher)
	w = s.do(t, http.MethodGet, "/api/teacher/students", teacherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	students, _ := decode(t, w)["students"].([]any)
	require.Len(t, students, 1)
	assert.Equal(t, "Adam", students[0].(map[string]any)["name"])

	w = s.do(t, http.MethodPost, "/api/teacher/reset-student", teacherToken, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "missing_user_id", decode(t, w)["error"])

	w = s.do(t, http.MethodPost, "/api/teacher/reset-student", teacherToken, map[string]any{"user_id": student.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, map[string]any{"ok": true}, decode(t, w))

	var sessions int64
	require.NoError(t, s.db.Model(&model.DrillSession{}).Where("user_id = ?", student.ID).Count(&sessions).Error)
	assert.Zero(t, sessions)
}

func TestLLMConfig(t *testing.T) {
	cfg := LLMConfig(config.AIConfig{Provider: "anthropic", AnthropicAPIKey: "sk-ant", Model: "claude-sonnet", RetryAttempts: 3})
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "claude-sonnet", cfg.Anthropic.Model)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.NoError(t, cfg.Validate())

	cfg = LLMConfig(config.AIConfig{Provider: "openai"})
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, 2, cfg.Retry.MaxAttempts)
	assert.Error(t, cfg.Validate())
}
