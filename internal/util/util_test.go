package util

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spmtutor/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmptyOrNonsense(t *testing.T) {
	tests := map[string]bool{
		"":                     true,
		"   ":                  true,
		"ab":                   true,
		"123 456":              true,
		"!!!???":               true,
		"abc":                  false,
		"Technology helps me.": false,
		"  9 to 5 job  ":       false,
	}
	for in, want := range tests {
		assert.Equal(t, want, IsEmptyOrNonsense(in), "%q", in)
	}
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount("  "))
	assert.Equal(t, 4, WordCount(" one two\tthree\nfour "))
}

func TestDateKey(t *testing.T) {
	ts := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	kl, err := time.LoadLocation("Asia/Kuala_Lumpur")
	require.NoError(t, err)

	assert.Equal(t, "2026-03-14", DateKey(ts, nil))
	assert.Equal(t, "2026-03-15", DateKey(ts, kl))
}

func TestAppError_IsAndWrap(t *testing.T) {
	wrapped := fmt.Errorf("advance: %w", Wrap(ErrStepMismatch, errors.New("0 rows")))
	assert.ErrorIs(t, wrapped, ErrStepMismatch)
	assert.NotErrorIs(t, wrapped, ErrSessionNotFound)

	appErr := AsAppError(wrapped)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "step_mismatch", appErr.Code)

	assert.Equal(t, http.StatusInternalServerError, AsAppError(errors.New("boom")).Status)
}

func TestHandleError_RendersCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleError(c, Wrap(ErrGenerationFailed, errors.New("upstream down")))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"generation_failed"}`, w.Body.String())
}

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{Email: "amir@example.com", Role: model.Student}
	user.ID = 42

	token, err := GenerateJWT(user, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, model.Student, claims.Role)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)

	expired, err := GenerateJWT(user, "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(expired, "secret")
	assert.Error(t, err)
}
