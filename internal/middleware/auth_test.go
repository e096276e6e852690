package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spmtutor/internal/model"
	"spmtutor/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func token(t *testing.T, id uint, role model.UserRole) string {
	t.Helper()
	user := &model.User{Email: "a@example.com", Role: role}
	user.ID = id
	tok, err := util.GenerateJWT(user, secret, time.Hour)
	require.NoError(t, err)
	return tok
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})
	r.GET("/x", handlers...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(AuthMiddleware(secret))

	tests := []struct {
		name   string
		setup  func(req *http.Request)
		status int
	}{
		{"no token", func(*http.Request) {}, http.StatusUnauthorized},
		{"bearer", func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token(t, 7, model.Student)) }, http.StatusOK},
		{"cookie", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: util.TokenCookie, Value: token(t, 7, model.Student)})
		}, http.StatusOK},
		{"garbage", func(req *http.Request) { req.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
		{"no bearer prefix", func(req *http.Request) { req.Header.Set("Authorization", token(t, 7, model.Student)) }, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
			} else {
				assert.JSONEq(t, `{"user_id":7}`, w.Body.String())
			}
		})
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	r := newRouter(AuthMiddleware("another-secret"))
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, 7, model.Student))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleMiddleware(t *testing.T) {
	r := newRouter(AuthMiddleware(secret), RoleMiddleware(model.Teacher))

	for role, status := range map[model.UserRole]int{
		model.Student: http.StatusForbidden,
		model.Teacher: http.StatusOK,
		model.Admin:   http.StatusOK,
	} {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, 3, role))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, status, w.Code, role)
	}
}

type activityRepo chan uint

func (a activityRepo) UpdateLastSeen(id uint) error {
	a <- id
	return nil
}

func TestActivityMiddleware(t *testing.T) {
	seen := make(activityRepo, 1)
	r := newRouter(AuthMiddleware(secret), ActivityMiddleware(seen))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, 11, model.Student))
	r.ServeHTTP(httptest.NewRecorder(), req)

	select {
	case id := <-seen:
		assert.Equal(t, uint(11), id)
	case <-time.After(2 * time.Second):
		t.Fatal("last seen was not updated")
	}
}
