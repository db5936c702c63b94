package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/OWAISARSHED/LearnPak/internal/domain"
)

type fakeAuth struct {
	token string
	p     *domain.Principal
}

func (f fakeAuth) Authenticate(_ context.Context, token string) (*domain.Principal, error) {
	if token != f.token {
		return nil, domain.ErrNotAuthenticated
	}
	return f.p, nil
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append(mw, func(c *gin.Context) {
		if p := Principal(c); p != nil {
			c.String(http.StatusOK, string(p.Role))
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	r.GET("/", handlers...)
	return r
}

func do(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	auth := fakeAuth{token: "good", p: &domain.Principal{ID: uuid.New(), Role: domain.RoleStudent}}
	r := newEngine(RequireAuth(auth))

	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "Token good").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "Bearer bad").Code)

	w := do(r, "Bearer good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "student", w.Body.String())
}

func TestOptionalAuth(t *testing.T) {
	auth := fakeAuth{token: "good", p: &domain.Principal{ID: uuid.New(), Role: domain.RoleAdmin}}
	r := newEngine(OptionalAuth(auth))

	assert.Equal(t, "anonymous", do(r, "").Body.String())
	assert.Equal(t, "anonymous", do(r, "Bearer bad").Body.String())
	assert.Equal(t, "admin", do(r, "Bearer good").Body.String())
}

func TestNilRateLimiterPassesThrough(t *testing.T) {
	r := newEngine(NewRateLimiter(nil).Limit("login", 1, time.Minute))
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(r, "").Code)
	}
}
