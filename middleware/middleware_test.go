package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"localconnect/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSessions struct {
	revoked map[string]bool
	err     error
}

func (f *fakeSessions) Active(ctx context.Context, role, subject, token string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return !f.revoked[token], nil
}

func token(t *testing.T, subject, role string) string {
	t.Helper()
	tok, err := utils.GenerateToken(subject, subject+"@example.com", role, time.Hour)
	require.NoError(t, err)
	return tok
}

func identityRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append(mw, func(c *gin.Context) {
		id, role := Subject(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": role})
	})
	r.GET("/me", handlers...)
	return r
}

func get(r http.Handler, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthUserMiddleware(t *testing.T) {
	sessions := &fakeSessions{revoked: map[string]bool{}}
	r := identityRouter(JWTAuthUserMiddleware(sessions))

	w := get(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(r, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(r, token(t, "w1", utils.RoleWorker))
	assert.Equal(t, http.StatusForbidden, w.Code)

	userToken := token(t, "u1", utils.RoleUser)
	w = get(r, userToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"u1","role":"user"}`, w.Body.String())

	sessions.revoked[userToken] = true
	w = get(r, userToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthFallsBackWhenCacheFails(t *testing.T) {
	r := identityRouter(JWTAuthWorkerMiddleware(&fakeSessions{err: errors.New("redis down")}))

	w := get(r, token(t, "w1", utils.RoleWorker))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"w1","role":"worker"}`, w.Body.String())
}

func TestJWTAuthAcceptsAnyListedRole(t *testing.T) {
	r := identityRouter(JWTAuthMiddleware(nil, utils.RoleUser, utils.RoleWorker))

	assert.Equal(t, http.StatusOK, get(r, token(t, "u1", utils.RoleUser)).Code)
	assert.Equal(t, http.StatusOK, get(r, token(t, "w1", utils.RoleWorker)).Code)
}

func TestOptionalUserAuth(t *testing.T) {
	r := identityRouter(OptionalUserAuth(nil))

	w := get(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"","role":""}`, w.Body.String())

	w = get(r, "garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"","role":""}`, w.Body.String())

	w = get(r, token(t, "u7", utils.RoleUser))
	assert.JSONEq(t, `{"id":"u7","role":"user"}`, w.Body.String())
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.9")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRateLimiterStoreEvictsIdleVisitors(t *testing.T) {
	store := newRateLimiterStore(10)
	start := time.Now()
	store.getLimiter("a", start)
	store.getLimiter("b", start.Add(2*limiterIdleTTL))

	assert.NotContains(t, store.visitors, "a")
	assert.Contains(t, store.visitors, "b")
}

func TestGetClientIP(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded", map[string]string{"X-Forwarded-For": "junk, 203.0.113.5, 10.0.0.1"}, "10.0.0.2:80", "203.0.113.5"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.7"}, "10.0.0.2:80", "198.51.100.7"},
		{"remote", nil, "192.0.2.1:5555", "192.0.2.1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				c.Request.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, getClientIP(c))
		})
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))
	r.GET("/", func(c *gin.Context) {
		_, ok := c.Get("logger")
		assert.True(t, ok)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
