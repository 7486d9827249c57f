package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walletnames/registrar/internal/infrastructure/auth"
	"github.com/walletnames/registrar/internal/infrastructure/ratelimit"
	"github.com/walletnames/registrar/internal/shared/authorization"
	"github.com/walletnames/registrar/internal/shared/constants"
	"github.com/walletnames/registrar/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	chain := append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": UserID(c),
			"role":    c.GetString(constants.ContextKeyUserRole),
		})
	})
	r.GET("/t", chain...)
	return r
}

func do(r http.Handler, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	jwtSvc := auth.NewJWTService("secret", "registrar")
	token, err := jwtSvc.Generate("user-9", authorization.RoleOperator, time.Hour)
	require.NoError(t, err)
	m := NewAuthMiddleware(jwtSvc, logger.NewNop())

	t.Run("required without header", func(t *testing.T) {
		w := do(newEngine(m.RequireAuth()), nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Unauthorized","success":false}`, w.Body.String())
	})

	t.Run("required with bad scheme", func(t *testing.T) {
		w := do(newEngine(m.RequireAuth()), map[string]string{"Authorization": "Basic abc"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("required with forged token", func(t *testing.T) {
		forged, err := auth.NewJWTService("other", "registrar").Generate("user-9", authorization.RoleAdmin, time.Hour)
		require.NoError(t, err)
		w := do(newEngine(m.RequireAuth()), map[string]string{"Authorization": "Bearer " + forged})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("required with valid token", func(t *testing.T) {
		w := do(newEngine(m.RequireAuth()), map[string]string{"Authorization": "Bearer " + token})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":"user-9","role":"operator"}`, w.Body.String())
	})

	t.Run("optional anonymous", func(t *testing.T) {
		w := do(newEngine(m.OptionalAuth()), nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":"","role":""}`, w.Body.String())
	})

	t.Run("optional ignores invalid token", func(t *testing.T) {
		w := do(newEngine(m.OptionalAuth()), map[string]string{"Authorization": "Bearer garbage"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":"","role":""}`, w.Body.String())
	})

	t.Run("optional with valid token", func(t *testing.T) {
		w := do(newEngine(m.OptionalAuth()), map[string]string{"Authorization": "bearer " + token})
		assert.JSONEq(t, `{"user_id":"user-9","role":"operator"}`, w.Body.String())
	})
}

type stubEnforcer struct {
	allowed bool
	err     error
	subject string
}

func (s *stubEnforcer) Enforce(subject, resource, action string) (bool, error) {
	s.subject = subject
	return s.allowed, s.err
}

func TestPermissionMiddleware(t *testing.T) {
	setUser := func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, "user-1")
		c.Set(constants.ContextKeyUserRole, "operator")
	}

	t.Run("anonymous", func(t *testing.T) {
		m := NewPermissionMiddleware(&stubEnforcer{allowed: true}, logger.NewNop())
		w := do(newEngine(m.RequirePermission("charges", "read")), nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("allowed", func(t *testing.T) {
		enf := &stubEnforcer{allowed: true}
		m := NewPermissionMiddleware(enf, logger.NewNop())
		w := do(newEngine(setUser, m.RequirePermission("charges", "read")), nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "operator", enf.subject)
	})

	t.Run("denied", func(t *testing.T) {
		m := NewPermissionMiddleware(&stubEnforcer{}, logger.NewNop())
		w := do(newEngine(setUser, m.RequirePermission("charges", "read")), nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("enforcer error", func(t *testing.T) {
		m := NewPermissionMiddleware(&stubEnforcer{err: errors.New("boom")}, logger.NewNop())
		w := do(newEngine(setUser, m.RequirePermission("charges", "read")), nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestRateLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	rl := NewRateLimiter(ratelimit.NewRedisRateLimiter(client), "purchase",
		ratelimit.RateLimitConfig{RequestsPerMinute: 2}, logger.NewNop())
	r := newEngine(rl.Limit())

	assert.Equal(t, http.StatusOK, do(r, nil).Code)
	assert.Equal(t, http.StatusOK, do(r, nil).Code)
	w := do(r, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"Too many requests","success":false}`, w.Body.String())

	t.Run("fails open when redis is down", func(t *testing.T) {
		mr.Close()
		assert.Equal(t, http.StatusOK, do(r, nil).Code)
	})
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestID())

	w := do(r, nil)
	assert.Len(t, w.Header().Get(constants.HeaderXRequestID), 36)

	w = do(r, map[string]string{constants.HeaderXRequestID: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(constants.HeaderXRequestID))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(logger.NewNop()))
	r.GET("/t", func(c *gin.Context) { panic("boom") })

	w := do(r, map[string]string{"Authorization": "Bearer secret"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error occurred","success":false}`, w.Body.String())
}

func TestCORS(t *testing.T) {
	r := newEngine(CORS([]string{"https://wallet.example"}))

	w := do(r, map[string]string{"Origin": "https://wallet.example"})
	assert.Equal(t, "https://wallet.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(r, map[string]string{"Origin": "https://evil.example"})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
