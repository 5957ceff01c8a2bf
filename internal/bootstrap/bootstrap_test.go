package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v8"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personal-workspace/internal/domain"
	httpHandler "personal-workspace/internal/handler/http"
	"personal-workspace/internal/middleware"
	"personal-workspace/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("RATE_LIMIT_MAX", "")
	t.Setenv("RATE_LIMIT_WINDOW", "")
	t.Setenv("SESSION_TTL_HOURS", "")
	t.Setenv("ACTIVITY_RETENTION_DAYS", "")
	t.Setenv("REDIS_KEY_PREFIX", "")
	t.Setenv("SERVER_PORT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "ws:", cfg.KeyPrefix)
	assert.Equal(t, 24, cfg.SessionTTLHours)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, time.Second, cfg.RateLimitWindow)
	assert.Equal(t, 90, cfg.ActivityRetentionDays)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("RATE_LIMIT_MAX", "20")
	t.Setenv("RATE_LIMIT_WINDOW", "1m")
	t.Setenv("SESSION_TTL_HOURS", "abc")
	t.Setenv("ACTIVITY_RETENTION_DAYS", "7")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel, "unknown level falls back")
	assert.Equal(t, 20, cfg.RateLimitMax)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 24, cfg.SessionTTLHours, "malformed value falls back")
	assert.Equal(t, 7, cfg.ActivityRetentionDays)
}

func TestLoadConfig_RequiredSettings(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("SESSION_SECRET", "s3cret")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "REDIS_ADDR")

	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("SESSION_SECRET", "")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "SESSION_SECRET")
}

func TestLoggerMiddleware_LevelByStatus(t *testing.T) {
	logger, hook := test.NewNullLogger()
	r := gin.New()
	r.Use(LoggerMiddleware(logger))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/missing", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	require.Len(t, hook.AllEntries(), 3)
	assert.Equal(t, logrus.InfoLevel, hook.AllEntries()[0].Level)
	assert.Equal(t, logrus.WarnLevel, hook.AllEntries()[1].Level)
	assert.Equal(t, logrus.ErrorLevel, hook.AllEntries()[2].Level)
	assert.Equal(t, "/missing", hook.AllEntries()[1].Data["path"])
}

type anonymousAuth struct{}

func (anonymousAuth) Authenticate(context.Context, string) (domain.Identity, error) {
	return domain.Identity{}, service.ErrUnauthenticated
}

func newTestRouter(t *testing.T) (*gin.Engine, redismock.ClientMock) {
	t.Helper()
	client, mock := redismock.NewClientMock()
	logger, _ := test.NewNullLogger()
	cfg := &Config{
		KeyPrefix:         "ws:",
		RateLimitMax:      5,
		RateLimitWindow:   time.Second,
		CORSAllowedOrigin: "http://localhost:3000",
	}
	handlers := httpHandler.Handlers{
		Auth:  &httpHandler.AuthHandler{},
		Board: &httpHandler.BoardHandler{},
		Diary: &httpHandler.DiaryHandler{},
		Todo:  &httpHandler.TodoHandler{},
	}
	return NewRouter(cfg, logger, client, anonymousAuth{}, handlers, middleware.NewMetrics()), mock
}

func TestRouter_PingAndMetricsSkipRateLimit(t *testing.T) {
	r, mock := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "workspace_http_requests_total")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRouter_PreflightShortCircuits(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/board", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRouter_ProtectedPageRedirectsAnonymous(t *testing.T) {
	r, mock := newTestRouter(t)
	key := "ws:ratelimit:192.0.2.1"
	mock.ExpectIncr(key).SetVal(1)
	mock.ExpectExpire(key, time.Second).SetVal(true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
