package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpcontroller "github.com/KarpovAlexandrGo/task-manager/internal/controller/http"
	"github.com/KarpovAlexandrGo/task-manager/internal/metrics"
	"github.com/KarpovAlexandrGo/task-manager/internal/repo/memory"
	"github.com/KarpovAlexandrGo/task-manager/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, "", cfg.RedisAddr)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, int64(1<<20), cfg.RequestBodyLimit)
	assert.Equal(t, time.Minute, cfg.APITimeout)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("API_TIMEOUT_MS", "1500")
	t.Setenv("WHITE_LISTED_DOMAINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("STORAGE_DRIVER", "Postgres")

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 1500*time.Millisecond, cfg.APITimeout)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")
	_, err := loadConfig()
	assert.Error(t, err)
}

func testConfig() Config {
	return Config{
		HTTPPort:         "0",
		LogLevel:         "error",
		StorageDriver:    StorageMemory,
		RequestBodyLimit: 1 << 20,
		APITimeout:       time.Minute,
		ShutdownTimeout:  time.Second,
	}
}

func TestNew_InMemory(t *testing.T) {
	a, err := New(testConfig())
	require.NoError(t, err)
	require.NotNil(t, a.Server)
	assert.Equal(t, ":0", a.Server.Addr)
	assert.Empty(t, a.closers)
}

func TestInitCache_MemoryStorageRunsWithoutCache(t *testing.T) {
	cfg := testConfig()
	cfg.RedisAddr = "127.0.0.1:1"

	a := &App{}
	assert.Nil(t, a.initCache(cfg))
	assert.Empty(t, a.closers)

	a, err := New(cfg)
	require.NoError(t, err)
	assert.Empty(t, a.closers)
}

func TestRouter_MemoryStorageListsOnlyLiveTasks(t *testing.T) {
	cfg := testConfig()
	cfg.RedisAddr = "127.0.0.1:1"

	for i := 0; i < 2; i++ {
		a, err := New(cfg)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"message":"0 tasks retrieved successfully"`)

		body := `{"title":"Ship it","description":"Deploy","dueDate":"2030-01-01","assignedTo":"ops","category":"deploy"}`
		rec = httptest.NewRecorder()
		a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/task", strings.NewReader(body)))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRouter_EndToEnd(t *testing.T) {
	m := metrics.New()
	router := setupRouter(testConfig(), usecase.NewTaskUseCase(memory.NewTaskStore(), usecase.WithMetrics(m)), m)

	body, err := json.Marshal(map[string]string{
		"title":       "Ship it",
		"description": "Deploy to production",
		"dueDate":     "2030-01-01",
		"assignedTo":  "ops@example.com",
		"category":    "deploy",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/task", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.True(t, strings.HasPrefix(rec.Body.String(), httpcontroller.JSONPrefix))

	var env struct {
		Status int `json:"status"`
		Body   struct {
			ID string `json:"id"`
		} `json:"body"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(rec.Body.String(), httpcontroller.JSONPrefix)), &env))
	assert.Equal(t, http.StatusOK, env.Status)
	assert.Equal(t, env.Body.ID+" task created successfully", env.Message)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tasks?category=deploy", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"1 tasks retrieved successfully"`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `task_manager_task_operations_total{operation="create",result="ok"} 1`)
}

func TestRouter_BodyLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RequestBodyLimit = 16
	m := metrics.New()
	router := setupRouter(cfg, usecase.NewTaskUseCase(memory.NewTaskStore()), m)

	big := `{"title":"` + strings.Repeat("x", 100) + `"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/task", strings.NewReader(big)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"request entity too large"`)
}

func TestRouter_CompressionAndCORS(t *testing.T) {
	cfg := testConfig()
	cfg.AllowedOrigins = []string{"https://app.example.com"}
	router := setupRouter(cfg, usecase.NewTaskUseCase(memory.NewTaskStore()), metrics.New())

	tests := []struct {
		name        string
		headers     map[string]string
		encoding    string
		allowOrigin string
	}{
		{
			name:     "gzip by default",
			headers:  map[string]string{"Accept-Encoding": "gzip"},
			encoding: "gzip",
		},
		{
			name:    "compression opt-out",
			headers: map[string]string{"Accept-Encoding": "gzip", "X-No-Compression": "true"},
		},
		{
			name:        "whitelisted origin",
			headers:     map[string]string{"Origin": "https://app.example.com"},
			allowOrigin: "https://app.example.com",
		},
		{
			name:    "foreign origin",
			headers: map[string]string{"Origin": "https://evil.example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.encoding, rec.Header().Get("Content-Encoding"))
			assert.Equal(t, tt.allowOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			if tt.encoding == "" {
				assert.True(t, strings.HasPrefix(rec.Body.String(), httpcontroller.JSONPrefix))
			}
		})
	}
}
