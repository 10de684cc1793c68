package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aman-churiwal/libretune/internal/config"
	"github.com/aman-churiwal/libretune/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm/logger"
)

type testServer struct {
	*Server
	logPath string
}

func newTestServer(t *testing.T, mutate func(*config.Config)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := storage.Open(sqlite.Open("file::memory:"), logger.Silent)
	require.NoError(t, err)
	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	redis, err := storage.NewRedis(mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { redis.Close() })

	logPath := filepath.Join(t.TempDir(), "requests.log")
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 8000, Environment: "test"},
		Cache:  config.CacheConfig{UserTTL: time.Minute},
		RequestLog: config.RequestLogConfig{
			LogToFile:          true,
			LogFilePath:        logPath,
			DatabaseBufferSize: 10,
		},
	}
	if mutate != nil {
		mutate(cfg)
	}

	return &testServer{
		Server:  New(cfg, zap.NewNop(), db, redis),
		logPath: logPath,
	}
}

func (s *testServer) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	s.GetRouter().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestGeneralRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello world!", w.Body.String())

	w = s.do(http.MethodGet, "/users/42/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Welcome 42!", w.Body.String())
	assert.Equal(t, "11", w.Header().Get("Content-Length"))

	w = s.do(http.MethodGet, "/search?query=jazz&limit=5", nil)
	assert.Equal(t, "Searching for 'jazz' with limit 5 and offset 0", w.Body.String())

	w = s.do(http.MethodGet, "/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for path, code := range map[string]int{
		"/test/200": 200,
		"/test/404": 404,
		"/test/500": 500,
		"/test/418": 400,
		"/test/abc": 404,
	} {
		assert.Equal(t, code, s.do(http.MethodGet, path, nil).Code, path)
	}
}

func TestRequestLogFile(t *testing.T) {
	s := newTestServer(t, nil)

	s.do(http.MethodGet, "/users/42/", nil)
	s.do(http.MethodGet, "/test/500", nil)

	data, err := os.ReadFile(s.logPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[✅] GET /users/42/ 192.0.2.1 - 200 ")
	assert.Contains(t, lines[0], "[0->11] Unknown")
	assert.Contains(t, lines[1], "[💥] GET /test/500 ")
}

func TestDatabaseSinkAndAnalytics(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.RequestLog.LogToFile = false
		cfg.RequestLog.LogToDatabase = true
	})

	s.do(http.MethodGet, "/", nil)
	s.do(http.MethodGet, "/test/404", nil)
	require.NoError(t, s.Shutdown(context.Background()))

	w := s.do(http.MethodGet, "/admin/analytics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	summary := decode(t, w)
	assert.Equal(t, float64(2), summary["total_requests"])
	assert.Equal(t, float64(50), summary["error_rate"])

	w = s.do(http.MethodGet, "/admin/analytics?from=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodDelete, "/admin/logs?before="+strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decode(t, w)["deleted"])
}

func TestUserRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodPost, "/api/v1/users", gin.H{
		"username": "carol",
		"email":    "carol@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	created := decode(t, w)
	assert.NotContains(t, created, "password_hash")
	id := created["id"].(string)

	t.Run("Should conflict on duplicates", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/v1/users", gin.H{
			"username": "carol",
			"email":    "other@example.com",
			"password": "correct-horse",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Should validate the body", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/v1/users", gin.H{"username": "dave"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Should get, update and list", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/users/"+id, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "carol", decode(t, w)["username"])

		w = s.do(http.MethodPatch, "/api/v1/users/"+id, gin.H{"bio": "bassist"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "bassist", decode(t, w)["bio"])

		w = s.do(http.MethodPatch, "/api/v1/users/"+id, gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = s.do(http.MethodGet, "/api/v1/users?limit=1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode(t, w)["users"], 1)
	})

	t.Run("Should map missing and malformed ids", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/users/"+uuid.NewString(), nil).Code)
		assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/users/not-a-uuid", nil).Code)
	})

	t.Run("Should delete", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/api/v1/users/"+id, nil).Code)
		assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/v1/users/"+id, nil).Code)
	})
}

func TestTrackAndPlaylistRoutes(t *testing.T) {
	s := newTestServer(t, nil)
	owner := uuid.NewString()

	w := s.do(http.MethodPost, "/api/v1/tracks", gin.H{
		"user_id":   owner,
		"title":     "Night Drive",
		"audio_url": "https://cdn.example.com/night.mp3",
		"is_public": false,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	track := decode(t, w)
	assert.Equal(t, false, track["is_public"])

	w = s.do(http.MethodPatch, "/api/v1/tracks/"+track["id"].(string), gin.H{"likes": 7})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(7), decode(t, w)["likes"])

	w = s.do(http.MethodGet, "/api/v1/tracks?user_id="+owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["tracks"], 1)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/tracks?user_id=nope", nil).Code)

	playlist := gin.H{"user_id": owner, "name": "Late"}
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/v1/playlists", playlist).Code)
	assert.Equal(t, http.StatusConflict, s.do(http.MethodPost, "/api/v1/playlists", playlist).Code)

	w = s.do(http.MethodGet, "/api/v1/playlists", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["playlists"], 1)
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])

	s.redis.Close()

	w = s.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "degraded", decode(t, w)["status"])
}
