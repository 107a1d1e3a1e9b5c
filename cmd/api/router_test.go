package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bestiespace-backend/internal/config"
	"bestiespace-backend/internal/infrastructure/cache"
	"bestiespace-backend/internal/infrastructure/database"
	"bestiespace-backend/pkg/container"
)

func TestHealthHandler_DegradedDatabase(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// a never-connected pool and an unreachable redis
	c := &container.Container{
		Config: &config.Config{App: config.AppConfig{Version: "test"}},
		DB:     database.NewPostgresDB(config.DatabaseConfig{}),
		Cache:  cache.NewRedisCache(config.RedisConfig{Host: "127.0.0.1:1"}),
	}

	router := gin.New()
	router.GET("/health", healthHandler(c))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// a non-2xx health response must not claim success
	assert.False(t, resp.Success)
	assert.Equal(t, "degraded", resp.Data["status"])
	assert.Equal(t, "down", resp.Data["database"])
}
