package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bestiespace-backend/internal/domains/bestie/model"
	"bestiespace-backend/internal/domains/bestie/service"
	"bestiespace-backend/internal/shared/middleware"
)

// fakeBestieService stubs only what a test calls; anything else panics via
// the embedded nil interface.
type fakeBestieService struct {
	service.BestieService
	created *model.Bestie
}

func (f *fakeBestieService) Create(_ context.Context, _ uuid.UUID, _ model.CreateBestieRequest) (*model.Bestie, error) {
	return f.created, nil
}

func TestCreate_ReturnsSummaryProjection(t *testing.T) {
	gin.SetMode(gin.TestMode)

	adminID := uuid.New()
	b := model.NewBestie(adminID, model.CreateBestieRequest{Name: "Anna", Nickname: "bee"})
	h := NewBestieHandler(&fakeBestieService{created: b})

	router := gin.New()
	router.POST("/besties", func(c *gin.Context) {
		c.Set(middleware.ContextAdminID, adminID)
	}, h.Create)

	req := httptest.NewRequest(http.MethodPost, "/besties",
		bytes.NewBufferString(`{"name":"Anna","nickname":"bee"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	// create answers with identity plus share state only
	for _, key := range []string{"id", "name", "nickname", "secretCode", "isPublished", "createdAt"} {
		assert.Contains(t, resp.Data, key)
	}
	assert.Equal(t, b.SecretCode, resp.Data["secretCode"])

	// the heavy sub-collections stay out of the create response
	for _, key := range []string{"messages", "playlist", "galleryImages", "questions", "jokes", "reasons", "adminId"} {
		assert.NotContains(t, resp.Data, key)
	}
}
