package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bestiespace-backend/internal/domains/bestie/model"
	"bestiespace-backend/internal/domains/bestie/service"
	"bestiespace-backend/internal/shared/middleware"
	"bestiespace-backend/internal/shared/response"
	"bestiespace-backend/pkg/logger"
)

// BestieHandler serves the owner-scoped routes. Every route resolves the
// admin from the JWT context and never trusts an adminId from the payload.
type BestieHandler struct {
	service service.BestieService
}

func NewBestieHandler(service service.BestieService) *BestieHandler {
	return &BestieHandler{service: service}
}

// Create handles POST /besties
func (h *BestieHandler) Create(c *gin.Context) {
	adminID, ok := middleware.AdminIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.CreateBestieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	b, err := h.service.Create(c.Request.Context(), adminID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Bestie created successfully", b.ToSummary())
}

// List handles GET /besties
func (h *BestieHandler) List(c *gin.Context) {
	adminID, ok := middleware.AdminIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	summaries, err := h.service.List(c.Request.Context(), adminID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", summaries)
}

// Get handles GET /besties/:id
func (h *BestieHandler) Get(c *gin.Context) {
	adminID, id, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id, adminID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", b)
}

// Update handles PUT /besties/:id
func (h *BestieHandler) Update(c *gin.Context) {
	adminID, id, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	var req model.UpdateBestieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, adminID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Bestie updated successfully", b)
}

// Delete handles DELETE /besties/:id
func (h *BestieHandler) Delete(c *gin.Context) {
	adminID, id, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, adminID); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Bestie deleted successfully", nil)
}

// TogglePublish handles PATCH /besties/:id/publish
func (h *BestieHandler) TogglePublish(c *gin.Context) {
	adminID, id, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	b, err := h.service.TogglePublish(c.Request.Context(), id, adminID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	msg := "Bestie unpublished"
	if b.IsPublished {
		msg = "Bestie published"
	}
	response.Success(c, http.StatusOK, msg, gin.H{
		"isPublished": b.IsPublished,
		"secretCode":  b.SecretCode,
	})
}

// AddGalleryImage handles POST /besties/:id/gallery
func (h *BestieHandler) AddGalleryImage(c *gin.Context) {
	adminID, id, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	var req model.AddGalleryImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	b, err := h.service.AddGalleryImage(c.Request.Context(), id, adminID, req.Image)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Image added to gallery", gin.H{
		"galleryCount":  len(b.GalleryImages),
		"galleryImages": b.GalleryImages,
	})
}

// RemoveGalleryImage handles DELETE /besties/:id/gallery
func (h *BestieHandler) RemoveGalleryImage(c *gin.Context) {
	adminID, id, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	var req model.RemoveGalleryImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	b, err := h.service.RemoveGalleryImage(c.Request.Context(), id, adminID, req.Key)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Image removed from gallery", gin.H{
		"galleryCount": len(b.GalleryImages),
	})
}

// UpdateSongDedication handles PUT /besties/:id/song
func (h *BestieHandler) UpdateSongDedication(c *gin.Context) {
	adminID, id, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	var req model.UpdateSongDedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	b, err := h.service.UpdateSongDedication(c.Request.Context(), id, adminID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Song dedication updated", gin.H{
		"songDedication":     b.SongDedication,
		"songDedicationData": b.SongDedicationData,
	})
}

// AddPlaylistItem handles POST /besties/:id/playlist
func (h *BestieHandler) AddPlaylistItem(c *gin.Context) {
	adminID, id, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	var req model.AddPlaylistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	b, err := h.service.AddPlaylistItem(c.Request.Context(), id, adminID, req.ToItem())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Song added to playlist", gin.H{
		"playlistCount": len(b.Playlist),
		"playlist":      b.Playlist,
	})
}

// RemovePlaylistItem handles DELETE /besties/:id/playlist/:index
func (h *BestieHandler) RemovePlaylistItem(c *gin.Context) {
	adminID, id, ok := h.ownerAndID(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "Invalid playlist index")
		return
	}

	b, removed, err := h.service.RemovePlaylistItem(c.Request.Context(), id, adminID, index)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Song removed from playlist", gin.H{
		"removedItem":   removed,
		"playlistCount": len(b.Playlist),
	})
}

// UpdatePlaylistItem handles PUT /besties/:id/playlist/:index
func (h *BestieHandler) UpdatePlaylistItem(c *gin.Context) {
	adminID, id, ok := h.ownerAndID(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "Invalid playlist index")
		return
	}

	var req model.UpdatePlaylistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	b, err := h.service.UpdatePlaylistItem(c.Request.Context(), id, adminID, index, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Playlist item updated", gin.H{
		"playlist": b.Playlist,
	})
}

func (h *BestieHandler) ownerAndID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	adminID, ok := middleware.AdminIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bestie id")
		return uuid.Nil, uuid.Nil, false
	}
	return adminID, id, true
}

func (h *BestieHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrBestieNotFound):
		response.NotFound(c, "Bestie not found")
	case errors.Is(err, model.ErrImageNotFound):
		response.NotFound(c, "Image not found in gallery")
	case errors.Is(err, model.ErrNicknameTaken):
		response.Conflict(c, "A bestie with this nickname already exists")
	case errors.Is(err, model.ErrInvalidIndex):
		response.BadRequest(c, "Index out of range")
	default:
		logger.Error("bestie handler error", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
