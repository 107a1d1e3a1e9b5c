package handler

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bestiespace-backend/internal/config"
	adminmodel "bestiespace-backend/internal/domains/admin/model"
	bestiemodel "bestiespace-backend/internal/domains/bestie/model"
	"bestiespace-backend/internal/domains/upload/service"
	"bestiespace-backend/internal/shared/middleware"
	"bestiespace-backend/internal/shared/response"
	"bestiespace-backend/pkg/logger"
)

// UploadHandler parses multipart requests and hands fully buffered files to
// the upload service. Each request runs under its own deadline so a stalled
// client cannot hold a connection open indefinitely.
type UploadHandler struct {
	service service.UploadService
	cfg     config.UploadConfig
}

func NewUploadHandler(service service.UploadService, cfg config.UploadConfig) *UploadHandler {
	return &UploadHandler{service: service, cfg: cfg}
}

// UploadProfilePhoto handles POST /upload/profile-photo
func (h *UploadHandler) UploadProfilePhoto(c *gin.Context) {
	adminID, ok := middleware.AdminIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	f, ok := h.readFile(c, "image")
	if !ok {
		return
	}

	ctx, cancel := h.uploadContext(c)
	defer cancel()

	result, err := h.service.UploadProfilePhoto(ctx, adminID, f)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Profile photo updated", result)
}

// UploadGalleryImages handles POST /upload/gallery
func (h *UploadHandler) UploadGalleryImages(c *gin.Context) {
	adminID, bestieID, ok := h.ownerAndBestie(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "Invalid multipart form")
		return
	}
	headers := form.File["images"]
	if len(headers) == 0 {
		response.BadRequest(c, "No files uploaded")
		return
	}
	if len(headers) > h.cfg.MaxFilesPerReq {
		response.BadRequest(c, "Too many files in one request")
		return
	}

	files := make([]service.FileUpload, 0, len(headers))
	for _, header := range headers {
		f, ok := h.bufferFile(c, header)
		if !ok {
			return
		}
		files = append(files, f)
	}

	ctx, cancel := h.uploadContext(c)
	defer cancel()

	b, added, err := h.service.UploadGalleryImages(ctx, adminID, bestieID, files)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Images uploaded", gin.H{
		"uploaded":     added,
		"galleryCount": len(b.GalleryImages),
	})
}

// UploadSongDedication handles POST /upload/song-dedication
func (h *UploadHandler) UploadSongDedication(c *gin.Context) {
	adminID, bestieID, ok := h.ownerAndBestie(c)
	if !ok {
		return
	}

	f, ok := h.readFile(c, "song")
	if !ok {
		return
	}
	duration := parseFloat(c.PostForm("duration"))

	ctx, cancel := h.uploadContext(c)
	defer cancel()

	b, err := h.service.UploadSongDedication(ctx, adminID, bestieID, f, duration)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Song dedication uploaded", gin.H{
		"songDedication":     b.SongDedication,
		"songDedicationData": b.SongDedicationData,
	})
}

// UploadPlaylistAudio handles POST /upload/playlist
func (h *UploadHandler) UploadPlaylistAudio(c *gin.Context) {
	adminID, bestieID, ok := h.ownerAndBestie(c)
	if !ok {
		return
	}

	f, ok := h.readFile(c, "audio")
	if !ok {
		return
	}

	var index *int
	if raw := c.PostForm("songIndex"); raw != "" {
		i, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "Invalid song index")
			return
		}
		index = &i
	}

	meta := service.PlaylistAudioMeta{
		Title:    c.PostForm("title"),
		Artist:   c.PostForm("artist"),
		Link:     c.PostForm("link"),
		Duration: parseFloat(c.PostForm("duration")),
	}

	ctx, cancel := h.uploadContext(c)
	defer cancel()

	b, err := h.service.UploadPlaylistAudio(ctx, adminID, bestieID, index, f, meta)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Playlist audio uploaded", gin.H{
		"playlist":      b.Playlist,
		"playlistCount": len(b.Playlist),
	})
}

// ========================================
// HELPERS
// ========================================

func (h *UploadHandler) ownerAndBestie(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	adminID, ok := middleware.AdminIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return uuid.Nil, uuid.Nil, false
	}
	bestieID, err := uuid.Parse(c.PostForm("bestieId"))
	if err != nil {
		response.BadRequest(c, "Invalid or missing bestieId")
		return uuid.Nil, uuid.Nil, false
	}
	return adminID, bestieID, true
}

func (h *UploadHandler) readFile(c *gin.Context, field string) (service.FileUpload, bool) {
	header, err := c.FormFile(field)
	if err != nil {
		response.BadRequest(c, "No file uploaded")
		return service.FileUpload{}, false
	}
	return h.bufferFile(c, header)
}

// bufferFile reads one multipart file into memory, rejecting oversized files
// before buffering them.
func (h *UploadHandler) bufferFile(c *gin.Context, header *multipart.FileHeader) (service.FileUpload, bool) {
	if header.Size > h.cfg.MaxFileSizeBytes {
		response.Error(c, http.StatusRequestEntityTooLarge, "File exceeds the maximum allowed size")
		return service.FileUpload{}, false
	}

	src, err := header.Open()
	if err != nil {
		response.BadRequest(c, "Could not read uploaded file")
		return service.FileUpload{}, false
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, h.cfg.MaxFileSizeBytes+1))
	if err != nil {
		response.BadRequest(c, "Could not read uploaded file")
		return service.FileUpload{}, false
	}
	if int64(len(data)) > h.cfg.MaxFileSizeBytes {
		response.Error(c, http.StatusRequestEntityTooLarge, "File exceeds the maximum allowed size")
		return service.FileUpload{}, false
	}

	return service.FileUpload{
		Data:        data,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}, true
}

func (h *UploadHandler) uploadContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), time.Duration(h.cfg.TimeoutSeconds)*time.Second)
}

func (h *UploadHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoFiles),
		errors.Is(err, service.ErrTooManyFiles),
		errors.Is(err, service.ErrUnsupportedMediaType),
		errors.Is(err, service.ErrInvalidImage):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, bestiemodel.ErrBestieNotFound):
		response.NotFound(c, "Bestie not found")
	case errors.Is(err, adminmodel.ErrAdminNotFound):
		response.NotFound(c, "Admin not found")
	case errors.Is(err, context.DeadlineExceeded):
		response.Error(c, http.StatusGatewayTimeout, "Upload timed out")
	default:
		logger.Error("upload handler error", err)
		response.InternalServerError(c, "Something went wrong")
	}
}

func parseFloat(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}
