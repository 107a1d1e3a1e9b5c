package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"bestiespace-backend/internal/config"
	adminrepo "bestiespace-backend/internal/domains/admin/repository"
	bestiemodel "bestiespace-backend/internal/domains/bestie/model"
	bestieservice "bestiespace-backend/internal/domains/bestie/service"
	"bestiespace-backend/internal/infrastructure/storage"
	"bestiespace-backend/pkg/logger"
)

// FileUpload is one multipart file, fully read into memory. The size limit
// is enforced before anything is buffered.
type FileUpload struct {
	Data        []byte
	Filename    string
	ContentType string
}

// BlobStore is the consumer-side view of the object store.
type BlobStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (*storage.UploadResult, error)
	BestEffortDelete(ctx context.Context, key string) storage.DeleteOutcome
}

// UploadService orchestrates the blob-then-document pipeline: upload the new
// blob first, save the document, then best-effort delete any replaced blob.
// A failed save after a successful upload leaves an orphan blob, never a
// document pointing at a missing blob.
type UploadService interface {
	UploadProfilePhoto(ctx context.Context, adminID uuid.UUID, f FileUpload) (*ProfilePhotoResult, error)
	UploadGalleryImages(ctx context.Context, adminID, bestieID uuid.UUID, files []FileUpload) (*bestiemodel.Bestie, []bestiemodel.GalleryImage, error)
	UploadSongDedication(ctx context.Context, adminID, bestieID uuid.UUID, f FileUpload, duration float64) (*bestiemodel.Bestie, error)
	UploadPlaylistAudio(ctx context.Context, adminID, bestieID uuid.UUID, index *int, f FileUpload, meta PlaylistAudioMeta) (*bestiemodel.Bestie, error)
}

// PlaylistAudioMeta carries the form fields that ride along with an audio
// upload. Duration comes from the client because the store cannot derive it.
type PlaylistAudioMeta struct {
	Title    string
	Artist   string
	Link     string
	Duration float64
}

type ProfilePhotoResult struct {
	URL string `json:"profilePhoto"`
	Key string `json:"key"`
}

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var audioTypes = map[string]bool{
	"audio/mpeg": true,
	"audio/mp3":  true,
	"audio/wav":  true,
	"audio/ogg":  true,
	"audio/mp4":  true,
}

var videoTypes = map[string]bool{
	"video/mp4":       true,
	"video/quicktime": true,
	"video/x-msvideo": true,
}

type uploadService struct {
	blobs   BlobStore
	besties bestieservice.BestieService
	admins  adminrepo.AdminRepository
	cfg     config.UploadConfig
}

func NewUploadService(blobs BlobStore, besties bestieservice.BestieService, admins adminrepo.AdminRepository, cfg config.UploadConfig) UploadService {
	return &uploadService{blobs: blobs, besties: besties, admins: admins, cfg: cfg}
}

func (s *uploadService) UploadProfilePhoto(ctx context.Context, adminID uuid.UUID, f FileUpload) (*ProfilePhotoResult, error) {
	if err := s.checkFile(f, imageTypes); err != nil {
		return nil, err
	}
	if err := checkImage(f.Data); err != nil {
		return nil, err
	}

	admin, err := s.admins.FindByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	oldKey := admin.ProfilePhotoKey

	key := fmt.Sprintf("bestiespace/admin/profile/%s_%d%s", adminID, time.Now().Unix(), ext(f))
	result, err := s.blobs.Upload(ctx, key, f.Data, f.ContentType)
	if err != nil {
		return nil, fmt.Errorf("uploading profile photo: %w", err)
	}

	if err := s.admins.UpdateProfilePhoto(ctx, adminID, result.URL, result.Key); err != nil {
		return nil, fmt.Errorf("saving profile photo: %w", err)
	}

	s.dropOldBlob(ctx, oldKey)
	return &ProfilePhotoResult{URL: result.URL, Key: result.Key}, nil
}

func (s *uploadService) UploadGalleryImages(ctx context.Context, adminID, bestieID uuid.UUID, files []FileUpload) (*bestiemodel.Bestie, []bestiemodel.GalleryImage, error) {
	if len(files) == 0 {
		return nil, nil, ErrNoFiles
	}
	if len(files) > s.cfg.MaxFilesPerReq {
		return nil, nil, ErrTooManyFiles
	}
	for _, f := range files {
		if err := s.checkFile(f, imageTypes); err != nil {
			return nil, nil, err
		}
		if err := checkImage(f.Data); err != nil {
			return nil, nil, err
		}
	}

	var b *bestiemodel.Bestie
	added := make([]bestiemodel.GalleryImage, 0, len(files))
	for _, f := range files {
		key := fmt.Sprintf("bestiespace/gallery/%s/%s%s", bestieID, uuid.NewString(), ext(f))
		result, err := s.blobs.Upload(ctx, key, f.Data, f.ContentType)
		if err != nil {
			return nil, nil, fmt.Errorf("uploading gallery image: %w", err)
		}

		img := bestiemodel.GalleryImage{
			URL:        result.URL,
			Key:        result.Key,
			Format:     result.Format,
			Size:       result.Bytes,
			Filename:   f.Filename,
			UploadedAt: time.Now(),
		}
		b, err = s.besties.AddGalleryImage(ctx, bestieID, adminID, img)
		if err != nil {
			// The blob is already stored; the document never saw it.
			return nil, nil, err
		}
		added = append(added, img)
	}
	return b, added, nil
}

func (s *uploadService) UploadSongDedication(ctx context.Context, adminID, bestieID uuid.UUID, f FileUpload, duration float64) (*bestiemodel.Bestie, error) {
	if err := s.checkFile(f, audioTypes, videoTypes); err != nil {
		return nil, err
	}

	existing, err := s.besties.GetByID(ctx, bestieID, adminID)
	if err != nil {
		return nil, err
	}
	oldKey := ""
	if existing.SongDedicationData != nil {
		oldKey = existing.SongDedicationData.Key
	}

	key := fmt.Sprintf("bestiespace/songs/%s/%s%s", bestieID, uuid.NewString(), ext(f))
	result, err := s.blobs.Upload(ctx, key, f.Data, f.ContentType)
	if err != nil {
		return nil, fmt.Errorf("uploading song dedication: %w", err)
	}

	b, err := s.besties.UpdateSongDedication(ctx, bestieID, adminID, bestiemodel.UpdateSongDedicationRequest{
		URL:          result.URL,
		Key:          result.Key,
		ResourceType: result.ResourceType,
		Duration:     duration,
		Size:         result.Bytes,
		Format:       result.Format,
		Filename:     f.Filename,
	})
	if err != nil {
		return nil, err
	}

	s.dropOldBlob(ctx, oldKey)
	return b, nil
}

func (s *uploadService) UploadPlaylistAudio(ctx context.Context, adminID, bestieID uuid.UUID, index *int, f FileUpload, meta PlaylistAudioMeta) (*bestiemodel.Bestie, error) {
	if err := s.checkFile(f, audioTypes); err != nil {
		return nil, err
	}

	slot := "new"
	if index != nil {
		slot = fmt.Sprintf("%d", *index)
	}
	key := fmt.Sprintf("bestiespace/playlist/%s/playlist_%s_%s_%d%s",
		bestieID, bestieID, slot, time.Now().Unix(), ext(f))

	result, err := s.blobs.Upload(ctx, key, f.Data, f.ContentType)
	if err != nil {
		return nil, fmt.Errorf("uploading playlist audio: %w", err)
	}

	upload := bestiemodel.PlaylistItem{
		Title:      meta.Title,
		Artist:     meta.Artist,
		Link:       meta.Link,
		AudioURL:   result.URL,
		Key:        result.Key,
		Format:     result.Format,
		Size:       result.Bytes,
		Duration:   meta.Duration,
		Filename:   f.Filename,
		UploadedAt: time.Now(),
	}
	if index == nil && upload.Title == "" {
		upload.Title = "Untitled Song"
	}
	if index == nil && upload.Artist == "" {
		upload.Artist = "Unknown Artist"
	}

	b, oldKey, err := s.besties.AttachPlaylistAudio(ctx, bestieID, adminID, index, upload)
	if err != nil {
		return nil, err
	}

	s.dropOldBlob(ctx, oldKey)
	return b, nil
}

// checkFile enforces the size limit and the mime allow-lists.
func (s *uploadService) checkFile(f FileUpload, allowed ...map[string]bool) error {
	if int64(len(f.Data)) > s.cfg.MaxFileSizeBytes {
		return ErrFileTooLarge
	}
	for _, set := range allowed {
		if set[f.ContentType] {
			return nil
		}
	}
	return ErrUnsupportedMediaType
}

// dropOldBlob deletes a replaced blob. The operation already succeeded, so a
// failed delete is logged and swallowed.
func (s *uploadService) dropOldBlob(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if outcome := s.blobs.BestEffortDelete(ctx, key); !outcome.Succeeded {
		logger.Warn("failed to delete replaced blob", map[string]interface{}{
			"key":    key,
			"reason": outcome.Reason,
		})
	}
}

func ext(f FileUpload) string {
	if e := strings.ToLower(filepath.Ext(f.Filename)); e != "" {
		return e
	}
	// Fall back to the mime subtype when the filename has no extension.
	if i := strings.Index(f.ContentType, "/"); i >= 0 && i+1 < len(f.ContentType) {
		return "." + f.ContentType[i+1:]
	}
	return ""
}
