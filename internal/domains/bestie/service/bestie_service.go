package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"bestiespace-backend/internal/domains/bestie/model"
	"bestiespace-backend/internal/domains/bestie/repository"
	"bestiespace-backend/pkg/logger"
)

const (
	publicCachePrefix = "bestie:public:"
	publicCacheTTL    = 60 * time.Second
)

type bestieService struct {
	repo   repository.BestieRepository
	admins AdminLookup
	cache  Cache
}

func NewBestieService(repo repository.BestieRepository, admins AdminLookup, cache Cache) BestieService {
	return &bestieService{repo: repo, admins: admins, cache: cache}
}

// ========================================
// OWNER OPERATIONS
// ========================================

func (s *bestieService) Create(ctx context.Context, adminID uuid.UUID, req model.CreateBestieRequest) (*model.Bestie, error) {
	req.Nickname = strings.TrimSpace(req.Nickname)

	taken, err := s.repo.NicknameExists(ctx, adminID, req.Nickname, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("checking nickname: %w", err)
	}
	if taken {
		return nil, model.ErrNicknameTaken
	}

	b := model.NewBestie(adminID, req)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("creating bestie: %w", err)
	}
	return b, nil
}

func (s *bestieService) List(ctx context.Context, adminID uuid.UUID) ([]model.BestieSummary, error) {
	return s.repo.ListByAdmin(ctx, adminID)
}

func (s *bestieService) GetByID(ctx context.Context, id, adminID uuid.UUID) (*model.Bestie, error) {
	return s.repo.FindByID(ctx, id, adminID)
}

func (s *bestieService) Update(ctx context.Context, id, adminID uuid.UUID, req model.UpdateBestieRequest) (*model.Bestie, error) {
	b, err := s.repo.FindByID(ctx, id, adminID)
	if err != nil {
		return nil, err
	}

	if req.Nickname != nil {
		nickname := strings.TrimSpace(*req.Nickname)
		if nickname != b.Nickname {
			taken, err := s.repo.NicknameExists(ctx, adminID, nickname, b.ID)
			if err != nil {
				return nil, fmt.Errorf("checking nickname: %w", err)
			}
			if taken {
				return nil, model.ErrNicknameTaken
			}
		}
		b.Nickname = nickname
	}
	if req.Name != nil {
		b.Name = *req.Name
	}
	if req.SongDedication != nil {
		b.SongDedication = *req.SongDedication
	}
	if req.IsPublished != nil {
		b.IsPublished = *req.IsPublished
	}
	if req.Messages != nil {
		b.Messages = req.Messages
	}
	if req.Playlist != nil {
		b.Playlist = req.Playlist
	}
	if req.Jokes != nil {
		b.Jokes = req.Jokes
	}
	if req.Questions != nil {
		b.Questions = req.Questions
	}
	if req.Reasons != nil {
		b.Reasons = req.Reasons
	}
	if req.GalleryImages != nil {
		b.GalleryImages = req.GalleryImages
	}
	if req.SongDedicationData != nil {
		if b.SongDedicationData == nil {
			b.SongDedicationData = &model.SongDedicationData{}
		}
		b.SongDedicationData.Merge(*req.SongDedicationData)
	}

	return s.save(ctx, b)
}

func (s *bestieService) Delete(ctx context.Context, id, adminID uuid.UUID) error {
	// Load first so the cached public projection can be evicted by code.
	b, err := s.repo.FindByID(ctx, id, adminID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id, adminID); err != nil {
		return err
	}
	s.invalidate(ctx, b.SecretCode)
	return nil
}

func (s *bestieService) TogglePublish(ctx context.Context, id, adminID uuid.UUID) (*model.Bestie, error) {
	b, err := s.repo.FindByID(ctx, id, adminID)
	if err != nil {
		return nil, err
	}
	b.IsPublished = !b.IsPublished
	return s.save(ctx, b)
}

// ========================================
// GALLERY
// ========================================

func (s *bestieService) AddGalleryImage(ctx context.Context, id, adminID uuid.UUID, img model.GalleryImage) (*model.Bestie, error) {
	b, err := s.repo.FindByID(ctx, id, adminID)
	if err != nil {
		return nil, err
	}
	if img.UploadedAt.IsZero() {
		img.UploadedAt = time.Now()
	}
	b.GalleryImages = append(b.GalleryImages, img)
	return s.save(ctx, b)
}

func (s *bestieService) RemoveGalleryImage(ctx context.Context, id, adminID uuid.UUID, key string) (*model.Bestie, error) {
	b, err := s.repo.FindByID(ctx, id, adminID)
	if err != nil {
		return nil, err
	}

	kept := make([]model.GalleryImage, 0, len(b.GalleryImages))
	for _, img := range b.GalleryImages {
		if img.Key != key {
			kept = append(kept, img)
		}
	}
	if len(kept) == len(b.GalleryImages) {
		return nil, model.ErrImageNotFound
	}
	b.GalleryImages = kept

	// The blob itself is left behind; removal only edits the document.
	return s.save(ctx, b)
}

// ========================================
// SONG DEDICATION
// ========================================

func (s *bestieService) UpdateSongDedication(ctx context.Context, id, adminID uuid.UUID, req model.UpdateSongDedicationRequest) (*model.Bestie, error) {
	b, err := s.repo.FindByID(ctx, id, adminID)
	if err != nil {
		return nil, err
	}

	b.SongDedication = req.URL
	b.SongDedicationData = &model.SongDedicationData{
		URL:          req.URL,
		Key:          req.Key,
		ResourceType: req.ResourceType,
		Duration:     req.Duration,
		Size:         req.Size,
		Format:       req.Format,
		Filename:     req.Filename,
		UploadedAt:   time.Now(),
	}
	return s.save(ctx, b)
}

// ========================================
// PLAYLIST
// ========================================

func (s *bestieService) AddPlaylistItem(ctx context.Context, id, adminID uuid.UUID, item model.PlaylistItem) (*model.Bestie, error) {
	b, err := s.repo.FindByID(ctx, id, adminID)
	if err != nil {
		return nil, err
	}
	if item.UploadedAt.IsZero() {
		item.UploadedAt = time.Now()
	}
	b.Playlist = append(b.Playlist, item)
	return s.save(ctx, b)
}

func (s *bestieService) RemovePlaylistItem(ctx context.Context, id, adminID uuid.UUID, index int) (*model.Bestie, *model.PlaylistItem, error) {
	b, err := s.repo.FindByID(ctx, id, adminID)
	if err != nil {
		return nil, nil, err
	}
	if err := model.ValidIndex(len(b.Playlist), index); err != nil {
		return nil, nil, err
	}

	removed := b.Playlist[index]
	b.Playlist = append(b.Playlist[:index], b.Playlist[index+1:]...)

	saved, err := s.save(ctx, b)
	if err != nil {
		return nil, nil, err
	}
	return saved, &removed, nil
}

func (s *bestieService) AttachPlaylistAudio(ctx context.Context, id, adminID uuid.UUID, index *int, upload model.PlaylistItem) (*model.Bestie, string, error) {
	b, err := s.repo.FindByID(ctx, id, adminID)
	if err != nil {
		return nil, "", err
	}

	oldKey := ""
	if index != nil && model.ValidIndex(len(b.Playlist), *index) == nil {
		oldKey = b.Playlist[*index].Key
		b.Playlist[*index] = model.MergeAudio(b.Playlist[*index], upload)
	} else {
		// No usable slot to replace; the upload becomes a new item.
		b.Playlist = append(b.Playlist, upload)
	}

	saved, err := s.save(ctx, b)
	if err != nil {
		return nil, "", err
	}
	return saved, oldKey, nil
}

func (s *bestieService) UpdatePlaylistItem(ctx context.Context, id, adminID uuid.UUID, index int, req model.UpdatePlaylistItemRequest) (*model.Bestie, error) {
	b, err := s.repo.FindByID(ctx, id, adminID)
	if err != nil {
		return nil, err
	}
	if err := model.ValidIndex(len(b.Playlist), index); err != nil {
		return nil, err
	}

	item := &b.Playlist[index]
	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Artist != nil {
		item.Artist = *req.Artist
	}
	if req.Link != nil {
		item.Link = *req.Link
	}
	return s.save(ctx, b)
}

// ========================================
// PUBLIC OPERATIONS
// ========================================

func (s *bestieService) GetBySecretCode(ctx context.Context, code string) (*model.PublicBestie, error) {
	cacheKey := publicCachePrefix + code

	var cached model.PublicBestie
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
		logger.Warn("public cache read failed", map[string]interface{}{"error": err.Error()})
	} else if hit {
		return &cached, nil
	}

	b, err := s.repo.FindBySecretCode(ctx, code, true)
	if err != nil {
		return nil, err
	}

	admin, err := s.admins.FindByID(ctx, b.AdminID)
	if err != nil {
		return nil, fmt.Errorf("loading creator: %w", err)
	}
	public := b.ToPublic(model.Creator{
		ID:           admin.ID,
		Name:         admin.Name,
		ProfilePhoto: admin.ProfilePhoto,
	})

	if err := s.cache.Set(ctx, cacheKey, public, publicCacheTTL); err != nil {
		logger.Warn("public cache write failed", map[string]interface{}{"error": err.Error()})
	}
	return &public, nil
}

func (s *bestieService) AnswerQuestion(ctx context.Context, code string, index int, answer string) (*model.Bestie, error) {
	b, err := s.repo.FindBySecretCode(ctx, code, true)
	if err != nil {
		return nil, err
	}
	if err := model.ValidIndex(len(b.Questions), index); err != nil {
		return nil, err
	}

	// Last write wins; concurrent visitors simply overwrite each other.
	b.Questions[index].Answer = answer
	return s.save(ctx, b)
}

func (s *bestieService) SubmitMessage(ctx context.Context, code string, index int, message string) (*model.Bestie, error) {
	b, err := s.repo.FindBySecretCode(ctx, code, true)
	if err != nil {
		return nil, err
	}
	if err := model.ValidIndex(len(b.Messages), index); err != nil {
		return nil, err
	}

	b.Messages[index] = message
	return s.save(ctx, b)
}

// ========================================
// INTERNAL
// ========================================

// save persists the aggregate and evicts its public projection so visitors
// never see a projection older than the cache TTL after a write.
func (s *bestieService) save(ctx context.Context, b *model.Bestie) (*model.Bestie, error) {
	if err := s.repo.Save(ctx, b); err != nil {
		return nil, fmt.Errorf("saving bestie: %w", err)
	}
	s.invalidate(ctx, b.SecretCode)
	return b, nil
}

func (s *bestieService) invalidate(ctx context.Context, code string) {
	if code == "" {
		return
	}
	if err := s.cache.Delete(ctx, publicCachePrefix+code); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("public cache eviction failed", map[string]interface{}{
			"secret_code": code,
			"error":       err.Error(),
		})
	}
}
