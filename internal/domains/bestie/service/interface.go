package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	adminmodel "bestiespace-backend/internal/domains/admin/model"
	"bestiespace-backend/internal/domains/bestie/model"
)

// BestieService is the owner-scoped and public surface of the aggregate.
// Owner operations take (id, adminID); public operations take the secret code
// and only ever see published besties.
type BestieService interface {
	Create(ctx context.Context, adminID uuid.UUID, req model.CreateBestieRequest) (*model.Bestie, error)
	List(ctx context.Context, adminID uuid.UUID) ([]model.BestieSummary, error)
	GetByID(ctx context.Context, id, adminID uuid.UUID) (*model.Bestie, error)
	Update(ctx context.Context, id, adminID uuid.UUID, req model.UpdateBestieRequest) (*model.Bestie, error)
	Delete(ctx context.Context, id, adminID uuid.UUID) error
	TogglePublish(ctx context.Context, id, adminID uuid.UUID) (*model.Bestie, error)

	AddGalleryImage(ctx context.Context, id, adminID uuid.UUID, img model.GalleryImage) (*model.Bestie, error)
	RemoveGalleryImage(ctx context.Context, id, adminID uuid.UUID, key string) (*model.Bestie, error)

	UpdateSongDedication(ctx context.Context, id, adminID uuid.UUID, req model.UpdateSongDedicationRequest) (*model.Bestie, error)

	AddPlaylistItem(ctx context.Context, id, adminID uuid.UUID, item model.PlaylistItem) (*model.Bestie, error)

	// AttachPlaylistAudio places an uploaded audio item. A valid index merges
	// the upload into the existing item and returns that item's previous blob
	// key; a nil or out-of-range index appends and returns an empty key.
	AttachPlaylistAudio(ctx context.Context, id, adminID uuid.UUID, index *int, upload model.PlaylistItem) (*model.Bestie, string, error)
	RemovePlaylistItem(ctx context.Context, id, adminID uuid.UUID, index int) (*model.Bestie, *model.PlaylistItem, error)
	UpdatePlaylistItem(ctx context.Context, id, adminID uuid.UUID, index int, req model.UpdatePlaylistItemRequest) (*model.Bestie, error)

	GetBySecretCode(ctx context.Context, code string) (*model.PublicBestie, error)
	AnswerQuestion(ctx context.Context, code string, index int, answer string) (*model.Bestie, error)
	SubmitMessage(ctx context.Context, code string, index int, message string) (*model.Bestie, error)
}

// AdminLookup is the slice of the admin repository the public projection
// needs to build its Creator block.
type AdminLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*adminmodel.Admin, error)
}

// Cache is the consumer-side view of the cache layer. The redis
// implementation satisfies it; tests use an in-memory fake.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
