package repository

import (
	"context"

	"github.com/google/uuid"

	"bestiespace-backend/internal/domains/bestie/model"
)

// BestieRepository is the document-store boundary for the aggregate. Every
// mutation is a whole-document save; there is no partial update path.
type BestieRepository interface {
	Create(ctx context.Context, b *model.Bestie) error

	// FindByID is owner-scoped: a bestie owned by a different admin is
	// indistinguishable from a missing one.
	FindByID(ctx context.Context, id, adminID uuid.UUID) (*model.Bestie, error)

	// FindBySecretCode is the public lookup. With publishedOnly set, an
	// unpublished bestie is reported as not found.
	FindBySecretCode(ctx context.Context, code string, publishedOnly bool) (*model.Bestie, error)

	// ListByAdmin returns summaries ordered by most recent update first.
	ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]model.BestieSummary, error)

	// NicknameExists checks per-admin nickname uniqueness, optionally
	// excluding one bestie (for renames).
	NicknameExists(ctx context.Context, adminID uuid.UUID, nickname string, exclude uuid.UUID) (bool, error)

	// Save persists the full aggregate state and refreshes updated_at.
	Save(ctx context.Context, b *model.Bestie) error

	Delete(ctx context.Context, id, adminID uuid.UUID) error
}
