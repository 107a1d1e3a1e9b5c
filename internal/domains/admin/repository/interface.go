package repository

import (
	"context"

	"github.com/google/uuid"

	"bestiespace-backend/internal/domains/admin/model"
)

type AdminRepository interface {
	Create(ctx context.Context, admin *model.Admin) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Admin, error)
	FindByEmail(ctx context.Context, email string) (*model.Admin, error)
	EmailExists(ctx context.Context, email string) (bool, error)

	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// UpdateProfilePhoto stores both the public URL and the blob key so the
	// previous photo can be deleted on replacement.
	UpdateProfilePhoto(ctx context.Context, id uuid.UUID, url, key string) error
}
