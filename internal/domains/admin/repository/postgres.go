package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bestiespace-backend/internal/domains/admin/model"
)

const adminColumns = `
	id, name, email, password, profile_photo, profile_photo_key, created_at, updated_at
`

type adminRepo struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) Create(ctx context.Context, admin *model.Admin) error {
	query := `
		INSERT INTO admins (id, name, email, password, profile_photo, profile_photo_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		admin.ID, admin.Name, admin.Email, admin.Password,
		admin.ProfilePhoto, admin.ProfilePhotoKey, admin.CreatedAt, admin.UpdatedAt,
	)
	return err
}

func (r *adminRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *adminRepo) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE email = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, email))
}

func (r *adminRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM admins WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *adminRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE admins SET password = $2, updated_at = $3 WHERE id = $1`,
		id, passwordHash, time.Now(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAdminNotFound
	}
	return nil
}

func (r *adminRepo) UpdateProfilePhoto(ctx context.Context, id uuid.UUID, url, key string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE admins SET profile_photo = $2, profile_photo_key = $3, updated_at = $4 WHERE id = $1`,
		id, url, key, time.Now(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAdminNotFound
	}
	return nil
}

func (r *adminRepo) scanOne(row pgx.Row) (*model.Admin, error) {
	a := &model.Admin{}
	err := row.Scan(
		&a.ID, &a.Name, &a.Email, &a.Password,
		&a.ProfilePhoto, &a.ProfilePhotoKey, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}
