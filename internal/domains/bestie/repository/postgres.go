package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bestiespace-backend/internal/domains/bestie/model"
)

const bestieColumns = `
	id, admin_id, name, nickname, secret_code, is_published,
	song_dedication, song_dedication_data, messages, gallery_images,
	playlist, jokes, questions, reasons, created_at, updated_at
`

type bestieRepo struct {
	db *pgxpool.Pool
}

func NewBestieRepository(db *pgxpool.Pool) BestieRepository {
	return &bestieRepo{db: db}
}

func (r *bestieRepo) Create(ctx context.Context, b *model.Bestie) error {
	query := `
		INSERT INTO besties (
			id, admin_id, name, nickname, secret_code, is_published,
			song_dedication, song_dedication_data, messages, gallery_images,
			playlist, jokes, questions, reasons, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := r.db.Exec(ctx, query,
		b.ID, b.AdminID, b.Name, b.Nickname, b.SecretCode, b.IsPublished,
		b.SongDedication, b.SongDedicationData, b.Messages, b.GalleryImages,
		b.Playlist, b.Jokes, b.Questions, b.Reasons, b.CreatedAt, b.UpdatedAt,
	)
	return err
}

func (r *bestieRepo) FindByID(ctx context.Context, id, adminID uuid.UUID) (*model.Bestie, error) {
	query := `
		SELECT ` + bestieColumns + `
		FROM besties
		WHERE id = $1 AND admin_id = $2
	`
	return r.scanOne(r.db.QueryRow(ctx, query, id, adminID))
}

func (r *bestieRepo) FindBySecretCode(ctx context.Context, code string, publishedOnly bool) (*model.Bestie, error) {
	query := `
		SELECT ` + bestieColumns + `
		FROM besties
		WHERE secret_code = $1 AND ($2 = false OR is_published = true)
	`
	return r.scanOne(r.db.QueryRow(ctx, query, code, publishedOnly))
}

func (r *bestieRepo) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]model.BestieSummary, error) {
	query := `
		SELECT id, name, nickname, secret_code, is_published, created_at, updated_at
		FROM besties
		WHERE admin_id = $1
		ORDER BY updated_at DESC
	`
	rows, err := r.db.Query(ctx, query, adminID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []model.BestieSummary{}
	for rows.Next() {
		var s model.BestieSummary
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Nickname, &s.SecretCode,
			&s.IsPublished, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *bestieRepo) NicknameExists(ctx context.Context, adminID uuid.UUID, nickname string, exclude uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM besties
			WHERE admin_id = $1 AND nickname = $2 AND id <> $3
		)
	`
	var exists bool
	err := r.db.QueryRow(ctx, query, adminID, nickname, exclude).Scan(&exists)
	return exists, err
}

func (r *bestieRepo) Save(ctx context.Context, b *model.Bestie) error {
	b.UpdatedAt = time.Now()

	query := `
		UPDATE besties SET
			name = $2, nickname = $3, is_published = $4,
			song_dedication = $5, song_dedication_data = $6, messages = $7,
			gallery_images = $8, playlist = $9, jokes = $10, questions = $11,
			reasons = $12, updated_at = $13
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		b.ID, b.Name, b.Nickname, b.IsPublished,
		b.SongDedication, b.SongDedicationData, b.Messages,
		b.GalleryImages, b.Playlist, b.Jokes, b.Questions,
		b.Reasons, b.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBestieNotFound
	}
	return nil
}

func (r *bestieRepo) Delete(ctx context.Context, id, adminID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM besties WHERE id = $1 AND admin_id = $2`, id, adminID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBestieNotFound
	}
	return nil
}

func (r *bestieRepo) scanOne(row pgx.Row) (*model.Bestie, error) {
	b := &model.Bestie{}
	err := row.Scan(
		&b.ID, &b.AdminID, &b.Name, &b.Nickname, &b.SecretCode, &b.IsPublished,
		&b.SongDedication, &b.SongDedicationData, &b.Messages, &b.GalleryImages,
		&b.Playlist, &b.Jokes, &b.Questions, &b.Reasons, &b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrBestieNotFound
	}
	if err != nil {
		return nil, err
	}
	b.Normalize()
	return b, nil
}
