package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bestiespace-backend/internal/domains/admin/model"
	"bestiespace-backend/internal/domains/admin/repository"
	"bestiespace-backend/pkg/jwt"
)

const bcryptCost = 12

type AdminService interface {
	Signup(ctx context.Context, req model.SignupRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)
	GetProfile(ctx context.Context, adminID uuid.UUID) (*model.AdminDTO, error)
	UpdatePassword(ctx context.Context, adminID uuid.UUID, req model.UpdatePasswordRequest) error
}

type adminService struct {
	repo       repository.AdminRepository
	jwtManager *jwt.Manager
}

func NewAdminService(repo repository.AdminRepository, jwtManager *jwt.Manager) AdminService {
	return &adminService{repo: repo, jwtManager: jwtManager}
}

func (s *adminService) Signup(ctx context.Context, req model.SignupRequest) (*model.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if taken {
		return nil, model.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	admin := &model.Admin{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		Password:  string(hash),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("creating admin: %w", err)
	}

	return s.authResponse(admin)
}

func (s *adminService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	admin, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrAdminNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("finding admin: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)) != nil {
		return nil, model.ErrInvalidCredentials
	}

	return s.authResponse(admin)
}

func (s *adminService) GetProfile(ctx context.Context, adminID uuid.UUID) (*model.AdminDTO, error) {
	admin, err := s.repo.FindByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	dto := admin.ToDTO()
	return &dto, nil
}

func (s *adminService) UpdatePassword(ctx context.Context, adminID uuid.UUID, req model.UpdatePasswordRequest) error {
	admin, err := s.repo.FindByID(ctx, adminID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.CurrentPassword)) != nil {
		return model.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, adminID, string(hash))
}

func (s *adminService) authResponse(admin *model.Admin) (*model.AuthResponse, error) {
	token, err := s.jwtManager.GenerateToken(admin.ID.String(), admin.Email)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}
	return &model.AuthResponse{Token: token, Admin: admin.ToDTO()}, nil
}
