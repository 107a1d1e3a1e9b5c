package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bestiespace-backend/internal/domains/admin/model"
	"bestiespace-backend/pkg/jwt"
)

type fakeAdminRepo struct {
	byID    map[uuid.UUID]*model.Admin
	byEmail map[string]*model.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{
		byID:    make(map[uuid.UUID]*model.Admin),
		byEmail: make(map[string]*model.Admin),
	}
}

func (r *fakeAdminRepo) Create(_ context.Context, admin *model.Admin) error {
	cp := *admin
	r.byID[admin.ID] = &cp
	r.byEmail[admin.Email] = &cp
	return nil
}

func (r *fakeAdminRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Admin, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, model.ErrAdminNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAdminRepo) FindByEmail(_ context.Context, email string) (*model.Admin, error) {
	a, ok := r.byEmail[email]
	if !ok {
		return nil, model.ErrAdminNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAdminRepo) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *fakeAdminRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	a, ok := r.byID[id]
	if !ok {
		return model.ErrAdminNotFound
	}
	a.Password = hash
	return nil
}

func (r *fakeAdminRepo) UpdateProfilePhoto(_ context.Context, id uuid.UUID, url, key string) error {
	a, ok := r.byID[id]
	if !ok {
		return model.ErrAdminNotFound
	}
	a.ProfilePhoto = url
	a.ProfilePhotoKey = key
	return nil
}

func newTestService() (AdminService, *fakeAdminRepo) {
	repo := newFakeAdminRepo()
	return NewAdminService(repo, jwt.NewManager("test-secret", 1)), repo
}

func TestSignupAndLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	auth, err := svc.Signup(ctx, model.SignupRequest{Name: "Anna", Email: "Anna@Example.com", Password: "hunter2"})
	require.NoError(t, err)
	assert.NotEmpty(t, auth.Token)
	// emails are normalized to lowercase
	assert.Equal(t, "anna@example.com", auth.Admin.Email)

	login, err := svc.Login(ctx, model.LoginRequest{Email: "anna@example.com", Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, auth.Admin.ID, login.Admin.ID)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, model.SignupRequest{Name: "Anna", Email: "anna@example.com", Password: "hunter2"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, model.SignupRequest{Name: "Other", Email: "anna@example.com", Password: "hunter2"})
	assert.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, model.SignupRequest{Name: "Anna", Email: "anna@example.com", Password: "hunter2"})
	require.NoError(t, err)

	// wrong password and unknown email produce the same error
	_, errWrongPass := svc.Login(ctx, model.LoginRequest{Email: "anna@example.com", Password: "nope"})
	_, errNoAccount := svc.Login(ctx, model.LoginRequest{Email: "ghost@example.com", Password: "hunter2"})

	assert.ErrorIs(t, errWrongPass, model.ErrInvalidCredentials)
	assert.ErrorIs(t, errNoAccount, model.ErrInvalidCredentials)
}

func TestUpdatePassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	auth, err := svc.Signup(ctx, model.SignupRequest{Name: "Anna", Email: "anna@example.com", Password: "hunter2"})
	require.NoError(t, err)

	err = svc.UpdatePassword(ctx, auth.Admin.ID, model.UpdatePasswordRequest{
		CurrentPassword: "wrong", NewPassword: "newpass1",
	})
	assert.ErrorIs(t, err, model.ErrWrongPassword)

	err = svc.UpdatePassword(ctx, auth.Admin.ID, model.UpdatePasswordRequest{
		CurrentPassword: "hunter2", NewPassword: "newpass1",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, model.LoginRequest{Email: "anna@example.com", Password: "newpass1"})
	assert.NoError(t, err)
	_, err = svc.Login(ctx, model.LoginRequest{Email: "anna@example.com", Password: "hunter2"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestGetProfile(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	auth, err := svc.Signup(ctx, model.SignupRequest{Name: "Anna", Email: "anna@example.com", Password: "hunter2"})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateProfilePhoto(ctx, auth.Admin.ID, "http://blob/anna.jpg", "anna-key"))

	profile, err := svc.GetProfile(ctx, auth.Admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anna", profile.Name)
	assert.Equal(t, "http://blob/anna.jpg", profile.ProfilePhoto)

	_, err = svc.GetProfile(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrAdminNotFound)
}
