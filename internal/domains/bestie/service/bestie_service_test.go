package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adminmodel "bestiespace-backend/internal/domains/admin/model"
	"bestiespace-backend/internal/domains/bestie/model"
)

// fakeRepo is an in-memory BestieRepository.
type fakeRepo struct {
	besties map[uuid.UUID]*model.Bestie
	saveErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{besties: make(map[uuid.UUID]*model.Bestie)}
}

func (r *fakeRepo) Create(_ context.Context, b *model.Bestie) error {
	cp := *b
	r.besties[b.ID] = &cp
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id, adminID uuid.UUID) (*model.Bestie, error) {
	b, ok := r.besties[id]
	if !ok || b.AdminID != adminID {
		return nil, model.ErrBestieNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) FindBySecretCode(_ context.Context, code string, publishedOnly bool) (*model.Bestie, error) {
	for _, b := range r.besties {
		if b.SecretCode == code {
			if publishedOnly && !b.IsPublished {
				return nil, model.ErrBestieNotFound
			}
			cp := *b
			return &cp, nil
		}
	}
	return nil, model.ErrBestieNotFound
}

func (r *fakeRepo) ListByAdmin(_ context.Context, adminID uuid.UUID) ([]model.BestieSummary, error) {
	out := []model.BestieSummary{}
	for _, b := range r.besties {
		if b.AdminID == adminID {
			out = append(out, b.ToSummary())
		}
	}
	return out, nil
}

func (r *fakeRepo) NicknameExists(_ context.Context, adminID uuid.UUID, nickname string, exclude uuid.UUID) (bool, error) {
	for _, b := range r.besties {
		if b.AdminID == adminID && b.Nickname == nickname && b.ID != exclude {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) Save(_ context.Context, b *model.Bestie) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	if _, ok := r.besties[b.ID]; !ok {
		return model.ErrBestieNotFound
	}
	b.UpdatedAt = time.Now()
	cp := *b
	r.besties[b.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id, adminID uuid.UUID) error {
	b, ok := r.besties[id]
	if !ok || b.AdminID != adminID {
		return model.ErrBestieNotFound
	}
	delete(r.besties, id)
	return nil
}

// fakeCache records sets and deletes so tests can assert on eviction.
type fakeCache struct {
	values  map[string][]byte
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	_, ok := c.values[key]
	return ok, nil
}

func (c *fakeCache) Set(_ context.Context, key string, _ interface{}, _ time.Duration) error {
	c.values[key] = []byte("cached")
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.values, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

type fakeAdmins struct {
	admin *adminmodel.Admin
}

func (a *fakeAdmins) FindByID(_ context.Context, id uuid.UUID) (*adminmodel.Admin, error) {
	if a.admin == nil || a.admin.ID != id {
		return nil, adminmodel.ErrAdminNotFound
	}
	return a.admin, nil
}

func newTestService(t *testing.T) (BestieService, *fakeRepo, *fakeCache, uuid.UUID) {
	t.Helper()
	repo := newFakeRepo()
	cache := newFakeCache()
	adminID := uuid.New()
	admins := &fakeAdmins{admin: &adminmodel.Admin{ID: adminID, Name: "Anna", ProfilePhoto: "http://store/anna.jpg"}}
	return NewBestieService(repo, admins, cache), repo, cache, adminID
}

func mustCreate(t *testing.T, svc BestieService, adminID uuid.UUID, req model.CreateBestieRequest) *model.Bestie {
	t.Helper()
	b, err := svc.Create(context.Background(), adminID, req)
	require.NoError(t, err)
	return b
}

func TestCreate_DuplicateNickname(t *testing.T) {
	svc, _, _, adminID := newTestService(t)
	ctx := context.Background()

	mustCreate(t, svc, adminID, model.CreateBestieRequest{Name: "Anna", Nickname: "bee"})

	_, err := svc.Create(ctx, adminID, model.CreateBestieRequest{Name: "Other", Nickname: "bee"})
	assert.ErrorIs(t, err, model.ErrNicknameTaken)

	// a different admin can reuse the nickname
	otherAdmin := uuid.New()
	_, err = svc.Create(ctx, otherAdmin, model.CreateBestieRequest{Name: "Other", Nickname: "bee"})
	assert.NoError(t, err)
}

func TestDelete_FreesNickname(t *testing.T) {
	svc, _, _, adminID := newTestService(t)
	ctx := context.Background()

	b := mustCreate(t, svc, adminID, model.CreateBestieRequest{Name: "Anna", Nickname: "bee"})
	require.NoError(t, svc.Delete(ctx, b.ID, adminID))

	_, err := svc.Create(ctx, adminID, model.CreateBestieRequest{Name: "Anna", Nickname: "bee"})
	assert.NoError(t, err)
}

func TestUpdate_NicknameRename(t *testing.T) {
	svc, _, _, adminID := newTestService(t)
	ctx := context.Background()

	b := mustCreate(t, svc, adminID, model.CreateBestieRequest{Name: "Anna", Nickname: "bee"})
	mustCreate(t, svc, adminID, model.CreateBestieRequest{Name: "Betty", Nickname: "wasp"})

	// renaming onto a sibling's nickname conflicts
	taken := "wasp"
	_, err := svc.Update(ctx, b.ID, adminID, model.UpdateBestieRequest{Nickname: &taken})
	assert.ErrorIs(t, err, model.ErrNicknameTaken)

	// keeping your own nickname is not a conflict
	same := "bee"
	_, err = svc.Update(ctx, b.ID, adminID, model.UpdateBestieRequest{Nickname: &same})
	assert.NoError(t, err)
}

func TestTogglePublish_TwiceRestoresState(t *testing.T) {
	svc, _, _, adminID := newTestService(t)
	ctx := context.Background()

	b := mustCreate(t, svc, adminID, model.CreateBestieRequest{Name: "Anna", Nickname: "bee"})
	require.False(t, b.IsPublished)
	code := b.SecretCode

	b1, err := svc.TogglePublish(ctx, b.ID, adminID)
	require.NoError(t, err)
	assert.True(t, b1.IsPublished)
	assert.Equal(t, code, b1.SecretCode)

	b2, err := svc.TogglePublish(ctx, b.ID, adminID)
	require.NoError(t, err)
	assert.False(t, b2.IsPublished)
	assert.Equal(t, code, b2.SecretCode)
}

func TestGetBySecretCode_UnpublishedLooksLikeMissing(t *testing.T) {
	svc, _, _, adminID := newTestService(t)
	ctx := context.Background()

	b := mustCreate(t, svc, adminID, model.CreateBestieRequest{Name: "Anna", Nickname: "bee"})

	_, errUnpublished := svc.GetBySecretCode(ctx, b.SecretCode)
	_, errMissing := svc.GetBySecretCode(ctx, "bestie_nope")

	assert.ErrorIs(t, errUnpublished, model.ErrBestieNotFound)
	assert.ErrorIs(t, errMissing, model.ErrBestieNotFound)
	assert.Equal(t, errUnpublished, errMissing)
}

func TestGetBySecretCode_IncludesCreator(t *testing.T) {
	svc, _, cache, adminID := newTestService(t)
	ctx := context.Background()

	b := mustCreate(t, svc, adminID, model.CreateBestieRequest{Name: "Anna", Nickname: "bee", IsPublished: true})

	public, err := svc.GetBySecretCode(ctx, b.SecretCode)
	require.NoError(t, err)

	assert.Equal(t, "Anna", public.Creator.Name)
	assert.Equal(t, "http://store/anna.jpg", public.Creator.ProfilePhoto)
	assert.Contains(t, cache.values, publicCachePrefix+b.SecretCode)
}

func TestSave_EvictsPublicCache(t *testing.T) {
	svc, _, cache, adminID := newTestService(t)
	ctx := context.Background()

	b := mustCreate(t, svc, adminID, model.CreateBestieRequest{Name: "Anna", Nickname: "bee", IsPublished: true})

	_, err := svc.GetBySecretCode(ctx, b.SecretCode)
	require.NoError(t, err)
	require.Contains(t, cache.values, publicCachePrefix+b.SecretCode)

	name := "Annie"
	_, err = svc.Update(ctx, b.ID, adminID, model.UpdateBestieRequest{Name: &name})
	require.NoError(t, err)

	assert.NotContains(t, cache.values, publicCachePrefix+b.SecretCode)
}

func TestRemoveGalleryImage(t *testing.T) {
	svc, _, _, adminID := newTestService(t)
	ctx := context.Background()

	b := mustCreate(t, svc, adminID, model.CreateBestieRequest{Name: "Anna", Nickname: "bee"})

	_, err := svc.AddGalleryImage(ctx, b.ID, adminID, model.GalleryImage{URL: "http://store/a.jpg", Key: "a"})
	require.NoError(t, err)
	saved, err := svc.AddGalleryImage(ctx, b.ID, adminID, model.GalleryImage{URL: "http://store/b.jpg", Key: "b"})
	require.NoError(t, err)
	require.Len(t, saved.GalleryImages, 2)

	// unknown key leaves the gallery untouched
	_, err = svc.RemoveGalleryImage(ctx, b.ID, adminID, "missing")
	assert.ErrorIs(t, err, model.ErrImageNotFound)
	current, err := svc.GetByID(ctx, b.ID, adminID)
	require.NoError(t, err)
	assert.Len(t, current.GalleryImages, 2)

	after, err := svc.RemoveGalleryImage(ctx, b.ID, adminID, "a")
	require.NoError(t, err)
	require.Len(t, after.GalleryImages, 1)
	assert.Equal(t, "b", after.GalleryImages[0].Key)
}

func TestRemovePlaylistItem(t *testing.T) {
	svc, _, _, adminID := newTestService(t)
	ctx := context.Background()

	b := mustCreate(t, svc, adminID, model.CreateBestieRequest{Name: "Anna", Nickname: "bee"})
	_, err := svc.AddPlaylistItem(ctx, b.ID, adminID, model.PlaylistItem{Title: "First"})
	require.NoError(t, err)
	_, err = svc.AddPlaylistItem(ctx, b.ID, adminID, model.PlaylistItem{Title: "Second"})
	require.NoError(t, err)

	_, _, err = svc.RemovePlaylistItem(ctx, b.ID, adminID, 5)
	assert.ErrorIs(t, err, model.ErrInvalidIndex)

	after, removed, err := svc.RemovePlaylistItem(ctx, b.ID, adminID, 0)
	require.NoError(t, err)
	assert.Equal(t, "First", removed.Title)
	require.Len(t, after.Playlist, 1)
	assert.Equal(t, "Second", after.Playlist[0].Title)
}

func TestAttachPlaylistAudio(t *testing.T) {
	svc, _, _, adminID := newTestService(t)
	ctx := context.Background()

	b := mustCreate(t, svc, adminID, model.CreateBestieRequest{Name: "Anna", Nickname: "bee"})
	_, err := svc.AddPlaylistItem(ctx, b.ID, adminID, model.PlaylistItem{Title: "Keep Me", Key: "old-key"})
	require.NoError(t, err)

	// valid index merges and surfaces the replaced blob key
	idx := 0
	after, oldKey, err := svc.AttachPlaylistAudio(ctx, b.ID, adminID, &idx, model.PlaylistItem{AudioURL: "http://store/new.mp3", Key: "new-key"})
	require.NoError(t, err)
	assert.Equal(t, "old-key", oldKey)
	require.Len(t, after.Playlist, 1)
	assert.Equal(t, "Keep Me", after.Playlist[0].Title)
	assert.Equal(t, "new-key", after.Playlist[0].Key)

	// out-of-range index appends instead
	far := 7
	after, oldKey, err = svc.AttachPlaylistAudio(ctx, b.ID, adminID, &far, model.PlaylistItem{Title: "Appended", Key: "k2"})
	require.NoError(t, err)
	assert.Empty(t, oldKey)
	assert.Len(t, after.Playlist, 2)

	// nil index appends too
	after, oldKey, err = svc.AttachPlaylistAudio(ctx, b.ID, adminID, nil, model.PlaylistItem{Title: "Another", Key: "k3"})
	require.NoError(t, err)
	assert.Empty(t, oldKey)
	assert.Len(t, after.Playlist, 3)
}

func TestAnswerQuestion(t *testing.T) {
	svc, _, _, adminID := newTestService(t)
	ctx := context.Background()

	b := mustCreate(t, svc, adminID, model.CreateBestieRequest{
		Name:        "Anna",
		Nickname:    "bee",
		IsPublished: true,
		Questions:   []model.Question{{Question: "Favourite color?"}},
	})

	_, err := svc.AnswerQuestion(ctx, b.SecretCode, 3, "blue")
	assert.ErrorIs(t, err, model.ErrInvalidIndex)

	after, err := svc.AnswerQuestion(ctx, b.SecretCode, 0, "blue")
	require.NoError(t, err)
	assert.Equal(t, "blue", after.Questions[0].Answer)

	// answering again overwrites; last write wins
	after, err = svc.AnswerQuestion(ctx, b.SecretCode, 0, "green")
	require.NoError(t, err)
	assert.Equal(t, "green", after.Questions[0].Answer)
}

func TestAnswerQuestion_UnpublishedRejected(t *testing.T) {
	svc, _, _, adminID := newTestService(t)
	ctx := context.Background()

	b := mustCreate(t, svc, adminID, model.CreateBestieRequest{
		Name:      "Anna",
		Nickname:  "bee",
		Questions: []model.Question{{Question: "Favourite color?"}},
	})

	_, err := svc.AnswerQuestion(ctx, b.SecretCode, 0, "blue")
	assert.ErrorIs(t, err, model.ErrBestieNotFound)
}

func TestSubmitMessage(t *testing.T) {
	svc, _, _, adminID := newTestService(t)
	ctx := context.Background()

	b := mustCreate(t, svc, adminID, model.CreateBestieRequest{Name: "Anna", Nickname: "bee", IsPublished: true})

	// default aggregate ships two message slots
	after, err := svc.SubmitMessage(ctx, b.SecretCode, 1, "miss you")
	require.NoError(t, err)
	assert.Equal(t, []string{"", "miss you"}, after.Messages)

	_, err = svc.SubmitMessage(ctx, b.SecretCode, 2, "overflow")
	assert.ErrorIs(t, err, model.ErrInvalidIndex)

	// overwriting an occupied slot is allowed
	after, err = svc.SubmitMessage(ctx, b.SecretCode, 1, "new text")
	require.NoError(t, err)
	assert.Equal(t, "new text", after.Messages[1])
}

func TestUpdate_MergesSongDedicationData(t *testing.T) {
	svc, _, _, adminID := newTestService(t)
	ctx := context.Background()

	b := mustCreate(t, svc, adminID, model.CreateBestieRequest{Name: "Anna", Nickname: "bee"})

	_, err := svc.UpdateSongDedication(ctx, b.ID, adminID, model.UpdateSongDedicationRequest{
		URL: "http://store/song.mp3", Key: "song-key", Format: "mp3",
	})
	require.NoError(t, err)

	// a metadata patch must not wipe the blob fields
	duration := 123.0
	after, err := svc.Update(ctx, b.ID, adminID, model.UpdateBestieRequest{
		SongDedicationData: &model.SongDedicationPatch{Duration: &duration},
	})
	require.NoError(t, err)
	require.NotNil(t, after.SongDedicationData)
	assert.Equal(t, "song-key", after.SongDedicationData.Key)
	assert.Equal(t, duration, after.SongDedicationData.Duration)
}
