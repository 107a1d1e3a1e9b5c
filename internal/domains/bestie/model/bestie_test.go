package model

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSecretCode(t *testing.T) {
	code := NewSecretCode()

	assert.True(t, strings.HasPrefix(code, "bestie_"))
	assert.Len(t, code, len("bestie_")+12)

	for _, r := range strings.TrimPrefix(code, "bestie_") {
		assert.Contains(t, base62Alphabet, string(r))
	}
}

func TestNewSecretCode_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code := NewSecretCode()
		require.False(t, seen[code], "duplicate code generated: %s", code)
		seen[code] = true
	}
}

func TestEnsureSecretCode(t *testing.T) {
	b := &Bestie{}

	assert.True(t, b.EnsureSecretCode())
	first := b.SecretCode
	require.NotEmpty(t, first)

	// a second call must not rotate the code
	assert.False(t, b.EnsureSecretCode())
	assert.Equal(t, first, b.SecretCode)
}

func TestValidIndex(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		index   int
		wantErr bool
	}{
		{"first element", 3, 0, false},
		{"last element", 3, 2, false},
		{"negative", 3, -1, true},
		{"equal to length", 3, 3, true},
		{"far out of range", 3, 100, true},
		{"empty collection", 0, 0, true},
		{"empty collection negative", 0, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidIndex(tt.length, tt.index)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidIndex)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalize_Defaults(t *testing.T) {
	b := &Bestie{}
	b.Normalize()

	assert.Equal(t, []string{"", ""}, b.Messages)
	assert.NotNil(t, b.GalleryImages)
	assert.NotNil(t, b.Playlist)
	assert.NotNil(t, b.Jokes)
	assert.NotNil(t, b.Questions)
	assert.NotNil(t, b.Reasons)
}

func TestNormalize_KeepsExistingMessages(t *testing.T) {
	b := &Bestie{Messages: []string{"hello", "world", "third"}}
	b.Normalize()
	assert.Equal(t, []string{"hello", "world", "third"}, b.Messages)
}

func TestNewBestie(t *testing.T) {
	adminID := uuid.New()
	b := NewBestie(adminID, CreateBestieRequest{Name: "Anna", Nickname: "bee"})

	assert.NotEqual(t, uuid.Nil, b.ID)
	assert.Equal(t, adminID, b.AdminID)
	assert.True(t, strings.HasPrefix(b.SecretCode, "bestie_"))
	assert.False(t, b.IsPublished)
	assert.Equal(t, []string{"", ""}, b.Messages)
	assert.Empty(t, b.Playlist)
}

func TestMergeAudio(t *testing.T) {
	existing := PlaylistItem{
		Title:    "Our Song",
		Artist:   "Someone",
		Link:     "https://example.com/song",
		AudioURL: "http://store/old.mp3",
		Key:      "old-key",
		Duration: 180,
	}
	upload := PlaylistItem{
		AudioURL:   "http://store/new.mp3",
		Key:        "new-key",
		Format:     "mp3",
		Size:       1024,
		Duration:   200,
		Filename:   "new.mp3",
		UploadedAt: time.Now(),
	}

	merged := MergeAudio(existing, upload)

	assert.Equal(t, "Our Song", merged.Title)
	assert.Equal(t, "Someone", merged.Artist)
	assert.Equal(t, "https://example.com/song", merged.Link)
	assert.Equal(t, "http://store/new.mp3", merged.AudioURL)
	assert.Equal(t, "new-key", merged.Key)
	assert.Equal(t, float64(200), merged.Duration)
	assert.Equal(t, upload.UploadedAt, merged.UploadedAt)
}

func TestMergeAudio_UploadOverridesMetadata(t *testing.T) {
	existing := PlaylistItem{Title: "Old Title", Artist: "Old Artist"}
	upload := PlaylistItem{Title: "New Title", Key: "k"}

	merged := MergeAudio(existing, upload)

	assert.Equal(t, "New Title", merged.Title)
	assert.Equal(t, "Old Artist", merged.Artist)
}

func TestSongDedicationDataMerge(t *testing.T) {
	url := "http://store/song.mp3"
	duration := 215.5

	s := &SongDedicationData{
		URL:      "http://store/old.mp3",
		Key:      "old-key",
		Format:   "wav",
		Duration: 100,
	}
	s.Merge(SongDedicationPatch{URL: &url, Duration: &duration})

	assert.Equal(t, url, s.URL)
	assert.Equal(t, duration, s.Duration)
	// untouched fields survive
	assert.Equal(t, "old-key", s.Key)
	assert.Equal(t, "wav", s.Format)
	assert.False(t, s.UploadedAt.IsZero())
}

func TestAddPlaylistItemRequest_ToItem_Defaults(t *testing.T) {
	item := AddPlaylistItemRequest{}.ToItem()
	assert.Equal(t, "Untitled Song", item.Title)
	assert.Equal(t, "Unknown Artist", item.Artist)

	item = AddPlaylistItemRequest{Title: "Song", Artist: "Band"}.ToItem()
	assert.Equal(t, "Song", item.Title)
	assert.Equal(t, "Band", item.Artist)
}

func TestCreateBestieRequestValidate(t *testing.T) {
	assert.NoError(t, CreateBestieRequest{Name: "Anna", Nickname: "bee"}.Validate())
	assert.Error(t, CreateBestieRequest{Nickname: "bee"}.Validate())
	assert.Error(t, CreateBestieRequest{Name: "Anna"}.Validate())
}

func TestAnswerQuestionRequestValidate(t *testing.T) {
	zero := 0
	assert.NoError(t, AnswerQuestionRequest{QuestionIndex: &zero, Answer: "yes"}.Validate())
	assert.Error(t, AnswerQuestionRequest{Answer: "yes"}.Validate())
	assert.Error(t, AnswerQuestionRequest{QuestionIndex: &zero}.Validate())
}
