package model

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// Bestie is the shareable profile aggregate. The whole document, including
// every sub-collection, is one consistency boundary: mutations load it,
// change one piece and save it back.
type Bestie struct {
	ID       uuid.UUID `json:"id"`
	AdminID  uuid.UUID `json:"adminId"`
	Name     string    `json:"name"`
	Nickname string    `json:"nickname"`

	// SecretCode is the sole public lookup key. Assigned once at creation,
	// immutable afterwards.
	SecretCode  string `json:"secretCode"`
	IsPublished bool   `json:"isPublished"`

	// SongDedication mirrors SongDedicationData.URL for convenience.
	SongDedication     string              `json:"songDedication"`
	SongDedicationData *SongDedicationData `json:"songDedicationData,omitempty"`

	// Messages are fixed slots a visitor overwrites by index.
	Messages      []string       `json:"messages"`
	GalleryImages []GalleryImage `json:"galleryImages"`
	Playlist      []PlaylistItem `json:"playlist"`
	Jokes         []string       `json:"jokes"`
	Questions     []Question     `json:"questions"`
	Reasons       []string       `json:"reasons"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type GalleryImage struct {
	URL        string    `json:"url"`
	Key        string    `json:"key"`
	Format     string    `json:"format"`
	Size       int64     `json:"size"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type PlaylistItem struct {
	Title      string    `json:"title"`
	Artist     string    `json:"artist"`
	Link       string    `json:"link"`
	AudioURL   string    `json:"audioUrl"`
	Key        string    `json:"key"`
	Format     string    `json:"format"`
	Size       int64     `json:"size"`
	Duration   float64   `json:"duration"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type SongDedicationData struct {
	URL          string    `json:"url"`
	Key          string    `json:"key"`
	ResourceType string    `json:"resourceType"`
	Duration     float64   `json:"duration"`
	Size         int64     `json:"size"`
	Format       string    `json:"format"`
	Filename     string    `json:"filename"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

type Question struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

const (
	secretCodePrefix = "bestie_"
	secretCodeLength = 12
)

const base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// NewSecretCode generates an opaque share token: "bestie_" plus 12 base62
// characters (~71 bits of entropy).
func NewSecretCode() string {
	buf := make([]byte, secretCodeLength)
	max := big.NewInt(int64(len(base62Alphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing means the process has bigger problems
			panic(err)
		}
		buf[i] = base62Alphabet[n.Int64()]
	}
	return secretCodePrefix + string(buf)
}

// EnsureSecretCode assigns a secret code if one is not set yet. Idempotent:
// an existing code is never replaced. Reports whether a code was assigned.
func (b *Bestie) EnsureSecretCode() bool {
	if b.SecretCode != "" {
		return false
	}
	b.SecretCode = NewSecretCode()
	return true
}

// ValidIndex is the bounds check every index-addressed mutation goes through.
// An out-of-range index is a rejected operation, never an auto-append.
func ValidIndex(length, index int) error {
	if index < 0 || index >= length {
		return ErrInvalidIndex
	}
	return nil
}

// Normalize fills the defaults a freshly created aggregate must have:
// two empty message slots and empty (not nil) sub-collections.
func (b *Bestie) Normalize() {
	if len(b.Messages) == 0 {
		b.Messages = []string{"", ""}
	}
	if b.GalleryImages == nil {
		b.GalleryImages = []GalleryImage{}
	}
	if b.Playlist == nil {
		b.Playlist = []PlaylistItem{}
	}
	if b.Jokes == nil {
		b.Jokes = []string{}
	}
	if b.Questions == nil {
		b.Questions = []Question{}
	}
	if b.Reasons == nil {
		b.Reasons = []string{}
	}
}

// MergeAudio overlays a fresh audio upload onto an existing playlist item.
// Audio fields always come from the upload; title/artist/link survive unless
// the upload explicitly supplies them. The timestamp is always refreshed.
func MergeAudio(existing, upload PlaylistItem) PlaylistItem {
	merged := existing
	merged.AudioURL = upload.AudioURL
	merged.Key = upload.Key
	merged.Format = upload.Format
	merged.Size = upload.Size
	merged.Duration = upload.Duration
	merged.Filename = upload.Filename
	merged.UploadedAt = upload.UploadedAt

	if upload.Title != "" {
		merged.Title = upload.Title
	}
	if upload.Artist != "" {
		merged.Artist = upload.Artist
	}
	if upload.Link != "" {
		merged.Link = upload.Link
	}
	return merged
}

// Merge applies the fields present in the patch, leaving the rest intact,
// and refreshes the upload timestamp.
func (s *SongDedicationData) Merge(patch SongDedicationPatch) {
	if patch.URL != nil {
		s.URL = *patch.URL
	}
	if patch.Key != nil {
		s.Key = *patch.Key
	}
	if patch.ResourceType != nil {
		s.ResourceType = *patch.ResourceType
	}
	if patch.Duration != nil {
		s.Duration = *patch.Duration
	}
	if patch.Size != nil {
		s.Size = *patch.Size
	}
	if patch.Format != nil {
		s.Format = *patch.Format
	}
	if patch.Filename != nil {
		s.Filename = *patch.Filename
	}
	s.UploadedAt = time.Now()
}
