package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ========================================
// OWNER REQUESTS
// ========================================

type CreateBestieRequest struct {
	Name           string         `json:"name"`
	Nickname       string         `json:"nickname"`
	Messages       []string       `json:"messages,omitempty"`
	Playlist       []PlaylistItem `json:"playlist,omitempty"`
	Jokes          []string       `json:"jokes,omitempty"`
	Questions      []Question     `json:"questions,omitempty"`
	Reasons        []string       `json:"reasons,omitempty"`
	SongDedication string         `json:"songDedication,omitempty"`
	GalleryImages  []GalleryImage `json:"galleryImages,omitempty"`
	IsPublished    bool           `json:"isPublished,omitempty"`
}

func (r CreateBestieRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 200),
		),
		validation.Field(&r.Nickname,
			validation.Required.Error("nickname is required"),
			validation.Length(1, 100),
		),
	)
}

// NewBestie builds a normalized aggregate from a validated create request.
// The secret code is assigned here and never changes afterwards.
func NewBestie(adminID uuid.UUID, req CreateBestieRequest) *Bestie {
	now := time.Now()
	b := &Bestie{
		ID:             uuid.New(),
		AdminID:        adminID,
		Name:           req.Name,
		Nickname:       req.Nickname,
		SongDedication: req.SongDedication,
		Messages:       req.Messages,
		GalleryImages:  req.GalleryImages,
		Playlist:       req.Playlist,
		Jokes:          req.Jokes,
		Questions:      req.Questions,
		Reasons:        req.Reasons,
		IsPublished:    req.IsPublished,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	b.Normalize()
	b.EnsureSecretCode()
	return b
}

// UpdateBestieRequest patches any subset of the aggregate's owner-editable
// fields. Nil means "leave alone"; SongDedicationData is merged, not replaced.
type UpdateBestieRequest struct {
	Name               *string              `json:"name,omitempty"`
	Nickname           *string              `json:"nickname,omitempty"`
	Messages           []string             `json:"messages,omitempty"`
	Playlist           []PlaylistItem       `json:"playlist,omitempty"`
	Jokes              []string             `json:"jokes,omitempty"`
	Questions          []Question           `json:"questions,omitempty"`
	Reasons            []string             `json:"reasons,omitempty"`
	SongDedication     *string              `json:"songDedication,omitempty"`
	SongDedicationData *SongDedicationPatch `json:"songDedicationData,omitempty"`
	IsPublished        *bool                `json:"isPublished,omitempty"`
	GalleryImages      []GalleryImage       `json:"galleryImages,omitempty"`
}

func (r UpdateBestieRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.When(r.Name != nil, validation.Required.Error("name cannot be empty"), validation.Length(1, 200)),
		),
		validation.Field(&r.Nickname,
			validation.When(r.Nickname != nil, validation.Required.Error("nickname cannot be empty"), validation.Length(1, 100)),
		),
	)
}

// SongDedicationPatch is the partial-update shape for song metadata.
type SongDedicationPatch struct {
	URL          *string  `json:"url,omitempty"`
	Key          *string  `json:"key,omitempty"`
	ResourceType *string  `json:"resourceType,omitempty"`
	Duration     *float64 `json:"duration,omitempty"`
	Size         *int64   `json:"size,omitempty"`
	Format       *string  `json:"format,omitempty"`
	Filename     *string  `json:"filename,omitempty"`
}

type AddGalleryImageRequest struct {
	Image GalleryImage `json:"image"`
}

func (r AddGalleryImageRequest) Validate() error {
	return validation.ValidateStruct(&r.Image,
		validation.Field(&r.Image.URL, validation.Required.Error("image url is required")),
		validation.Field(&r.Image.Key, validation.Required.Error("image key is required")),
	)
}

type RemoveGalleryImageRequest struct {
	Key string `json:"key"`
}

func (r RemoveGalleryImageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Key, validation.Required.Error("image key is required")),
	)
}

type UpdateSongDedicationRequest struct {
	URL          string  `json:"url"`
	Key          string  `json:"key"`
	ResourceType string  `json:"resourceType"`
	Duration     float64 `json:"duration"`
	Size         int64   `json:"size"`
	Format       string  `json:"format"`
	Filename     string  `json:"filename"`
}

func (r UpdateSongDedicationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.URL, validation.Required.Error("url is required")),
	)
}

type AddPlaylistItemRequest struct {
	Title    string  `json:"title"`
	Artist   string  `json:"artist"`
	Link     string  `json:"link"`
	AudioURL string  `json:"audioUrl"`
	Key      string  `json:"key"`
	Format   string  `json:"format"`
	Size     int64   `json:"size"`
	Duration float64 `json:"duration"`
	Filename string  `json:"filename"`
}

// ToItem applies the defaults the playlist expects for hand-entered songs.
func (r AddPlaylistItemRequest) ToItem() PlaylistItem {
	item := PlaylistItem{
		Title:      r.Title,
		Artist:     r.Artist,
		Link:       r.Link,
		AudioURL:   r.AudioURL,
		Key:        r.Key,
		Format:     r.Format,
		Size:       r.Size,
		Duration:   r.Duration,
		Filename:   r.Filename,
		UploadedAt: time.Now(),
	}
	if item.Title == "" {
		item.Title = "Untitled Song"
	}
	if item.Artist == "" {
		item.Artist = "Unknown Artist"
	}
	return item
}

// UpdatePlaylistItemRequest patches metadata only; audio fields are owned by
// the upload flow.
type UpdatePlaylistItemRequest struct {
	Title  *string `json:"title,omitempty"`
	Artist *string `json:"artist,omitempty"`
	Link   *string `json:"link,omitempty"`
}

// ========================================
// PUBLIC (SECRET-CODE SCOPED) REQUESTS
// ========================================

// Index fields are pointers so that a missing index is distinguishable from
// index 0.
type AnswerQuestionRequest struct {
	QuestionIndex *int   `json:"questionIndex"`
	Answer        string `json:"answer"`
}

func (r AnswerQuestionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.QuestionIndex, validation.NotNil.Error("question index is required")),
		validation.Field(&r.Answer, validation.Required.Error("answer is required")),
	)
}

type SubmitMessageRequest struct {
	MessageIndex *int   `json:"messageIndex"`
	Message      string `json:"message"`
}

func (r SubmitMessageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MessageIndex, validation.NotNil.Error("message index is required")),
		validation.Field(&r.Message, validation.Required.Error("message is required")),
	)
}

// ========================================
// PROJECTIONS
// ========================================

// BestieSummary is the list/create projection: identity plus share state,
// no heavy sub-collections.
type BestieSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Nickname    string    `json:"nickname"`
	SecretCode  string    `json:"secretCode"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (b *Bestie) ToSummary() BestieSummary {
	return BestieSummary{
		ID:          b.ID,
		Name:        b.Name,
		Nickname:    b.Nickname,
		SecretCode:  b.SecretCode,
		IsPublished: b.IsPublished,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// Creator is the slice of admin identity a public page is allowed to see.
type Creator struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ProfilePhoto string    `json:"profilePhoto,omitempty"`
}

// PublicBestie is the projection returned to anonymous visitors holding the
// secret code. Admin identity is reduced to name + photo.
type PublicBestie struct {
	ID                 uuid.UUID           `json:"id"`
	Name               string              `json:"name"`
	Nickname           string              `json:"nickname"`
	SecretCode         string              `json:"secretCode"`
	SongDedication     string              `json:"songDedication"`
	SongDedicationData *SongDedicationData `json:"songDedicationData,omitempty"`
	Messages           []string            `json:"messages"`
	GalleryImages      []GalleryImage      `json:"galleryImages"`
	Playlist           []PlaylistItem      `json:"playlist"`
	Jokes              []string            `json:"jokes"`
	Questions          []Question          `json:"questions"`
	Reasons            []string            `json:"reasons"`
	CreatedAt          time.Time           `json:"createdAt"`
	Creator            Creator             `json:"creator"`
}

func (b *Bestie) ToPublic(creator Creator) PublicBestie {
	return PublicBestie{
		ID:                 b.ID,
		Name:               b.Name,
		Nickname:           b.Nickname,
		SecretCode:         b.SecretCode,
		SongDedication:     b.SongDedication,
		SongDedicationData: b.SongDedicationData,
		Messages:           b.Messages,
		GalleryImages:      b.GalleryImages,
		Playlist:           b.Playlist,
		Jokes:              b.Jokes,
		Questions:          b.Questions,
		Reasons:            b.Reasons,
		CreatedAt:          b.CreatedAt,
		Creator:            creator,
	}
}
