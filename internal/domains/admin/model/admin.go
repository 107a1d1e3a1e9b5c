package model

import (
	"time"

	"github.com/google/uuid"
)

// Admin is a creator account. Name and email are immutable through the API;
// only the password and the profile photo can change after signup.
type Admin struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"-"` // bcrypt hash, never exposed

	ProfilePhoto    string `json:"profilePhoto,omitempty"`
	ProfilePhotoKey string `json:"-"` // blob reference for replacement deletes

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
