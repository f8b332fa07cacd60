package models

import "gorm.io/gorm"

// User represents a registered account.
type User struct {
	gorm.Model
	Username     string `gorm:"size:255;unique;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`

	Profile UserProfile `gorm:"constraint:OnDelete:CASCADE;"`
}

// UserProfile holds the presentation data attached to a user at signup.
// The profile picture is stored inline as a binary blob together with its
// content type.
type UserProfile struct {
	gorm.Model
	UserID                    uint   `gorm:"uniqueIndex;not null"`
	Biography                 string `gorm:"size:500"`
	ProfilePicture            []byte
	ProfilePictureContentType string `gorm:"size:100"`
}
