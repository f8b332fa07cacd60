package models

import (
	"time"

	"gorm.io/gorm"
)

// RefreshToken is an opaque token a client exchanges for a fresh access
// token. Tokens are rotated on every refresh and revoked on logout.
type RefreshToken struct {
	gorm.Model
	UserID    uint      `gorm:"not null;index"`
	Token     string    `gorm:"size:255;uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}
