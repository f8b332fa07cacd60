package models

import "gorm.io/gorm"

// BlogComment represents a comment on a blog entry. Comments disappear
// together with the entry they belong to.
type BlogComment struct {
	gorm.Model
	BlogEntryID uint   `gorm:"not null;index"`
	AuthorID    uint   `gorm:"not null"`
	Content     string `gorm:"not null"`

	BlogEntry BlogEntry `gorm:"foreignKey:BlogEntryID;constraint:OnDelete:CASCADE;"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
}
