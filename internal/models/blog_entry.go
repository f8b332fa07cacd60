package models

import "gorm.io/gorm"

// Visibility controls who may read a blog entry.
type Visibility string

const (
	// VisibilityPublic entries are readable by everyone, including
	// unauthenticated visitors.
	VisibilityPublic Visibility = "public"

	// VisibilityFriends entries are readable by the author and by users
	// following the author.
	VisibilityFriends Visibility = "friends"

	// VisibilityJournal entries are readable by the author only.
	VisibilityJournal Visibility = "journal"
)

// Valid reports whether v is one of the three known visibility levels.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityFriends, VisibilityJournal:
		return true
	}
	return false
}

// BlogEntry represents a single post. An author cannot have two entries
// with the same title.
type BlogEntry struct {
	gorm.Model
	Title      string     `gorm:"size:200;not null;uniqueIndex:idx_blog_entries_title_author"`
	Content    string     `gorm:"not null"`
	AuthorID   uint       `gorm:"not null;uniqueIndex:idx_blog_entries_title_author;index"`
	Visibility Visibility `gorm:"size:10;not null;default:'public'"`

	Author User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
}
