package models

import "time"

// BlogLike marks that a user liked a blog entry. The unique index rejects a
// second like from the same user; rows are deleted outright on unlike so a
// like can be placed again afterwards.
type BlogLike struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	BlogEntryID uint      `gorm:"not null;uniqueIndex:idx_blog_likes_entry_user"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_blog_likes_entry_user"`
	CreatedAt   time.Time

	BlogEntry BlogEntry `gorm:"foreignKey:BlogEntryID;constraint:OnDelete:CASCADE;"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

// CommentLike marks that a user liked a comment. Same rules as BlogLike.
type CommentLike struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_comment_likes_comment_user"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_comment_likes_comment_user"`
	CreatedAt time.Time

	Comment BlogComment `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE;"`
	User    User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}
