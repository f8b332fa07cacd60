package models

import "time"

// Friendship is a one-directional follow edge: Follower follows User. The
// edge grants the follower read access to the user's friends-only entries,
// effective immediately on creation.
type Friendship struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_friendships_user_follower"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_friendships_user_follower"`
	CreatedAt  time.Time

	User     User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Follower User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE;"`
}

// FriendRequest is a pending request from Sender to Receiver. Acceptance
// converts it into a Friendship(User=Receiver, Follower=Sender) and deletes
// the row; removal just deletes it. IsAccepted therefore stays false for the
// lifetime of any observable row.
type FriendRequest struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	SenderID   uint      `gorm:"not null;uniqueIndex:idx_friend_requests_sender_receiver"`
	ReceiverID uint      `gorm:"not null;uniqueIndex:idx_friend_requests_sender_receiver"`
	IsAccepted bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time

	Sender   User `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE;"`
	Receiver User `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE;"`
}
