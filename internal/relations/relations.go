// Package relations implements the follow graph and the friend-request
// lifecycle: none -> pending -> accepted (edge created, request deleted) or
// removed (request deleted).
package relations

import (
	"errors"

	"github.com/Vlad1805/blogmates-backend/internal/domain"
	"github.com/Vlad1805/blogmates-backend/internal/models"

	"gorm.io/gorm"
)

// IsFollowing reports whether followerID follows userID.
func IsFollowing(db *gorm.DB, userID, followerID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Friendship{}).
		Where("user_id = ? AND follower_id = ?", userID, followerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Checker adapts the follow graph to policy.FollowChecker.
type Checker struct {
	DB *gorm.DB
}

func (c Checker) IsFollowing(ownerID, viewerID uint) (bool, error) {
	return IsFollowing(c.DB, ownerID, viewerID)
}

// SendRequest creates a pending friend request from sender to receiver.
// A pending request in the opposite direction is deliberately not checked;
// both directions may be pending at the same time.
func SendRequest(db *gorm.DB, senderID, receiverID uint) (*models.FriendRequest, error) {
	if senderID == receiverID {
		return nil, domain.ErrSelfRequest
	}

	var receiver models.User
	if err := db.First(&receiver, receiverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.Wrap(domain.ErrNotFound, "receiver not found")
		}
		return nil, err
	}

	following, err := IsFollowing(db, receiverID, senderID)
	if err != nil {
		return nil, err
	}
	if following {
		return nil, domain.ErrAlreadyFriends
	}

	request := models.FriendRequest{SenderID: senderID, ReceiverID: receiverID}
	if err := db.Create(&request).Error; err != nil {
		// The unique (sender, receiver) index is the authority on duplicates;
		// it also catches two identical requests racing each other.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateRequest
		}
		return nil, err
	}
	return &request, nil
}

// AcceptRequest converts a pending request addressed to receiverID into a
// follow edge Friendship(user=receiver, follower=sender) and deletes the
// request. The grant is one-way; no reciprocal edge is created.
func AcceptRequest(db *gorm.DB, receiverID, requestID uint) (*models.Friendship, error) {
	var friendship models.Friendship

	err := db.Transaction(func(tx *gorm.DB) error {
		var request models.FriendRequest
		err := tx.Where("id = ? AND receiver_id = ? AND is_accepted = ?", requestID, receiverID, false).
			First(&request).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.Wrap(domain.ErrNotFound, "friend request not found")
			}
			return err
		}

		friendship = models.Friendship{UserID: receiverID, FollowerID: request.SenderID}
		if err := tx.Create(&friendship).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrAlreadyFriends
			}
			return err
		}

		return tx.Delete(&request).Error
	})
	if err != nil {
		return nil, err
	}
	return &friendship, nil
}

// RemoveRequest deletes a request, acting either as its sender (cancel) or
// its receiver (reject). No rejection record is kept.
func RemoveRequest(db *gorm.DB, actorID, requestID uint) error {
	result := db.Where("id = ? AND (sender_id = ? OR receiver_id = ?)", requestID, actorID, actorID).
		Delete(&models.FriendRequest{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.Wrap(domain.ErrNotFound, "friend request not found")
	}
	return nil
}

// Unfollow removes the edge where followerID follows targetID.
func Unfollow(db *gorm.DB, followerID, targetID uint) error {
	result := db.Where("user_id = ? AND follower_id = ?", targetID, followerID).
		Delete(&models.Friendship{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.Wrap(domain.ErrNotFound, "you are not following this user")
	}
	return nil
}

// RemoveFollower removes the edge where followerID follows userID, acting
// from the followed side.
func RemoveFollower(db *gorm.DB, userID, followerID uint) error {
	result := db.Where("user_id = ? AND follower_id = ?", userID, followerID).
		Delete(&models.Friendship{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.Wrap(domain.ErrNotFound, "this user is not following you")
	}
	return nil
}

// PendingReceived lists requests addressed to userID, newest first.
func PendingReceived(db *gorm.DB, userID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := db.Preload("Sender").
		Where("receiver_id = ? AND is_accepted = ?", userID, false).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// PendingSent lists requests sent by userID, newest first.
func PendingSent(db *gorm.DB, userID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := db.Preload("Receiver").
		Where("sender_id = ? AND is_accepted = ?", userID, false).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// Followers lists the edges pointing at userID, i.e. the users following
// them, newest first.
func Followers(db *gorm.DB, userID uint) ([]models.Friendship, error) {
	var edges []models.Friendship
	err := db.Preload("Follower").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&edges).Error
	return edges, err
}

// Following lists the edges originating from userID, i.e. the users they
// follow, newest first.
func Following(db *gorm.DB, userID uint) ([]models.Friendship, error) {
	var edges []models.Friendship
	err := db.Preload("User").
		Where("follower_id = ?", userID).
		Order("created_at DESC").
		Find(&edges).Error
	return edges, err
}
