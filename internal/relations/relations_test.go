package relations

import (
	"path/filepath"
	"testing"

	"github.com/Vlad1805/blogmates-backend/internal/database"
	"github.com/Vlad1805/blogmates-backend/internal/domain"
	"github.com/Vlad1805/blogmates-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestSendRequest(t *testing.T) {
	db := openTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	request, err := SendRequest(db, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, request.SenderID)
	assert.Equal(t, bob.ID, request.ReceiverID)
	assert.False(t, request.IsAccepted)

	// Same direction again is a conflict.
	_, err = SendRequest(db, alice.ID, bob.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// The reverse direction is independent and may coexist.
	_, err = SendRequest(db, bob.ID, alice.ID)
	require.NoError(t, err)

	sent, err := PendingSent(db, alice.ID)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, "bob", sent[0].Receiver.Username)

	received, err := PendingReceived(db, alice.ID)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "bob", received[0].Sender.Username)
}

func TestSendRequestRejectsSelfAndUnknown(t *testing.T) {
	db := openTestDB(t)
	alice := createUser(t, db, "alice")

	_, err := SendRequest(db, alice.ID, alice.ID)
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	_, err = SendRequest(db, alice.ID, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAcceptRequest(t *testing.T) {
	db := openTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	request, err := SendRequest(db, alice.ID, bob.ID)
	require.NoError(t, err)

	// Only the receiver can accept.
	_, err = AcceptRequest(db, alice.ID, request.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	friendship, err := AcceptRequest(db, bob.ID, request.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, friendship.UserID)
	assert.Equal(t, alice.ID, friendship.FollowerID)

	// The grant is one-way: alice now follows bob, not the reverse.
	following, err := IsFollowing(db, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, following)

	reverse, err := IsFollowing(db, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, reverse)

	// The request is gone, not flagged accepted.
	received, err := PendingReceived(db, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, received)

	var requestCount int64
	require.NoError(t, db.Model(&models.FriendRequest{}).Count(&requestCount).Error)
	assert.Zero(t, requestCount)

	// Accepting again finds nothing.
	_, err = AcceptRequest(db, bob.ID, request.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// A new request in the now-covered direction is already-friends.
	_, err = SendRequest(db, alice.ID, bob.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyFriends)
}

func TestRemoveRequest(t *testing.T) {
	db := openTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	request, err := SendRequest(db, alice.ID, bob.ID)
	require.NoError(t, err)

	// A third party cannot touch it.
	err = RemoveRequest(db, carol.ID, request.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The sender can cancel.
	require.NoError(t, RemoveRequest(db, alice.ID, request.ID))

	// After cancellation the pair is back to none and can be re-sent.
	request, err = SendRequest(db, alice.ID, bob.ID)
	require.NoError(t, err)

	// The receiver can reject.
	require.NoError(t, RemoveRequest(db, bob.ID, request.ID))

	received, err := PendingReceived(db, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, received)
}

func TestUnfollowAndRemoveFollower(t *testing.T) {
	db := openTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	// bob follows alice.
	require.NoError(t, db.Create(&models.Friendship{UserID: alice.ID, FollowerID: bob.ID}).Error)

	require.NoError(t, Unfollow(db, bob.ID, alice.ID))
	assert.ErrorIs(t, Unfollow(db, bob.ID, alice.ID), domain.ErrNotFound)

	// Again, this time removed from alice's side.
	require.NoError(t, db.Create(&models.Friendship{UserID: alice.ID, FollowerID: bob.ID}).Error)

	require.NoError(t, RemoveFollower(db, alice.ID, bob.ID))
	assert.ErrorIs(t, RemoveFollower(db, alice.ID, bob.ID), domain.ErrNotFound)

	// Wrong direction never matches.
	require.NoError(t, db.Create(&models.Friendship{UserID: alice.ID, FollowerID: bob.ID}).Error)
	assert.ErrorIs(t, Unfollow(db, alice.ID, bob.ID), domain.ErrNotFound)
	assert.ErrorIs(t, RemoveFollower(db, bob.ID, alice.ID), domain.ErrNotFound)
}

func TestFollowersAndFollowing(t *testing.T) {
	db := openTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	// bob and carol follow alice; alice follows carol.
	require.NoError(t, db.Create(&models.Friendship{UserID: alice.ID, FollowerID: bob.ID}).Error)
	require.NoError(t, db.Create(&models.Friendship{UserID: alice.ID, FollowerID: carol.ID}).Error)
	require.NoError(t, db.Create(&models.Friendship{UserID: carol.ID, FollowerID: alice.ID}).Error)

	followers, err := Followers(db, alice.ID)
	require.NoError(t, err)
	require.Len(t, followers, 2)
	names := []string{followers[0].Follower.Username, followers[1].Follower.Username}
	assert.ElementsMatch(t, []string{"bob", "carol"}, names)

	following, err := Following(db, alice.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "carol", following[0].User.Username)
}

func TestCheckerAdaptsFollowGraph(t *testing.T) {
	db := openTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	require.NoError(t, db.Create(&models.Friendship{UserID: alice.ID, FollowerID: bob.ID}).Error)

	checker := Checker{DB: db}

	following, err := checker.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	reverse, err := checker.IsFollowing(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, reverse)
}
