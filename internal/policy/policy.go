// Package policy decides who may read, write and interact with blog
// content. Decisions are pure functions over the acting identity, the
// content owner and the content visibility; the only external dependency is
// a follow-edge lookup.
package policy

import "github.com/Vlad1805/blogmates-backend/internal/models"

// Viewer is the acting identity of a request. The zero value is an
// anonymous visitor with no relationships.
type Viewer struct {
	ID            uint
	Authenticated bool
}

// Anonymous returns the identity of an unauthenticated visitor.
func Anonymous() Viewer { return Viewer{} }

// User returns the identity of an authenticated user.
func User(id uint) Viewer { return Viewer{ID: id, Authenticated: true} }

// FollowChecker reports whether a follow edge Friendship(user=ownerID,
// follower=viewerID) exists.
type FollowChecker interface {
	IsFollowing(ownerID, viewerID uint) (bool, error)
}

// CanView decides read access to an entry owned by authorID with the given
// visibility.
//
//   - public entries are visible to everyone, anonymous included
//   - journal entries are visible to the author only
//   - friends entries are visible to the author and to authenticated
//     viewers following the author
func CanView(viewer Viewer, authorID uint, visibility models.Visibility, follows FollowChecker) (bool, error) {
	switch visibility {
	case models.VisibilityPublic:
		return true, nil
	case models.VisibilityJournal:
		return viewer.Authenticated && viewer.ID == authorID, nil
	case models.VisibilityFriends:
		if !viewer.Authenticated {
			return false, nil
		}
		if viewer.ID == authorID {
			return true, nil
		}
		return follows.IsFollowing(authorID, viewer.ID)
	}
	return false, nil
}

// CanInteract decides whether the viewer may comment on or like an entry.
// The gate is the same as CanView; the author always passes, including on
// their own journal entries.
func CanInteract(viewer Viewer, authorID uint, visibility models.Visibility, follows FollowChecker) (bool, error) {
	return CanView(viewer, authorID, visibility, follows)
}

// CanDeleteComment allows the comment's author and the author of the entry
// the comment belongs to.
func CanDeleteComment(actorID, commentAuthorID, entryAuthorID uint) bool {
	return actorID == commentAuthorID || actorID == entryAuthorID
}

// CanEditEntry allows the entry's author only.
func CanEditEntry(actorID, entryAuthorID uint) bool {
	return actorID == entryAuthorID
}

// CanDeleteEntry allows the entry's author only.
func CanDeleteEntry(actorID, entryAuthorID uint) bool {
	return actorID == entryAuthorID
}
