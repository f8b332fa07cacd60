package domain

import (
	"errors"
	"fmt"
)

// Broad error kinds. Every operation in the backend fails with an error that
// unwraps to exactly one of these; the HTTP layer maps each kind to a status
// code.
var (
	ErrNotFound   = errors.New("not_found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrBadRequest = errors.New("bad_request")
)

// Specific failures, each tied to its kind via Unwrap.
var (
	ErrAlreadyFriends   = kind("already friends with this user", ErrConflict)
	ErrDuplicateRequest = kind("friend request already sent", ErrConflict)
	ErrDuplicateLike    = kind("already liked", ErrConflict)
	ErrTitleTaken       = kind("an entry with this title already exists", ErrConflict)
	ErrUsernameTaken    = kind("username or email already taken", ErrConflict)
	ErrSelfRequest      = kind("cannot send a friend request to yourself", ErrBadRequest)
)

type kindedError struct {
	msg  string
	kind error
}

func (e *kindedError) Error() string { return e.msg }
func (e *kindedError) Unwrap() error { return e.kind }

func kind(msg string, k error) error {
	return &kindedError{msg: msg, kind: k}
}

// Wrap attaches a kind to an arbitrary message.
func Wrap(k error, format string, args ...any) error {
	return &kindedError{msg: fmt.Sprintf(format, args...), kind: k}
}
