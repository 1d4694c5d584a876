package blog

import (
	"errors"
	"fmt"

	"github.com/jacentio/quill/store"
)

var (
	// ErrNotFound is returned when a delete targets a missing entity.
	ErrNotFound = store.ErrNotFound

	// ErrDuplicateIdentifier is returned when a new entity's ID is already taken.
	ErrDuplicateIdentifier = store.ErrAlreadyExists

	// ErrAuthorNotFound is returned when a post or comment names a missing author.
	ErrAuthorNotFound = errors.New("quill: author not found")

	// ErrPostNotFound is returned when a comment names a missing or unpublished post.
	ErrPostNotFound = errors.New("quill: post not found")

	// ErrDuplicateEmail is returned when a user's email is already in use.
	ErrDuplicateEmail = errors.New("quill: email already in use")

	// ErrDanglingReference is returned when a foreign key points at nothing.
	// Unreachable while the store's invariants hold.
	ErrDanglingReference = errors.New("quill: dangling reference")
)

// Error kinds reported to callers.
const (
	KindNotFound            = "NotFound"
	KindAuthorNotFound      = "AuthorNotFound"
	KindPostNotFound        = "PostNotFound"
	KindDuplicateEmail      = "DuplicateEmail"
	KindDanglingReference   = "DanglingReference"
	KindDuplicateIdentifier = "DuplicateIdentifier"
	KindInternal            = "Internal"
)

// Kind returns the taxonomy name of err, or KindInternal for errors outside it.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return KindAuthorNotFound
	case errors.Is(err, ErrPostNotFound):
		return KindPostNotFound
	case errors.Is(err, ErrDuplicateEmail):
		return KindDuplicateEmail
	case errors.Is(err, ErrDanglingReference):
		return KindDanglingReference
	case errors.Is(err, ErrDuplicateIdentifier):
		return KindDuplicateIdentifier
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindInternal
	}
}

// mapCreateError maps store constraint failures to domain errors.
func mapCreateError(err error) error {
	if err == nil {
		return nil
	}

	var parentErr *store.ParentError
	if errors.As(err, &parentErr) {
		switch parentErr.Field {
		case fieldAuthor:
			return fmt.Errorf("%w: %q", ErrAuthorNotFound, parentErr.ParentID)
		case fieldPost:
			return fmt.Errorf("%w: %q", ErrPostNotFound, parentErr.ParentID)
		}
	}

	var uniqueErr *store.UniqueError
	if errors.As(err, &uniqueErr) && uniqueErr.Field == fieldEmail {
		return fmt.Errorf("%w (held by %s)", ErrDuplicateEmail, uniqueErr.Owner)
	}

	return err
}
