package service

import (
	"errors"

	"personal-workspace/internal/domain"
	"personal-workspace/internal/repository"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("forbidden")
	ErrStoreUnavailable     = errors.New("store unavailable")
	ErrUnauthenticated      = errors.New("not logged in")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrUsernameTaken        = errors.New("username already exists")
)

// mapRepoError converts a repository error into the service error the handlers understand.
func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	default:
		return ErrStoreUnavailable
	}
}

// authorize is the ownership gate applied before every mutation.
func authorize(identity domain.Identity, ownerID uint) error {
	if !identity.Owns(ownerID) {
		return ErrForbidden
	}
	return nil
}
