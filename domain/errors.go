package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("your item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given param is not valid")
	// ErrForbidden will throw if the acting user does not own the resource
	ErrForbidden = errors.New("you are not allowed to modify this resource")
	// ErrCacheMiss signals the cache has no entry for the requested key
	ErrCacheMiss = errors.New("cache miss")
)

// AggregateError reports a bulk operation that was attempted in full but
// failed for a subset of its items. FailedIDs lists the comment IDs whose
// cascade delete did not go through, so the caller can retry just those.
type AggregateError struct {
	Username  string
	FailedIDs []int64
}

func (e *AggregateError) Error() string {
	return fmt.Sprintf("failed to delete %d comment(s) of user %q", len(e.FailedIDs), e.Username)
}
