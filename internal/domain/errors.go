package domain

import "errors"

var (
	// ErrNotFound is returned when a single product lookup misses.
	ErrNotFound = errors.New("not found")

	// ErrFetchFailed marks a catalog collaborator failure. The engine keeps
	// its last-known snapshot when it sees this.
	ErrFetchFailed = errors.New("catalog fetch failed")
)
