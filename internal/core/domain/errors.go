package domain

import "errors"

var (
	// ErrMalformedCatalog signals that a persisted catalog document failed
	// to parse. It is surfaced to the operator, never auto-repaired.
	ErrMalformedCatalog = errors.New("domain: malformed catalog data")

	// ErrInsufficientCatalog signals that no song is available to serve.
	ErrInsufficientCatalog = errors.New("domain: catalog has no songs")

	// ErrDuplicateSong signals a case-insensitive title/artist collision on
	// append.
	ErrDuplicateSong = errors.New("domain: song already exists")

	// ErrScheduleDayFull signals an attempt to curate more than five songs
	// for one date.
	ErrScheduleDayFull = errors.New("domain: schedule day holds at most five songs")

	// ErrGameNotFound signals an unknown or expired game session.
	ErrGameNotFound = errors.New("domain: game not found")

	// ErrNoActiveSong signals a guess arriving before a round was served.
	ErrNoActiveSong = errors.New("domain: no active song")
)
