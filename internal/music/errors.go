package music

import "errors"

var (
	// ErrPlaylistNotFound is returned when a playlist ID does not resolve.
	ErrPlaylistNotFound = errors.New("playlist not found")

	// ErrSongNotFound is returned when a song ID does not resolve.
	ErrSongNotFound = errors.New("song not found")

	// ErrInvalidRequest is returned when a required field is missing.
	ErrInvalidRequest = errors.New("invalid request")
)
