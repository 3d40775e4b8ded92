package youtube

import "errors"

var (
	// ErrInvalidVideoID is returned when the caller-supplied video id or URL
	// cannot be resolved to a video identifier.
	ErrInvalidVideoID = errors.New("invalid video id")

	// ErrVideoNotFound is returned when the platform reports no such video.
	ErrVideoNotFound = errors.New("video not found")

	// ErrCommentsDisabled is returned when the platform refuses to list
	// comments for the video.
	ErrCommentsDisabled = errors.New("comments disabled for video")
)
