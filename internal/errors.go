package internal

import "errors"

var (
	// ErrUnsupportedMediaType is returned when a subtitle format other
	// than WebVTT is requested from the fixture encoder.
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	// ErrTrackNotFound is returned when a catalog lookup finds no track
	// matching the requested name.
	ErrTrackNotFound = errors.New("track not found")
)
