package webvtt

import "errors"

// ErrUnsupportedMediaType is returned by Open when the codec tag does
// not identify a WebVTT track.
var ErrUnsupportedMediaType = errors.New("webvtt: unsupported media type")
