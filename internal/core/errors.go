package core

import "errors"

var (
	// ErrNoImageLoaded is returned when an operation needs a source image and none is open.
	ErrNoImageLoaded = errors.New("no image loaded")

	// ErrInvalidSaveSelector is returned for a save selector outside original/pre/laplacian/sobel.
	ErrInvalidSaveSelector = errors.New("invalid choice")

	// ErrImageIO wraps decode and encode failures.
	ErrImageIO = errors.New("image i/o failed")

	ErrUnsupportedImage = errors.New("unsupported image")
)
