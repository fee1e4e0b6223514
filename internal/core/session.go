// Session state: the open image, the current parameters and their outputs
package core

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// ImageStore decodes and encodes images on disk
type ImageStore interface {
	LoadImage(filepath string) (gocv.Mat, error)
	SaveImage(mat gocv.Mat, filepath string) error
	WithDefaultExtension(filepath string) string
}

// Session owns the source image, the parameters and the derived images.
// It is used from the UI goroutine only.
type Session struct {
	store  ImageStore
	logger *logrus.Logger

	source   gocv.Mat
	hasImage bool
	filepath string
	metadata ImageMetadata

	params  Parameters
	derived *DerivedImages
}

// ImageMetadata contains source image information
type ImageMetadata struct {
	Width    int
	Height   int
	Channels int
	Format   string
}

// NewSession creates an empty session with default parameters
func NewSession(store ImageStore, logger *logrus.Logger) *Session {
	return &Session{
		store:  store,
		logger: logger,
		source: gocv.NewMat(),
		params: DefaultParameters(),
	}
}

// Open loads filepath as the new source image and recomputes. An empty path
// means nothing was chosen and leaves the session untouched. On failure the
// previous image and outputs are kept.
func (s *Session) Open(filepath string) (bool, error) {
	if filepath == "" {
		s.logger.Debug("Open cancelled, no path chosen")
		return false, nil
	}

	mat, err := s.store.LoadImage(filepath)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrImageIO, err)
	}

	if err := ValidateImage(mat); err != nil {
		mat.Close()
		return false, err
	}

	s.source.Close()
	s.source = mat
	s.hasImage = true
	s.filepath = filepath
	s.metadata = ImageMetadata{
		Width:    mat.Cols(),
		Height:   mat.Rows(),
		Channels: mat.Channels(),
		Format:   getFormatFromPath(filepath),
	}

	s.logger.WithFields(logrus.Fields{
		"filepath": filepath,
		"width":    s.metadata.Width,
		"height":   s.metadata.Height,
	}).Info("Source image replaced")

	if _, err := s.Recompute(); err != nil {
		return true, err
	}
	return true, nil
}

// SetParameters stores p and recomputes. It reports whether the derived
// images were replaced.
func (s *Session) SetParameters(p Parameters) (bool, error) {
	s.params = p
	return s.Recompute()
}

// Recompute rebuilds every derived image from the source. Without a source
// this is a quiet no-op.
func (s *Session) Recompute() (bool, error) {
	derived, err := Run(s.source, s.params)
	if errors.Is(err, ErrNoImageLoaded) {
		s.logger.Debug("Recompute skipped, no image loaded")
		return false, nil
	}
	if err != nil {
		s.logger.WithError(err).Error("Pipeline failed")
		return false, err
	}

	old := s.derived
	s.derived = derived
	old.Close()

	s.logger.WithFields(logrus.Fields{
		"params": derived.Params.String(),
	}).Debug("Derived images recomputed")
	return true, nil
}

// Save writes the image named by selector to filepath and returns the path
// actually written, which carries the default extension if filepath had none.
func (s *Session) Save(selector, filepath string) (string, error) {
	kind, err := ParseImageKind(selector)
	if err != nil {
		return "", err
	}
	return s.SaveKind(kind, filepath)
}

// SaveKind writes the derived image of the given kind
func (s *Session) SaveKind(kind ImageKind, filepath string) (string, error) {
	if s.derived == nil {
		return "", ErrNoImageLoaded
	}

	target := s.store.WithDefaultExtension(filepath)
	if err := s.store.SaveImage(s.derived.Get(kind), target); err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageIO, err)
	}

	s.logger.WithFields(logrus.Fields{
		"kind":     kind.String(),
		"filepath": target,
	}).Info("Image saved")
	return target, nil
}

// Derived returns the current derived images, or nil before the first
// successful open. The set stays owned by the session.
func (s *Session) Derived() *DerivedImages {
	return s.derived
}

// Parameters returns the last parameters set
func (s *Session) Parameters() Parameters {
	return s.params
}

// HasImage returns true if an image is loaded
func (s *Session) HasImage() bool {
	return s.hasImage
}

// Filepath returns the current file path
func (s *Session) Filepath() string {
	return s.filepath
}

// Metadata returns source image information
func (s *Session) Metadata() ImageMetadata {
	return s.metadata
}

// Close releases all native buffers
func (s *Session) Close() {
	s.derived.Close()
	s.derived = nil
	s.source.Close()
	s.source = gocv.NewMat()
	s.hasImage = false
	s.filepath = ""
	s.metadata = ImageMetadata{}
}

// ValidateImage checks that mat can be used as a source image
func ValidateImage(mat gocv.Mat) error {
	if mat.Empty() {
		return fmt.Errorf("%w: image is empty", ErrUnsupportedImage)
	}

	if mat.Cols() <= 0 || mat.Rows() <= 0 {
		return fmt.Errorf("%w: invalid dimensions %dx%d", ErrUnsupportedImage, mat.Cols(), mat.Rows())
	}

	if mat.Channels() != 3 {
		return fmt.Errorf("%w: unsupported channel count %d", ErrUnsupportedImage, mat.Channels())
	}

	const maxDimension = 16384
	if mat.Cols() > maxDimension || mat.Rows() > maxDimension {
		return fmt.Errorf("%w: image too large %dx%d (max: %d)", ErrUnsupportedImage, mat.Cols(), mat.Rows(), maxDimension)
	}

	return nil
}

func getFormatFromPath(filepath string) string {
	for i := len(filepath) - 1; i >= 0; i-- {
		switch filepath[i] {
		case '.':
			return filepath[i+1:]
		case '/', '\\':
			return "unknown"
		}
	}
	return "unknown"
}
