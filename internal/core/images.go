// Derived image set produced by the pipeline
package core

import (
	"fmt"
	"strings"

	"gocv.io/x/gocv"
)

// ImageKind names one of the four derived images
type ImageKind int

const (
	KindOriginal ImageKind = iota
	KindPreprocessed
	KindLaplacian
	KindSobel
)

// AllKinds lists the kinds in grid order (row-major)
var AllKinds = [...]ImageKind{KindOriginal, KindPreprocessed, KindLaplacian, KindSobel}

// Selector is the name a user types to pick this image for saving
func (k ImageKind) Selector() string {
	switch k {
	case KindOriginal:
		return "original"
	case KindPreprocessed:
		return "pre"
	case KindLaplacian:
		return "laplacian"
	case KindSobel:
		return "sobel"
	}
	return fmt.Sprintf("ImageKind(%d)", int(k))
}

// Title is the fixed panel caption
func (k ImageKind) Title() string {
	switch k {
	case KindOriginal:
		return "Original Image"
	case KindPreprocessed:
		return "Preprocessed Image"
	case KindLaplacian:
		return "Laplacian Edge"
	case KindSobel:
		return "Sobel Edge"
	}
	return fmt.Sprintf("ImageKind(%d)", int(k))
}

func (k ImageKind) String() string {
	return k.Selector()
}

// SelectorPrompt lists the accepted selectors, separated by slashes
func SelectorPrompt() string {
	names := make([]string, 0, len(AllKinds))
	for _, k := range AllKinds {
		names = append(names, k.Selector())
	}
	return strings.Join(names, " / ")
}

// ParseImageKind resolves a user-supplied selector, ignoring case and
// surrounding whitespace.
func ParseImageKind(selector string) (ImageKind, error) {
	normalized := strings.ToLower(strings.TrimSpace(selector))
	for _, k := range AllKinds {
		if k.Selector() == normalized {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSaveSelector, selector)
}

// DerivedImages holds the four pipeline outputs. The set is built in one
// piece and owns its Mats until Close.
type DerivedImages struct {
	Original     gocv.Mat
	Preprocessed gocv.Mat
	Laplacian    gocv.Mat
	Sobel        gocv.Mat

	// Params are the effective values the set was computed with.
	Params Parameters
}

// Get returns the Mat for kind. The Mat stays owned by d.
func (d *DerivedImages) Get(kind ImageKind) gocv.Mat {
	switch kind {
	case KindOriginal:
		return d.Original
	case KindPreprocessed:
		return d.Preprocessed
	case KindLaplacian:
		return d.Laplacian
	case KindSobel:
		return d.Sobel
	}
	panic(fmt.Sprintf("core: unknown image kind %d", int(kind)))
}

// Close releases all four Mats
func (d *DerivedImages) Close() {
	if d == nil {
		return
	}
	d.Original.Close()
	d.Preprocessed.Close()
	d.Laplacian.Close()
	d.Sobel.Close()
}
