// internal/gui/image_grid.go
// Fixed 2x2 display of the derived images
package gui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"edge-detection-studio/internal/core"
	"edge-detection-studio/internal/metrics"
)

const noImageSubtitle = "No image loaded"

// ImageGrid shows Original, Preprocessed, Laplacian and Sobel in a fixed
// 2x2 layout. Original keeps its colors; the others are gray.
type ImageGrid struct {
	logger    *logrus.Logger
	evaluator *metrics.Evaluator

	container *fyne.Container
	cards     map[core.ImageKind]*widget.Card
	images    map[core.ImageKind]*canvas.Image

	placeholder image.Image
}

func NewImageGrid(evaluator *metrics.Evaluator, logger *logrus.Logger) *ImageGrid {
	grid := &ImageGrid{
		logger:      logger,
		evaluator:   evaluator,
		cards:       make(map[core.ImageKind]*widget.Card),
		images:      make(map[core.ImageKind]*canvas.Image),
		placeholder: createPlaceholderImage(),
	}

	grid.initializeUI()
	return grid
}

func (ig *ImageGrid) initializeUI() {
	panels := make([]fyne.CanvasObject, 0, len(core.AllKinds))
	for _, kind := range core.AllKinds {
		img := canvas.NewImageFromImage(ig.placeholder)
		img.FillMode = canvas.ImageFillContain
		img.ScaleMode = canvas.ImageScalePixels
		img.SetMinSize(fyne.NewSize(320, 240))

		card := widget.NewCard(kind.Title(), noImageSubtitle, img)

		ig.images[kind] = img
		ig.cards[kind] = card
		panels = append(panels, card)
	}

	ig.container = container.NewGridWithColumns(2, panels...)
}

// Update redraws every panel from d. A nil set resets the grid.
func (ig *ImageGrid) Update(d *core.DerivedImages) {
	if d == nil {
		ig.Clear()
		return
	}

	for _, kind := range core.AllKinds {
		mat := d.Get(kind)

		img, err := mat.ToImage()
		if err != nil {
			ig.logger.WithError(err).WithField("kind", kind.String()).Error("Failed to convert image for display")
			img = ig.placeholder
		}
		ig.images[kind].Image = img
		ig.images[kind].Refresh()

		subtitle := ""
		if summary, err := ig.evaluator.Summarize(mat); err == nil {
			subtitle = summary.String()
		} else {
			ig.logger.WithError(err).WithField("kind", kind.String()).Debug("No summary for panel")
		}
		ig.cards[kind].SetSubTitle(subtitle)
	}
}

// Clear shows the placeholder in every panel
func (ig *ImageGrid) Clear() {
	for _, kind := range core.AllKinds {
		ig.images[kind].Image = ig.placeholder
		ig.images[kind].Refresh()
		ig.cards[kind].SetSubTitle(noImageSubtitle)
	}
}

func (ig *ImageGrid) GetContainer() fyne.CanvasObject {
	return ig.container
}

func createPlaceholderImage() image.Image {
	placeholder := image.NewRGBA(image.Rect(0, 0, 320, 240))
	gray := color.RGBA{245, 245, 245, 255}

	for y := 0; y < 240; y++ {
		for x := 0; x < 320; x++ {
			placeholder.Set(x, y, gray)
		}
	}

	return placeholder
}
