// Main application window: controls on the left, 2x2 results on the right
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"edge-detection-studio/internal/core"
	"edge-detection-studio/internal/io"
	"edge-detection-studio/internal/metrics"
)

const WindowTitle = "Image Preprocessing & Edge Detection"

// Application represents the main application
type Application struct {
	app       fyne.App
	window    fyne.Window
	logger    *logrus.Logger
	debugMode bool

	// Core components
	session   *core.Session
	loader    *io.ImageLoader
	evaluator *metrics.Evaluator

	// GUI components
	controls    *ControlPanel
	grid        *ImageGrid
	menuHandler *MenuHandler
	statusLabel *widget.Label

	mainContent *container.Split
}

func NewApplication(app fyne.App, logger *logrus.Logger, debugMode bool) *Application {
	window := app.NewWindow(WindowTitle)
	window.Resize(fyne.NewSize(1280, 800))
	window.CenterOnScreen()

	appInstance := &Application{
		app:       app,
		window:    window,
		logger:    logger,
		debugMode: debugMode,
	}

	appInstance.initializeCore()
	appInstance.initializeGUI()
	appInstance.setupLayout()
	appInstance.setupCallbacks()

	return appInstance
}

func (a *Application) initializeCore() {
	a.loader = io.NewImageLoader(a.logger)
	a.session = core.NewSession(a.loader, a.logger)
	a.evaluator = metrics.NewEvaluator()
}

func (a *Application) initializeGUI() {
	a.controls = NewControlPanel(a.logger)
	a.grid = NewImageGrid(a.evaluator, a.logger)
	a.menuHandler = NewMenuHandler(a.window, a.session, a.logger)
	a.statusLabel = widget.NewLabel("Open an image to begin")
}

func (a *Application) setupLayout() {
	left := container.NewVScroll(a.controls.GetContainer())

	center := container.NewBorder(
		nil,           // top
		a.statusLabel, // bottom
		nil,           // left
		nil,           // right
		container.NewPadded(a.grid.GetContainer()),
	)

	a.mainContent = container.NewHSplit(left, center)
	a.mainContent.SetOffset(0.22)

	a.window.SetMainMenu(a.menuHandler.GetMainMenu())
	a.window.SetContent(a.mainContent)
}

func (a *Application) setupCallbacks() {
	a.controls.SetCallbacks(
		// onOpen
		a.menuHandler.ShowOpenDialog,
		// onSave
		a.menuHandler.ShowSaveDialog,
		// onParametersChanged
		a.onParametersChanged,
	)

	a.menuHandler.SetCallbacks(
		// onImageLoaded
		func(filepath string) {
			a.grid.Update(a.session.Derived())
			a.controls.SetSaveEnabled(true)
			meta := a.session.Metadata()
			a.updateStatusMessage(fmt.Sprintf("Loaded: %s (%dx%d)", filepath, meta.Width, meta.Height))
		},
		// onImageSaved
		func(filepath string) {
			a.showInfo("Saved", "Image saved successfully")
			a.updateStatusMessage(fmt.Sprintf("Saved: %s", filepath))
		},
	)
}

func (a *Application) onParametersChanged(params core.Parameters) {
	changed, err := a.session.SetParameters(params)
	if err != nil {
		a.showError("Processing Error", err)
		return
	}
	if !changed {
		return
	}

	a.grid.Update(a.session.Derived())
	a.updateStatusMessage(a.session.Derived().Params.String())
}

// OpenImage loads path as if it had been picked in the open dialog
func (a *Application) OpenImage(path string) bool {
	return a.menuHandler.OpenPath(path)
}

func (a *Application) updateStatusMessage(message string) {
	if a.statusLabel != nil {
		a.statusLabel.SetText(message)
	}
}

func (a *Application) ShowAndRun() {
	a.logger.WithField("debug_mode", a.debugMode).Info("Showing main application window")

	a.window.SetCloseIntercept(func() {
		a.cleanup()
		a.app.Quit()
	})

	a.window.ShowAndRun()
}

func (a *Application) cleanup() {
	a.logger.Info("Cleaning up application resources")
	a.session.Close()
}

func (a *Application) showError(title string, err error) {
	a.logger.WithError(err).Error(title)
	dialog.ShowError(err, a.window)
	a.updateStatusMessage(fmt.Sprintf("Error: %s", err.Error()))
}

func (a *Application) showInfo(title, message string) {
	a.logger.WithField("message", message).Info(title)
	dialog.ShowInformation(title, message, a.window)
}
