// Menu handler and file dialogs for open/save
package gui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"edge-detection-studio/internal/core"
	"edge-detection-studio/internal/io"
)

const defaultSaveName = "result" + io.DefaultExtension

// MenuHandler handles menu actions and the open/save dialog flows
type MenuHandler struct {
	window  fyne.Window
	session *core.Session
	logger  *logrus.Logger

	onImageLoaded func(string)
	onImageSaved  func(string)
}

func NewMenuHandler(window fyne.Window, session *core.Session, logger *logrus.Logger) *MenuHandler {
	return &MenuHandler{
		window:  window,
		session: session,
		logger:  logger,
	}
}

func (mh *MenuHandler) GetMainMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mh.ShowOpenDialog),
		fyne.NewMenuItem("Save Result...", mh.ShowSaveDialog),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Exit", func() {
			mh.window.Close()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mh.showAbout),
	)

	return fyne.NewMainMenu(fileMenu, helpMenu)
}

// ShowOpenDialog asks for an image file and opens it
func (mh *MenuHandler) ShowOpenDialog() {
	mh.logger.Info("Opening file dialog for image selection")

	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mh.showError("File Dialog Error", err)
			return
		}
		if reader == nil {
			mh.OpenPath("")
			return
		}
		path := reader.URI().Path()
		reader.Close()

		mh.OpenPath(path)
	}, mh.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(io.SupportedExtensions()))
	fileDialog.Show()
}

// OpenPath loads path into the session. An empty path is a no-op.
func (mh *MenuHandler) OpenPath(path string) bool {
	opened, err := mh.session.Open(path)
	if err != nil {
		mh.showError("Failed to Load Image", err)
		return false
	}
	if !opened {
		return false
	}

	if mh.onImageLoaded != nil {
		mh.onImageLoaded(path)
	}
	return true
}

// ShowSaveDialog asks which image to save, then where to save it
func (mh *MenuHandler) ShowSaveDialog() {
	if !mh.session.HasImage() {
		mh.showError("No Image", core.ErrNoImageLoaded)
		return
	}

	entry := widget.NewEntry()
	entry.SetPlaceHolder(core.SelectorPrompt())

	items := []*widget.FormItem{
		widget.NewFormItem("Image", entry),
	}

	dialog.ShowForm("Choose Image", "Next", "Cancel", items, func(confirmed bool) {
		if !confirmed || strings.TrimSpace(entry.Text) == "" {
			return
		}

		kind, err := core.ParseImageKind(entry.Text)
		if err != nil {
			mh.showError("Error", err)
			return
		}

		mh.showSaveFileDialog(kind)
	}, mh.window)
}

func (mh *MenuHandler) showSaveFileDialog(kind core.ImageKind) {
	mh.logger.WithField("kind", kind.String()).Info("Opening file dialog for image saving")

	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mh.showError("File Dialog Error", err)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		mh.SavePath(kind, path)
	}, mh.window)

	fileDialog.SetFileName(defaultSaveName)
	fileDialog.Show()
}

// SavePath writes the derived image of kind to path and confirms success
func (mh *MenuHandler) SavePath(kind core.ImageKind, path string) bool {
	written, err := mh.session.SaveKind(kind, path)
	if err != nil {
		mh.showError("Failed to Save Image", err)
		return false
	}

	// The save dialog creates path up front; drop it when the encoder wrote
	// a different file.
	if written != path {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			mh.logger.WithError(err).WithField("filepath", path).Warn("Failed to remove placeholder file")
		}
	}

	if mh.onImageSaved != nil {
		mh.onImageSaved(written)
	}
	return true
}

func (mh *MenuHandler) showAbout() {
	content := container.NewVBox(
		widget.NewLabel("Image Preprocessing & Edge Detection"),
		widget.NewSeparator(),
		widget.NewLabel("Brightness and Gaussian blur preprocessing"),
		widget.NewLabel("with Laplacian and Sobel edge maps."),
		widget.NewSeparator(),
		widget.NewLabel(fmt.Sprintf("Save selectors: %s", core.SelectorPrompt())),
		widget.NewLabel("Built with Go, Fyne and OpenCV"),
	)

	aboutDialog := dialog.NewCustom("About", "Close", content, mh.window)
	aboutDialog.Resize(fyne.NewSize(400, 260))
	aboutDialog.Show()
}

func (mh *MenuHandler) showError(title string, err error) {
	mh.logger.WithError(err).Error(title)
	dialog.ShowError(err, mh.window)
}

func (mh *MenuHandler) SetCallbacks(onImageLoaded, onImageSaved func(string)) {
	mh.onImageLoaded = onImageLoaded
	mh.onImageSaved = onImageSaved
}
