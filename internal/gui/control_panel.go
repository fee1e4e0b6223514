// internal/gui/control_panel.go
// Left panel: file buttons and the four parameter sliders
package gui

import (
	"fmt"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"edge-detection-studio/internal/core"
)

// ControlPanel holds the open/save buttons and one slider per parameter
type ControlPanel struct {
	logger *logrus.Logger

	container *fyne.Container

	openBtn *widget.Button
	saveBtn *widget.Button

	sliders     map[core.ParameterID]*widget.Slider
	valueLabels map[core.ParameterID]*widget.Label

	params core.Parameters

	// Callbacks
	onOpen              func()
	onSave              func()
	onParametersChanged func(core.Parameters)
}

func NewControlPanel(logger *logrus.Logger) *ControlPanel {
	panel := &ControlPanel{
		logger:      logger,
		sliders:     make(map[core.ParameterID]*widget.Slider),
		valueLabels: make(map[core.ParameterID]*widget.Label),
		params:      core.DefaultParameters(),
	}

	panel.initializeUI()
	return panel
}

func (cp *ControlPanel) initializeUI() {
	cp.openBtn = widget.NewButtonWithIcon("Open Image", theme.FolderOpenIcon(), func() {
		if cp.onOpen != nil {
			cp.onOpen()
		}
	})
	cp.saveBtn = widget.NewButtonWithIcon("Save Result", theme.DocumentSaveIcon(), func() {
		if cp.onSave != nil {
			cp.onSave()
		}
	})
	cp.saveBtn.Disable()

	content := container.NewVBox(cp.openBtn, cp.saveBtn, widget.NewSeparator())
	for _, info := range core.GetParameterInfo() {
		content.Add(cp.createParameterWidget(info))
	}

	cp.container = container.NewVBox(widget.NewCard("Controls", "", content))
}

func (cp *ControlPanel) createParameterWidget(info core.ParameterInfo) fyne.CanvasObject {
	label := widget.NewLabelWithStyle(info.Label+":", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	slider := widget.NewSlider(float64(info.Min), float64(info.Max))
	slider.Step = 1
	slider.SetValue(float64(info.Default))

	valueLabel := widget.NewLabel(fmt.Sprintf("%d", info.Default))

	id := info.ID
	slider.OnChanged = func(value float64) {
		cp.setParameter(id, int(math.Round(value)))
	}

	cp.sliders[id] = slider
	cp.valueLabels[id] = valueLabel

	return container.NewVBox(
		label,
		container.NewBorder(nil, nil, nil, valueLabel, slider),
	)
}

func (cp *ControlPanel) setParameter(id core.ParameterID, value int) {
	if cp.params.Value(id) == value {
		return
	}

	cp.params = cp.params.With(id, value)
	cp.valueLabels[id].SetText(fmt.Sprintf("%d", value))

	cp.logger.WithFields(logrus.Fields{
		"parameter": id.Info().Name,
		"value":     value,
	}).Debug("Parameter changed")

	if cp.onParametersChanged != nil {
		cp.onParametersChanged(cp.params)
	}
}

// SetCallbacks wires the buttons and sliders to the application
func (cp *ControlPanel) SetCallbacks(onOpen, onSave func(), onParametersChanged func(core.Parameters)) {
	cp.onOpen = onOpen
	cp.onSave = onSave
	cp.onParametersChanged = onParametersChanged
}

// Parameters returns the current slider values
func (cp *ControlPanel) Parameters() core.Parameters {
	return cp.params
}

// SetSaveEnabled enables saving once there is something to save
func (cp *ControlPanel) SetSaveEnabled(enabled bool) {
	if enabled {
		cp.saveBtn.Enable()
	} else {
		cp.saveBtn.Disable()
	}
}

func (cp *ControlPanel) GetContainer() fyne.CanvasObject {
	return cp.container
}
