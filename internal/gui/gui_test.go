package gui

import (
	"image"
	"io"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"edge-detection-studio/internal/core"
	"edge-detection-studio/internal/metrics"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func writeTestImage(t *testing.T, value float64) string {
	t.Helper()
	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(value, value, value, 0), 6, 8, gocv.MatTypeCV8UC3)
	defer mat.Close()

	path := filepath.Join(t.TempDir(), "input.png")
	require.True(t, gocv.IMWrite(path, mat))
	return path
}

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	app := NewApplication(test.NewTempApp(t), quietLogger(), false)
	t.Cleanup(app.cleanup)
	return app
}

func TestControlPanelDefaults(t *testing.T) {
	test.NewTempApp(t)
	cp := NewControlPanel(quietLogger())

	assert.Equal(t, core.DefaultParameters(), cp.Parameters())
	for _, info := range core.GetParameterInfo() {
		assert.Equal(t, float64(info.Default), cp.sliders[info.ID].Value, info.Name)
		assert.Equal(t, float64(info.Min), cp.sliders[info.ID].Min, info.Name)
		assert.Equal(t, float64(info.Max), cp.sliders[info.ID].Max, info.Name)
	}
	assert.True(t, cp.saveBtn.Disabled())
}

func TestControlPanelSliderChange(t *testing.T) {
	test.NewTempApp(t)
	cp := NewControlPanel(quietLogger())

	var got []core.Parameters
	cp.SetCallbacks(nil, nil, func(p core.Parameters) {
		got = append(got, p)
	})

	cp.sliders[core.ParamBlurKernel].SetValue(8)
	cp.sliders[core.ParamBrightness].SetValue(75)
	// Same value again does not trigger another recomputation.
	cp.sliders[core.ParamBrightness].SetValue(75)

	require.Len(t, got, 2)
	assert.Equal(t, 8, got[0].BlurKernel)
	assert.Equal(t, 30, got[0].Brightness)
	assert.Equal(t, core.Parameters{Brightness: 75, BlurKernel: 8, LaplacianKernel: 3, SobelKernel: 3}, got[1])
	assert.Equal(t, "75", cp.valueLabels[core.ParamBrightness].Text)
}

func TestControlPanelButtons(t *testing.T) {
	test.NewTempApp(t)
	cp := NewControlPanel(quietLogger())

	opens, saves := 0, 0
	cp.SetCallbacks(func() { opens++ }, func() { saves++ }, nil)

	test.Tap(cp.openBtn)
	test.Tap(cp.saveBtn)
	assert.Equal(t, 1, opens)
	assert.Equal(t, 0, saves, "save is disabled until an image is loaded")

	cp.SetSaveEnabled(true)
	test.Tap(cp.saveBtn)
	assert.Equal(t, 1, saves)
}

func TestImageGridTitlesAndPlaceholders(t *testing.T) {
	test.NewTempApp(t)
	grid := NewImageGrid(metrics.NewEvaluator(), quietLogger())

	for _, kind := range core.AllKinds {
		assert.Equal(t, kind.Title(), grid.cards[kind].Title)
		assert.Equal(t, noImageSubtitle, grid.cards[kind].Subtitle)
		assert.Same(t, grid.placeholder, grid.images[kind].Image)
	}
}

func TestApplicationOpenAndAdjust(t *testing.T) {
	app := newTestApplication(t)
	path := writeTestImage(t, 100)

	require.True(t, app.OpenImage(path))
	assert.False(t, app.controls.saveBtn.Disabled())
	assert.Contains(t, app.statusLabel.Text, "Loaded: ")

	for _, kind := range core.AllKinds {
		assert.NotSame(t, app.grid.placeholder, app.grid.images[kind].Image, kind.String())
	}
	_, originalIsGray := app.grid.images[core.KindOriginal].Image.(*image.Gray)
	assert.False(t, originalIsGray, "original keeps its colors")
	_, sobelIsGray := app.grid.images[core.KindSobel].Image.(*image.Gray)
	assert.True(t, sobelIsGray)
	assert.Equal(t, "mean 130.0  σ 0.0  range 130–130  edges 100.0%", app.grid.cards[core.KindPreprocessed].Subtitle)

	before := app.session.Derived()
	app.controls.sliders[core.ParamBrightness].SetValue(50)
	assert.NotSame(t, before, app.session.Derived())
	assert.Equal(t, "mean 150.0  σ 0.0  range 150–150  edges 100.0%", app.grid.cards[core.KindPreprocessed].Subtitle)
	assert.Equal(t, app.session.Derived().Params.String(), app.statusLabel.Text)
}

func TestApplicationOpenEmptyPathIsNoop(t *testing.T) {
	app := newTestApplication(t)

	assert.False(t, app.OpenImage(""))
	assert.Nil(t, app.session.Derived())
	assert.True(t, app.controls.saveBtn.Disabled())

	require.True(t, app.OpenImage(writeTestImage(t, 60)))
	before := app.session.Derived()

	assert.False(t, app.OpenImage(""))
	assert.Same(t, before, app.session.Derived())
}

func TestApplicationSliderWithoutImage(t *testing.T) {
	app := newTestApplication(t)

	app.controls.sliders[core.ParamSobelKernel].SetValue(6)
	assert.Nil(t, app.session.Derived())
	assert.Equal(t, 6, app.session.Parameters().SobelKernel)
	assert.Equal(t, "Open an image to begin", app.statusLabel.Text)
}

func TestApplicationSave(t *testing.T) {
	app := newTestApplication(t)
	require.True(t, app.OpenImage(writeTestImage(t, 100)))

	target := filepath.Join(t.TempDir(), "edges")
	require.True(t, app.menuHandler.SavePath(core.KindSobel, target))
	assert.FileExists(t, target+".jpg")
	assert.Contains(t, app.statusLabel.Text, "Saved: ")
}
