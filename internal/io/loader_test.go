package io

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func newTestLoader() *ImageLoader {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewImageLoader(logger)
}

func TestIsSupportedImageFormat(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"photo.jpg", true},
		{"photo.JPEG", true},
		{"/tmp/dir.v2/photo.png", true},
		{"scan.bmp", true},
		{"scan.tiff", false},
		{"/tmp/dir.v2/photo", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSupportedImageFormat(tt.path))
		})
	}
}

func TestWithDefaultExtension(t *testing.T) {
	loader := newTestLoader()

	assert.Equal(t, "out.jpg", loader.WithDefaultExtension("out"))
	assert.Equal(t, "out.png", loader.WithDefaultExtension("out.png"))
	assert.Equal(t, "/tmp/a.b/out.jpg", loader.WithDefaultExtension("/tmp/a.b/out"))
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	loader := newTestLoader()
	path := filepath.Join(t.TempDir(), "gray.png")

	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(10, 20, 30, 0), 8, 6, gocv.MatTypeCV8UC3)
	defer mat.Close()

	require.NoError(t, loader.SaveImage(mat, path))

	loaded, err := loader.LoadImage(path)
	require.NoError(t, err)
	defer loaded.Close()

	assert.Equal(t, 6, loaded.Cols())
	assert.Equal(t, 8, loaded.Rows())
	assert.Equal(t, 3, loaded.Channels())
	assert.Equal(t, mat.ToBytes(), loaded.ToBytes())
}

func TestLoadImageErrors(t *testing.T) {
	loader := newTestLoader()
	dir := t.TempDir()

	_, err := loader.LoadImage(filepath.Join(dir, "notes.txt"))
	assert.ErrorContains(t, err, "unsupported image format")

	_, err = loader.LoadImage(filepath.Join(dir, "missing.png"))
	assert.ErrorContains(t, err, "failed to load image")

	corrupt := filepath.Join(dir, "corrupt.jpg")
	require.NoError(t, os.WriteFile(corrupt, []byte("not a jpeg"), 0o644))
	_, err = loader.LoadImage(corrupt)
	assert.ErrorContains(t, err, "failed to load image")
}

func TestSaveImageErrors(t *testing.T) {
	loader := newTestLoader()
	dir := t.TempDir()

	empty := gocv.NewMat()
	defer empty.Close()
	assert.ErrorContains(t, loader.SaveImage(empty, filepath.Join(dir, "empty.png")), "cannot save empty image")

	mat := gocv.NewMatWithSize(4, 4, gocv.MatTypeCV8UC1)
	defer mat.Close()
	assert.ErrorContains(t, loader.SaveImage(mat, filepath.Join(dir, "out.gif")), "unsupported image format")
	assert.NoFileExists(t, filepath.Join(dir, "out.gif"))
}
