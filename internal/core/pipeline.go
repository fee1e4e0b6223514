// internal/core/pipeline.go
// Fixed preprocessing and edge-detection chain
package core

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Run computes the four derived images for src with the given parameters.
// src is not modified and every returned Mat is a fresh allocation owned by
// the caller. Parameters are clamped and odd-adjusted, never rejected.
func Run(src gocv.Mat, params Parameters) (*DerivedImages, error) {
	if src.Empty() {
		return nil, ErrNoImageLoaded
	}
	if src.Channels() != 3 {
		return nil, fmt.Errorf("%w: expected 3 channels, got %d", ErrUnsupportedImage, src.Channels())
	}

	eff := params.Effective()

	gray, err := Grayscale(src)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	bright, err := Brighten(gray, eff.Brightness)
	if err != nil {
		return nil, err
	}
	defer bright.Close()

	pre, err := Blur(bright, eff.BlurKernel)
	if err != nil {
		return nil, err
	}

	lap, err := LaplacianEdges(pre, eff.LaplacianKernel)
	if err != nil {
		pre.Close()
		return nil, err
	}

	sobel, err := SobelEdges(pre, eff.SobelKernel)
	if err != nil {
		pre.Close()
		lap.Close()
		return nil, err
	}

	return &DerivedImages{
		Original:     src.Clone(),
		Preprocessed: pre,
		Laplacian:    lap,
		Sobel:        sobel,
		Params:       eff,
	}, nil
}

// Grayscale converts a BGR image to single-channel luminance
func Grayscale(src gocv.Mat) (gocv.Mat, error) {
	if src.Empty() {
		return gocv.NewMat(), fmt.Errorf("input image is empty")
	}

	gray := gocv.NewMat()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)
	return checkOutput(gray, "grayscale")
}

// Brighten adds offset to every pixel, saturating at 0 and 255
func Brighten(gray gocv.Mat, offset int) (gocv.Mat, error) {
	if gray.Empty() {
		return gocv.NewMat(), fmt.Errorf("input image is empty")
	}

	output := gocv.NewMat()
	gocv.ConvertScaleAbs(gray, &output, 1, float64(offset))
	return checkOutput(output, "brightness")
}

// Blur applies a Gaussian blur with a square kernel of side k. Sigma is
// derived from the kernel size.
func Blur(input gocv.Mat, k int) (gocv.Mat, error) {
	if input.Empty() {
		return gocv.NewMat(), fmt.Errorf("input image is empty")
	}

	k = OddKernel(k)
	output := gocv.NewMat()
	gocv.GaussianBlur(input, &output, image.Point{X: k, Y: k}, 0, 0, gocv.BorderDefault)
	return checkOutput(output, "gaussian blur")
}

// LaplacianEdges returns |Laplacian(input)| saturated to 8 bits
func LaplacianEdges(input gocv.Mat, k int) (gocv.Mat, error) {
	if input.Empty() {
		return gocv.NewMat(), fmt.Errorf("input image is empty")
	}

	response := gocv.NewMat()
	defer response.Close()
	gocv.Laplacian(input, &response, gocv.MatTypeCV64F, OddKernel(k), 1, 0, gocv.BorderDefault)
	if response.Empty() {
		return gocv.NewMat(), fmt.Errorf("laplacian produced no output")
	}

	output := gocv.NewMat()
	gocv.ConvertScaleAbs(response, &output, 1, 0)
	return checkOutput(output, "laplacian")
}

// SobelEdges returns the gradient magnitude sqrt(gx²+gy²) saturated to 8 bits
func SobelEdges(input gocv.Mat, k int) (gocv.Mat, error) {
	if input.Empty() {
		return gocv.NewMat(), fmt.Errorf("input image is empty")
	}

	k = OddKernel(k)

	gx := gocv.NewMat()
	defer gx.Close()
	gocv.Sobel(input, &gx, gocv.MatTypeCV64F, 1, 0, k, 1, 0, gocv.BorderDefault)

	gy := gocv.NewMat()
	defer gy.Close()
	gocv.Sobel(input, &gy, gocv.MatTypeCV64F, 0, 1, k, 1, 0, gocv.BorderDefault)

	if gx.Empty() || gy.Empty() {
		return gocv.NewMat(), fmt.Errorf("sobel produced no output")
	}

	magnitude := gocv.NewMat()
	defer magnitude.Close()
	gocv.Magnitude(gx, gy, &magnitude)
	if magnitude.Empty() {
		return gocv.NewMat(), fmt.Errorf("sobel magnitude produced no output")
	}

	// ConvertTo saturates, so magnitudes above 255 stay at 255.
	output := gocv.NewMat()
	magnitude.ConvertTo(&output, gocv.MatTypeCV8U)
	return checkOutput(output, "sobel")
}

func checkOutput(m gocv.Mat, step string) (gocv.Mat, error) {
	if m.Empty() {
		m.Close()
		return gocv.NewMat(), fmt.Errorf("%s produced no output", step)
	}
	return m, nil
}
