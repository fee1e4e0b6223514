// Per-panel intensity statistics
package metrics

import (
	"fmt"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultEdgeThreshold is the gray level from which a pixel counts as an edge
const DefaultEdgeThreshold = 32

// Summary describes the intensity distribution of one image
type Summary struct {
	Mean        float64 `json:"mean"`
	StdDev      float64 `json:"std_dev"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	EdgeDensity float64 `json:"edge_density"` // 0.0 to 1.0
}

func (s Summary) String() string {
	return fmt.Sprintf("mean %.1f  σ %.1f  range %.0f–%.0f  edges %.1f%%",
		s.Mean, s.StdDev, s.Min, s.Max, s.EdgeDensity*100)
}

// Evaluator computes summaries for displayed images
type Evaluator struct {
	edgeThreshold uint8
}

// NewEvaluator creates an evaluator using DefaultEdgeThreshold
func NewEvaluator() *Evaluator {
	return &Evaluator{edgeThreshold: DefaultEdgeThreshold}
}

// SetEdgeThreshold changes the gray level counted as an edge
func (e *Evaluator) SetEdgeThreshold(threshold uint8) {
	e.edgeThreshold = threshold
}

// Summarize computes statistics for an 8-bit image. Color images are
// reduced to gray first.
func (e *Evaluator) Summarize(input gocv.Mat) (Summary, error) {
	if input.Empty() {
		return Summary{}, fmt.Errorf("empty image")
	}

	gray := input
	switch input.Channels() {
	case 1:
	case 3:
		gray = gocv.NewMat()
		defer gray.Close()
		gocv.CvtColor(input, &gray, gocv.ColorBGRToGray)
	default:
		return Summary{}, fmt.Errorf("unsupported channel count: %d", input.Channels())
	}

	if gray.Type() != gocv.MatTypeCV8UC1 {
		return Summary{}, fmt.Errorf("unsupported image type: %v", gray.Type())
	}

	return e.SummarizePixels(gray.ToBytes()), nil
}

// SummarizePixels computes statistics for raw 8-bit gray levels
func (e *Evaluator) SummarizePixels(pixels []byte) Summary {
	if len(pixels) == 0 {
		return Summary{}
	}

	values := make([]float64, len(pixels))
	edges := 0
	for i, p := range pixels {
		values[i] = float64(p)
		if p >= e.edgeThreshold {
			edges++
		}
	}

	mean, std := stat.PopMeanStdDev(values, nil)
	return Summary{
		Mean:        mean,
		StdDev:      std,
		Min:         floats.Min(values),
		Max:         floats.Max(values),
		EdgeDensity: float64(edges) / float64(len(values)),
	}
}
