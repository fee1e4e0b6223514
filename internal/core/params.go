// Pipeline parameters and their slider ranges
package core

import "fmt"

// ParameterID identifies one of the four pipeline parameters
type ParameterID int

const (
	ParamBrightness ParameterID = iota
	ParamBlurKernel
	ParamLaplacianKernel
	ParamSobelKernel
)

// ParameterInfo describes a parameter for UI generation
type ParameterInfo struct {
	ID          ParameterID
	Name        string
	Label       string
	Min         int
	Max         int
	Default     int
	Description string
}

var parameterInfo = []ParameterInfo{
	{
		ID:          ParamBrightness,
		Name:        "brightness",
		Label:       "Brightness",
		Min:         0,
		Max:         100,
		Default:     30,
		Description: "Offset added to every gray level, saturating at 255",
	},
	{
		ID:          ParamBlurKernel,
		Name:        "blur_kernel",
		Label:       "Gaussian Blur",
		Min:         1,
		Max:         15,
		Default:     5,
		Description: "Side of the Gaussian kernel (even values use the next odd size)",
	},
	{
		ID:          ParamLaplacianKernel,
		Name:        "laplacian_kernel",
		Label:       "Laplacian Kernel Size",
		Min:         1,
		Max:         7,
		Default:     3,
		Description: "Laplacian aperture size (even values use the next odd size)",
	},
	{
		ID:          ParamSobelKernel,
		Name:        "sobel_kernel",
		Label:       "Sobel Kernel Size",
		Min:         1,
		Max:         7,
		Default:     3,
		Description: "Sobel aperture size (even values use the next odd size)",
	},
}

// GetParameterInfo returns the parameter table in display order
func GetParameterInfo() []ParameterInfo {
	result := make([]ParameterInfo, len(parameterInfo))
	copy(result, parameterInfo)
	return result
}

// Info returns the table entry for id
func (id ParameterID) Info() ParameterInfo {
	for _, info := range parameterInfo {
		if info.ID == id {
			return info
		}
	}
	panic(fmt.Sprintf("core: unknown parameter id %d", int(id)))
}

// Parameters is an immutable snapshot of the four slider values
type Parameters struct {
	Brightness      int
	BlurKernel      int
	LaplacianKernel int
	SobelKernel     int
}

// DefaultParameters returns the values the controls start with
func DefaultParameters() Parameters {
	var p Parameters
	for _, info := range parameterInfo {
		p = p.With(info.ID, info.Default)
	}
	return p
}

// Value returns the raw value of id
func (p Parameters) Value(id ParameterID) int {
	switch id {
	case ParamBrightness:
		return p.Brightness
	case ParamBlurKernel:
		return p.BlurKernel
	case ParamLaplacianKernel:
		return p.LaplacianKernel
	case ParamSobelKernel:
		return p.SobelKernel
	}
	panic(fmt.Sprintf("core: unknown parameter id %d", int(id)))
}

// With returns a copy of p with id set to value
func (p Parameters) With(id ParameterID, value int) Parameters {
	switch id {
	case ParamBrightness:
		p.Brightness = value
	case ParamBlurKernel:
		p.BlurKernel = value
	case ParamLaplacianKernel:
		p.LaplacianKernel = value
	case ParamSobelKernel:
		p.SobelKernel = value
	default:
		panic(fmt.Sprintf("core: unknown parameter id %d", int(id)))
	}
	return p
}

// Clamp pulls every field into its declared range
func (p Parameters) Clamp() Parameters {
	for _, info := range parameterInfo {
		p = p.With(info.ID, clampInt(p.Value(info.ID), info.Min, info.Max))
	}
	return p
}

// Effective returns the values actually used by the filters: clamped
// into range, with every kernel size made odd.
func (p Parameters) Effective() Parameters {
	p = p.Clamp()
	p.BlurKernel = OddKernel(p.BlurKernel)
	p.LaplacianKernel = OddKernel(p.LaplacianKernel)
	p.SobelKernel = OddKernel(p.SobelKernel)
	return p
}

func (p Parameters) String() string {
	return fmt.Sprintf("brightness=%d blur=%d laplacian=%d sobel=%d",
		p.Brightness, p.BlurKernel, p.LaplacianKernel, p.SobelKernel)
}

// OddKernel bumps an even kernel size to the next odd one
func OddKernel(k int) int {
	if k%2 == 0 {
		return k + 1
	}
	return k
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
