package mandel

import (
	"maps"
	"slices"
	"strings"
)

const (
	// unzoomed view spans real axis [-2.5, 1.0] and imaginary axis [-1.5, 1.5]
	baseRealSpan = 3.5
	baseImagSpan = 3.0

	DefaultEscapeRadius = 2.0
)

// Viewport describes which part of the complex plane is sampled and how.
type Viewport struct {
	CenterReal    float64 `json:"centerReal"`
	CenterImag    float64 `json:"centerImag"`
	Zoom          float64 `json:"zoom"`          // 1 is no zoom, larger is narrower
	Resolution    int     `json:"resolution"`    // samples along each axis
	MaxIterations int     `json:"maxIterations"` // iteration cap, also the in-set sentinel
	EscapeRadius  float64 `json:"escapeRadius"`
}

// DefaultViewport returns the whole set at the default control values.
func DefaultViewport() Viewport {
	return Viewport{
		CenterReal:    -0.5,
		CenterImag:    0,
		Zoom:          1,
		Resolution:    500,
		MaxIterations: 50,
		EscapeRadius:  DefaultEscapeRadius,
	}
}

// RealSpan is the width of the sampled region.
func (v Viewport) RealSpan() float64 { return baseRealSpan / v.Zoom }

// ImagSpan is the height of the sampled region.
func (v Viewport) ImagSpan() float64 { return baseImagSpan / v.Zoom }

// Region returns the axis bounds a renderer needs to align the matrix with the complex plane.
func (v Viewport) Region() Region {
	rs, is := v.RealSpan(), v.ImagSpan()
	return Region{
		Xmin: v.CenterReal - rs/2,
		Xmax: v.CenterReal + rs/2,
		Ymin: v.CenterImag - is/2,
		Ymax: v.CenterImag + is/2,
	}
}

// Region within the complex plane. X is the real axis, Y the imaginary one.
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

func (r Region) Width() float64  { return r.Xmax - r.Xmin }
func (r Region) Height() float64 { return r.Ymax - r.Ymin }

func (r Region) Center() complex128 {
	return complex((r.Xmin+r.Xmax)/2, (r.Ymin+r.Ymax)/2)
}

// viewportOf centers a default viewport on r, zoomed so its real span matches r's width.
func viewportOf(r Region) Viewport {
	v := DefaultViewport()
	c := r.Center()
	v.CenterReal, v.CenterImag = real(c), imag(c)
	v.Zoom = baseRealSpan / r.Width()
	v.MaxIterations = 1000
	return v
}

// Classic landmarks in the Mandelbrot set
var (
	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = viewportOf(Region{Xmin: -0.8, Xmax: -0.7, Ymin: 0.05, Ymax: 0.15})

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = viewportOf(Region{Xmin: -1.85, Xmax: -1.75, Ymin: -0.10, Ymax: -0.02})

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = viewportOf(Region{Xmin: -0.7435, Xmax: -0.7420, Ymin: 0.1310, Ymax: 0.1325})

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = viewportOf(Region{Xmin: -0.7480, Xmax: -0.7450, Ymin: 0.0950, Ymax: 0.0980})

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = viewportOf(Region{Xmin: -0.7400, Xmax: -0.7350, Ymin: 0.1800, Ymax: 0.1850})

	// Minibrot in a Mini-Spiral – self-similar copy inside a spiral arm
	MinibrotInMiniSpiral = viewportOf(Region{Xmin: -1.7390, Xmax: -1.7375, Ymin: -0.0235, Ymax: -0.0220})
)

var landmarks = map[string]Viewport{
	"seahorse":        SeahorseValley,
	"elephant":        ElephantValley,
	"spiral-minibrot": SpiralMinibrot,
	"triple-spiral":   TripleSpiral,
	"dragon":          ValleyOfTheDragon,
	"mini-spiral":     MinibrotInMiniSpiral,
}

// LandmarkByName looks up a landmark viewport, ignoring case.
func LandmarkByName(name string) (Viewport, bool) {
	v, ok := landmarks[strings.ToLower(name)]
	return v, ok
}

// LandmarkNames lists the names accepted by LandmarkByName.
func LandmarkNames() []string {
	return slices.Sorted(maps.Keys(landmarks))
}
