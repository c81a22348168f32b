// Package render turns iteration matrices into images.
//
// Values equal to the matrix's iteration cap are members of the set; HSV and
// Gray draw them black, Inferno gives them the top of its scale. The first
// matrix row holds the smallest imaginary values, so it ends up as the bottom
// row of the image.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"maps"
	"math"
	"slices"
	"strings"

	mandel "github.com/marben/mandel_escape"
)

// Palette maps an escape time in [0, maxIter] to a color.
type Palette func(count, maxIter int) color.RGBA

var inSet = color.RGBA{A: 255}

// HSV cycles the hue with the escape time.
func HSV(count, maxIter int) color.RGBA {
	if count >= maxIter {
		return inSet
	}
	hue := math.Mod(float64(count)*0.02, 1.0)
	return hsv(hue, 1, 1)
}

// Gray shades from black (fast escape) to white (escaping just before the cap).
func Gray(count, maxIter int) color.RGBA {
	if count >= maxIter {
		return inSet
	}
	v := uint8(math.Sqrt(float64(count)/float64(maxIter)) * 255)
	return color.RGBA{v, v, v, 255}
}

// infernoStops samples matplotlib's inferno colormap at ten evenly spaced points.
var infernoStops = [...]color.RGBA{
	{0x00, 0x00, 0x04, 0xff},
	{0x1b, 0x0c, 0x42, 0xff},
	{0x4b, 0x0c, 0x6b, 0xff},
	{0x78, 0x1c, 0x6d, 0xff},
	{0xa5, 0x2c, 0x60, 0xff},
	{0xcf, 0x44, 0x46, 0xff},
	{0xed, 0x69, 0x25, 0xff},
	{0xfb, 0x9a, 0x06, 0xff},
	{0xf7, 0xd0, 0x3c, 0xff},
	{0xfc, 0xff, 0xa4, 0xff},
}

// Inferno scales count by maxIter onto the inferno colormap, so the set itself is pale yellow.
func Inferno(count, maxIter int) color.RGBA {
	t := 1.0
	if maxIter > 0 {
		t = min(max(float64(count)/float64(maxIter), 0), 1)
	}
	pos := t * float64(len(infernoStops)-1)
	i := min(int(pos), len(infernoStops)-2)
	f := pos - float64(i)
	a, b := infernoStops[i], infernoStops[i+1]
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*f))
	}
	return color.RGBA{lerp(a.R, b.R), lerp(a.G, b.G), lerp(a.B, b.B), 255}
}

var palettes = map[string]Palette{
	"hsv":     HSV,
	"gray":    Gray,
	"inferno": Inferno,
}

// PaletteByName returns a palette by its name, ignoring case.
func PaletteByName(name string) (Palette, error) {
	p, ok := palettes[strings.ToLower(name)]
	if !ok {
		names := slices.Sorted(maps.Keys(palettes))
		return nil, fmt.Errorf("unknown palette %q, want one of %s", name, strings.Join(names, ", "))
	}
	return p, nil
}

// Image draws res into a Size × Size image.
func Image(res mandel.Result, p Palette) *image.RGBA {
	m := res.Matrix
	maxIter := res.Viewport.MaxIterations
	img := image.NewRGBA(image.Rect(0, 0, m.Size, m.Size))

	for row := range m.Size {
		py := m.Size - 1 - row
		for x, count := range m.Row(row) {
			img.SetRGBA(x, py, p(count, maxIter))
		}
	}
	return img
}

// WritePNG encodes the image of res as PNG.
func WritePNG(w io.Writer, res mandel.Result, p Palette) error {
	if err := png.Encode(w, Image(res, p)); err != nil {
		return fmt.Errorf("png.Encode: %w", err)
	}
	return nil
}

// Simple HSV → RGB
func hsv(h, s, v float64) color.RGBA {
	h = math.Mod(h, 1)
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	}
	return color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
}
