// Package image is MiniLight's pixel accumulator: a grid of raw radiance
// sums, a Ward (1994) log-mean luminance tone map, gamma encoding, and
// emission as a binary PPM. It is grounded on the teacher's use of
// image/png.Encode in main.go for format emission, generalized to the
// specification's hand-rolled PPM writer and tone-map math (the teacher
// has no equivalent, so this is written directly from the specification in
// the teacher's plain, loop-heavy style).
package image

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/hxa7241/minilight/pkg/core"
)

const (
	minDimension = 1
	maxDimension = 4000

	// displayLuminanceMax is the assumed maximum display luminance (DMAX)
	// used by the Ward 1994 tone operator.
	displayLuminanceMax = 200.0

	// ppmHeaderURI is the comment line written into every PPM header.
	ppmHeaderURI = "http://www.hxa.name/minilight"
)

var luminanceWeights = core.NewVec3(0.2126, 0.7152, 0.0722)

// Image is the width×height accumulator of raw radiance sums. Pixel (x,y)
// in user coordinates (origin bottom-left) is stored at row (height-1-y),
// column x, so storage order already matches the PPM's top-left origin.
type Image struct {
	width, height int
	pixels         []core.Vec3
}

// New creates a zeroed Image, clamping width and height to [1,4000].
func New(width, height int) *Image {
	w := clampDimension(width)
	h := clampDimension(height)
	return &Image{
		width:  w,
		height: h,
		pixels: make([]core.Vec3, w*h),
	}
}

func clampDimension(d int) int {
	if d < minDimension {
		return minDimension
	}
	if d > maxDimension {
		return maxDimension
	}
	return d
}

// Width returns the image width in pixels.
func (img *Image) Width() int { return img.width }

// Height returns the image height in pixels.
func (img *Image) Height() int { return img.height }

// AddToPixel accumulates radiance into pixel (x,y), ignoring out-of-bounds
// coordinates.
func (img *Image) AddToPixel(x, y int, radiance core.Vec3) {
	if x < 0 || x >= img.width || y < 0 || y >= img.height {
		return
	}
	row := img.height - 1 - y
	index := x + row*img.width
	img.pixels[index] = img.pixels[index].Add(radiance)
}

// toneMapScaling computes the Ward 1994 log-mean luminance scaling factor
// for the given number of accumulated iterations.
func (img *Image) toneMapScaling(divider float64) float64 {
	sumLogs := 0.0
	for _, p := range img.pixels {
		y := p.Dot(luminanceWeights) * divider
		sumLogs += math.Log10(math.Max(y, 1e-4))
	}

	adapt := math.Pow(10, sumLogs/float64(len(img.pixels)))

	a := 1.219 + math.Pow(displayLuminanceMax*0.25, 0.4)
	b := 1.219 + math.Pow(adapt, 0.4)

	return math.Pow(a/b, 2.5) / displayLuminanceMax
}

// Formatted writes the accumulated image as a binary PPM ("P6") to out,
// dividing every pixel by iteration (or 1, whichever is greater) and
// applying the Ward 1994 tone map followed by gamma encoding.
func (img *Image) Formatted(out io.Writer, iteration int) error {
	divider := 1.0
	if iteration > 1 {
		divider = 1.0 / float64(iteration)
	}

	scaling := img.toneMapScaling(divider)

	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "P6\n# %s\n\n%d %d\n255\n", ppmHeaderURI, img.width, img.height)

	buf := make([]byte, 3)
	for _, p := range img.pixels {
		buf[0] = gammaEncode(p.X, divider, scaling)
		buf[1] = gammaEncode(p.Y, divider, scaling)
		buf[2] = gammaEncode(p.Z, divider, scaling)
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}

	return w.Flush()
}

func gammaEncode(channel, divider, scaling float64) byte {
	m := math.Max(channel*divider*scaling, 0)
	g := math.Pow(m, 0.45)
	v := math.Floor(g*255 + 0.5)
	if v > 255 {
		v = 255
	}
	return byte(v)
}
