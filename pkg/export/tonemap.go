package export

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// PixelSource is a snapshot-able grid of linear radiance, row 0 at the bottom
type PixelSource interface {
	Width() int
	Height() int
	Snapshot() []core.Vec3
}

// MaxIntensity returns the largest channel over all pixels, never less than 1
func MaxIntensity(pixels []core.Vec3) float64 {
	maxIntensity := 1.0
	for _, p := range pixels {
		for _, channel := range [3]float64{p.X, p.Y, p.Z} {
			if channel > maxIntensity {
				maxIntensity = channel
			}
		}
	}
	return maxIntensity
}

// ToneMap normalises one channel by maxIntensity, applies gamma 2 and
// truncates to a byte
func ToneMap(value, maxIntensity float64) uint8 {
	v := value / maxIntensity
	if !(v > 0) { // Negative or NaN
		return 0
	}
	return uint8(math.Sqrt(min(v, 1.0)) * 255)
}

// ToneMapColor maps a radiance value to an opaque 8-bit color
func ToneMapColor(c core.Vec3, maxIntensity float64) color.RGBA {
	return color.RGBA{
		R: ToneMap(c.X, maxIntensity),
		G: ToneMap(c.Y, maxIntensity),
		B: ToneMap(c.Z, maxIntensity),
		A: 255,
	}
}

// ToRGBA converts a snapshot into an image. Image-plane row 0 is the bottom,
// so rows are flipped to put the top of the scene at image y=0.
func ToRGBA(pixels []core.Vec3, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	maxIntensity := MaxIntensity(pixels)

	for j := 0; j < height; j++ {
		y := height - 1 - j
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, ToneMapColor(pixels[j*width+x], maxIntensity))
		}
	}

	return img
}

// SnapshotRGBA takes a snapshot of source and converts it
func SnapshotRGBA(source PixelSource) *image.RGBA {
	return ToRGBA(source.Snapshot(), source.Width(), source.Height())
}
