package export

import (
	"bytes"
	"image/png"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/renderer"
)

func TestMaxIntensity(t *testing.T) {
	tests := []struct {
		name     string
		pixels   []core.Vec3
		expected float64
	}{
		{"empty", nil, 1.0},
		{"all dim", []core.Vec3{core.NewVec3(0.2, 0.5, 0.9)}, 1.0},
		{"bright channel", []core.Vec3{core.NewVec3(0.2, 0.5, 0.9), core.NewVec3(0, 3.5, 1)}, 3.5},
		{"nan ignored", []core.Vec3{core.NewVec3(math.NaN(), 2, 0)}, 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaxIntensity(tt.pixels); got != tt.expected {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestToneMap(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		max      float64
		expected uint8
	}{
		{"black", 0, 1, 0},
		{"white", 1, 1, 255},
		{"quarter is half after gamma", 0.25, 1, 127},
		{"normalised by max", 1, 4, 127},
		{"negative clamps", -1, 1, 0},
		{"nan clamps", math.NaN(), 1, 0},
		{"above max clamps", 2, 1, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToneMap(tt.value, tt.max); got != tt.expected {
				t.Errorf("ToneMap(%f, %f) = %d, want %d", tt.value, tt.max, got, tt.expected)
			}
		})
	}
}

func TestToneMap_NormalSphereCenter(t *testing.T) {
	// A normal-shaded pixel facing the camera holds n+1 = (1,1,2). Normalised by
	// the brightest channel it displays as 0.5*(n+1) before gamma.
	center := core.NewVec3(1, 1, 2)
	maxIntensity := MaxIntensity([]core.Vec3{center})

	normalised := center.Divide(maxIntensity)
	if !normalised.ApproxEquals(core.NewVec3(0.5, 0.5, 1), 1e-12) {
		t.Errorf("Expected normalised (0.5,0.5,1), got %v", normalised)
	}

	c := ToneMapColor(center, maxIntensity)
	if c.R != uint8(math.Sqrt(0.5)*255) || c.B != 255 {
		t.Errorf("Unexpected tone-mapped color %v", c)
	}
}

// gradientImage has pixel (x, j) = (x, j, 0) so orientation is visible
func gradientImage(width, height int) *renderer.ImageAccumulator {
	image := renderer.NewImageAccumulator(width, height, core.Vec3{})
	for j := 0; j < height; j++ {
		for x := 0; x < width; x++ {
			value := core.NewVec3(float64(x), float64(j), 0)
			image.UpdatePixel(x, j, func(core.Vec3) core.Vec3 { return value })
		}
	}
	return image
}

func TestWritePPM(t *testing.T) {
	image := gradientImage(2, 2) // Max intensity 1

	var buf bytes.Buffer
	if err := WritePPM(&buf, image); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}

	expected := "P3\n2 2\n255\n" +
		"0 255 0\n255 255 0\n" + // Top row is j=1
		"0 0 0\n255 0 0\n"
	if buf.String() != expected {
		t.Errorf("Unexpected PPM:\n%s\nwant:\n%s", buf.String(), expected)
	}
}

func TestWritePNG_FlipsRows(t *testing.T) {
	image := gradientImage(3, 2)

	var buf bytes.Buffer
	if err := WritePNG(&buf, image); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}

	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 3 || decoded.Bounds().Dy() != 2 {
		t.Fatalf("Unexpected bounds %v", decoded.Bounds())
	}

	// Image y=0 is the top row, which is image-plane row j=1
	_, g, _, _ := decoded.At(0, 0).RGBA()
	if g>>8 == 0 {
		t.Error("Top row of the PNG should come from the top of the image plane")
	}
	_, g, _, _ = decoded.At(0, 1).RGBA()
	if g>>8 != 0 {
		t.Error("Bottom row of the PNG should come from row 0")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		valid    bool
	}{
		{"png", FormatPNG, true},
		{"PPM", FormatPPM, true},
		{"jpeg", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			format, err := ParseFormat(tt.input)
			if (err == nil) != tt.valid {
				t.Fatalf("ParseFormat(%q) error = %v", tt.input, err)
			}
			if format != tt.expected {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, format, tt.expected)
			}
		})
	}
}

func TestSaveFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "nested", "out.ppm")
	if err := SaveFile(filename, gradientImage(2, 2), FormatPPM); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}

	var buf bytes.Buffer
	err := Write(&buf, gradientImage(2, 2), Format("gif"))
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("Expected unsupported format error, got %v", err)
	}
}
