package export

import (
	"bufio"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WritePPM writes a plain-text P3 image, top row first
func WritePPM(w io.Writer, source PixelSource) error {
	width, height := source.Width(), source.Height()
	pixels := source.Snapshot()
	maxIntensity := MaxIntensity(pixels)

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", width, height)

	for j := height - 1; j >= 0; j-- {
		for x := 0; x < width; x++ {
			c := ToneMapColor(pixels[j*width+x], maxIntensity)
			fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM: %w", err)
	}
	return nil
}

// WritePNG encodes the current snapshot as PNG
func WritePNG(w io.Writer, source PixelSource) error {
	if err := png.Encode(w, SnapshotRGBA(source)); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// Format names an output file format
type Format string

const (
	FormatPNG Format = "png"
	FormatPPM Format = "ppm"
)

// ParseFormat accepts "png" or "ppm" in any case
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatPNG:
		return FormatPNG, nil
	case FormatPPM:
		return FormatPPM, nil
	}
	return "", fmt.Errorf("unsupported output format %q", name)
}

// Write encodes source in the given format
func Write(w io.Writer, source PixelSource, format Format) error {
	switch format {
	case FormatPPM:
		return WritePPM(w, source)
	case FormatPNG:
		return WritePNG(w, source)
	}
	return fmt.Errorf("unsupported output format %q", format)
}

// SaveFile writes source to filename, creating parent directories
func SaveFile(filename string, source PixelSource, format Format) error {
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := Write(file, source, format); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
