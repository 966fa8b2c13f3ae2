package renderer

// WorkItem is one scanline at one sample index
type WorkItem struct {
	ID       int // Position in generation order
	Sample   int // Sample index, 0-based
	Scanline int // Row j, 0 is the bottom of the image plane
}

// NewWorkItems lists samples×height items grouped by sample: every scanline of
// sample 0 comes before any scanline of sample 1. Within a sample scanlines run
// from the top row down.
func NewWorkItems(samples, height int) []WorkItem {
	items := make([]WorkItem, 0, samples*height)
	for sample := 0; sample < samples; sample++ {
		for j := height - 1; j >= 0; j-- {
			items = append(items, WorkItem{
				ID:       len(items),
				Sample:   sample,
				Scanline: j,
			})
		}
	}
	return items
}

// RunningAverage folds value into the average of sample previous samples.
// Sample 0 overwrites whatever the pixel held.
func RunningAverage(sample int) func(old, value Color) Color {
	return func(old, value Color) Color {
		if sample == 0 {
			return value
		}
		k := float64(sample)
		return old.Multiply(k).Add(value).Divide(k + 1)
	}
}
