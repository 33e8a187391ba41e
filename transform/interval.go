package transform

import (
	"errors"
	"fmt"
	"sort"
)

// ErrOverlap reports two replacement intervals covering the same bytes.
var ErrOverlap = errors.New("overlapping replacement intervals")

// Interval is a half-open byte range [Start, End) in some section text and
// the string that must replace it.
type Interval struct {
	Start   int
	End     int
	Content string
}

// overlaps reports whether the interval shares any byte with other.
func (iv Interval) overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// applyIntervals replaces every interval in text and returns the new text.
// Intervals are applied in descending start order so that replacing one
// never invalidates the offsets of those still pending; the input slice is
// not modified. Out-of-range or overlapping intervals are an error.
func applyIntervals(text string, intervals []Interval) (string, error) {
	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start > sorted[j].Start })

	for i, iv := range sorted {
		if iv.Start < 0 || iv.End > len(text) || iv.Start > iv.End {
			return "", fmt.Errorf("interval [%d,%d) out of range for %d bytes", iv.Start, iv.End, len(text))
		}
		if i > 0 && iv.End > sorted[i-1].Start {
			return "", fmt.Errorf("%w: [%d,%d) and [%d,%d)",
				ErrOverlap, iv.Start, iv.End, sorted[i-1].Start, sorted[i-1].End)
		}
	}

	out := text
	for _, iv := range sorted {
		out = out[:iv.Start] + iv.Content + out[iv.End:]
	}
	return out, nil
}
