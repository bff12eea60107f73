package calendar

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/alexanderramin/calplan/internal/domain"
)

// Swatch names an event color.
type Swatch string

const (
	SwatchBlue    Swatch = "blue"
	SwatchGreen   Swatch = "green"
	SwatchPurple  Swatch = "purple"
	SwatchAmber   Swatch = "amber"
	SwatchRose    Swatch = "rose"
	SwatchCyan    Swatch = "cyan"
	SwatchIndigo  Swatch = "indigo"
	SwatchEmerald Swatch = "emerald"
)

// ObjectiveSwatches colors objectives 1..3.
var ObjectiveSwatches = [domain.ObjectiveCount]Swatch{SwatchBlue, SwatchGreen, SwatchPurple}

// FallbackPalette colors events with no objective marker.
var FallbackPalette = []Swatch{SwatchAmber, SwatchRose, SwatchCyan, SwatchIndigo, SwatchEmerald}

func objectiveMarker(n int) string {
	return fmt.Sprintf("Objectif %d", n)
}

// ObjectiveIndex returns the first objective (1..3, checked in that
// order) whose "Objectif N" marker appears in description, or 0.
func ObjectiveIndex(description string) int {
	for n := 1; n <= domain.ObjectiveCount; n++ {
		if strings.Contains(description, objectiveMarker(n)) {
			return n
		}
	}
	return 0
}

// ReferencedObjectives returns every objective index whose marker appears
// in description, in ascending order.
func ReferencedObjectives(description string) []int {
	var refs []int
	for n := 1; n <= domain.ObjectiveCount; n++ {
		if strings.Contains(description, objectiveMarker(n)) {
			refs = append(refs, n)
		}
	}
	return refs
}

// ColorFor is a pure function of its inputs: the objective marker wins,
// otherwise the title hash picks from FallbackPalette.
func ColorFor(description, title string) Swatch {
	if n := ObjectiveIndex(description); n > 0 {
		return ObjectiveSwatches[n-1]
	}
	h := TitleHash(title)
	if h < 0 {
		h = -h
	}
	return FallbackPalette[h%int64(len(FallbackPalette))]
}

// TitleHash folds the title's UTF-16 code units with h = c + (h<<5) - h,
// where the shift operates on h truncated to 32 bits.
func TitleHash(title string) int64 {
	var h int64
	for _, c := range utf16.Encode([]rune(title)) {
		shifted := int64(int32(h) << 5)
		h = int64(c) + shifted - h
	}
	return h
}
