package report

import (
	"strconv"

	"github.com/fatih/color"
)

var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
	colorCyan   = color.New(color.FgCyan)
	colorBold   = color.New(color.Bold)
)

// SetColor forces colour on or off, overriding terminal detection.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}

// SectionTitle renders a bold section title.
func SectionTitle(title string) string {
	return colorBold.Sprint(title)
}

// ColorViral colours a viral ratio: negative red, above one green.
func ColorViral(val string) string {
	v, err := strconv.ParseFloat(val, 64)
	switch {
	case err != nil:
		return val
	case v < 0:
		return colorRed.Sprint(val)
	case v > 1:
		return colorGreen.Sprint(val)
	default:
		return val
	}
}

// ColorQuality colours a 0-10 quality score.
func ColorQuality(val string) string {
	v, err := strconv.ParseFloat(val, 64)
	switch {
	case err != nil:
		return val
	case v >= 8.5:
		return colorGreen.Sprint(val)
	case v < 7:
		return colorYellow.Sprint(val)
	default:
		return val
	}
}

// ColorLabel highlights a category label.
func ColorLabel(val string) string {
	return colorCyan.Sprint(val)
}
