// Package timeline derives display-ready views from a shipment's status
// history: a presentation (label + colour) per status token, and an ordered
// projection of the full history for timeline rendering.
package timeline

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Color is the presentation category a status token maps to. Values are
// stable identifiers the rendering layer translates into actual styling.
type Color string

const (
	ColorGreen Color = "green"
	ColorBlue  Color = "blue"
	ColorAmber Color = "amber"
	ColorRed   Color = "red"
	ColorGray  Color = "gray"
)

// Presentation is the derived display pairing for a status token. It is
// computed on demand and never stored.
type Presentation struct {
	Label string `json:"label"`
	Color Color  `json:"color"`
}

// statusColors maps known status tokens to their colour category. This is
// configuration data: extend the map to cover new tokens, never branch on
// token values in code. Tokens absent from the map fall back to ColorGray.
var statusColors = map[string]Color{
	"completed": ColorGreen,
	"delivered": ColorGreen,

	"picked_up":        ColorBlue,
	"departed":         ColorBlue,
	"in_transit":       ColorBlue,
	"out_for_delivery": ColorBlue,

	"pending":          ColorAmber,
	"preparing":        ColorAmber,
	"pickup_scheduled": ColorAmber,
	"in_warehouse":     ColorAmber,
	"delayed":          ColorAmber,
	"on_hold":          ColorAmber,

	"failed":    ColorRed,
	"cancelled": ColorRed,
	"returned":  ColorRed,
}

// Classify maps a raw status token to its display presentation. The function
// is total: every input, including unrecognized tokens and the empty string,
// produces a result. Unknown tokens get a title-cased label and ColorGray.
func Classify(token string) Presentation {
	return Presentation{
		Label: Label(token),
		Color: colorFor(token),
	}
}

// Label converts a status token into a human-readable label: underscores
// become spaces and the first rune of each word is upper-cased.
// "arrived_at_destination" becomes "Arrived At Destination".
func Label(token string) string {
	words := strings.Split(token, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func colorFor(token string) Color {
	if c, ok := statusColors[token]; ok {
		return c
	}
	return ColorGray
}
