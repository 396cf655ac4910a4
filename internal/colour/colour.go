// Package colour provides the RGBA colour value type used for silhouette
// matching, plus parsing, validation and darkening.
package colour

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColorFormat is returned when a colour string cannot be parsed.
var ErrInvalidColorFormat = errors.New("invalid colour format")

// ErrFactorOutOfRange is returned when a darkening factor is not in [0,1].
var ErrFactorOutOfRange = errors.New("darkening factor out of range")

// Color is an 8-bit RGBA colour.
type Color struct {
	R uint8 // red component
	G uint8 // green component
	B uint8 // blue component
	A uint8 // alpha component
}

// Parse parses a colour from either 3 or 4 comma-separated integer channels
// or a hex string (#RRGGBB or RRGGBB). A missing alpha channel defaults to
// 255, so "0,0,255" and "0,0,255,255" parse to the same value.
func Parse(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("%w: empty string", ErrInvalidColorFormat)
	}

	if strings.Contains(s, ",") {
		return parseChannels(s)
	}

	return ParseHex(s)
}

// ParseHex parses a #RRGGBB or RRGGBB hex string.
func ParseHex(s string) (Color, error) {
	h := s
	if !strings.HasPrefix(h, "#") {
		h = "#" + h
	}
	if len(h) != 7 {
		return Color{}, fmt.Errorf("%w: %q is not a 6-digit hex colour", ErrInvalidColorFormat, s)
	}

	c, err := colorful.Hex(strings.ToLower(h))
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q is not a hex colour", ErrInvalidColorFormat, s)
	}

	r, g, b := c.RGB255()

	return Color{R: r, G: g, B: b, A: 255}, nil
}

// parseChannels parses "R,G,B" or "R,G,B,A" integer channels.
func parseChannels(s string) (Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, fmt.Errorf("%w: expected 3 or 4 channels, got %d", ErrInvalidColorFormat, len(parts))
	}

	vals := make([]uint8, 0, 4)
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Color{}, fmt.Errorf("%w: channel %q is not an integer", ErrInvalidColorFormat, p)
		}
		if v < 0 || v > 255 {
			return Color{}, fmt.Errorf("%w: channel %d outside 0-255", ErrInvalidColorFormat, v)
		}
		vals = append(vals, uint8(v))
	}

	c := Color{R: vals[0], G: vals[1], B: vals[2], A: 255}
	if len(vals) == 4 {
		c.A = vals[3]
	}

	return c, nil
}

// FromColor converts any color.Color to a Color via the NRGBA model, so
// palette entries and raw pixels compare against parsed colours exactly.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// NRGBA returns the colour as a color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Hex returns the colour as #rrggbb (alpha is not encoded).
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String returns the colour as comma-separated channels.
func (c Color) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", c.R, c.G, c.B, c.A)
}

// Darken scales the RGB channels by (1-factor), rounding to nearest and
// clamping to 0-255. Alpha is preserved. factor=0 returns the colour
// unchanged, factor=1 returns black.
func Darken(c Color, factor float64) Color {
	scale := 1 - factor

	return Color{
		R: scaleChannel(c.R, scale),
		G: scaleChannel(c.G, scale),
		B: scaleChannel(c.B, scale),
		A: c.A,
	}
}

// ValidateFactor checks a darkening factor is in [0,1]. Out-of-range values
// are a configuration error caught before any image is processed.
func ValidateFactor(f float64) error {
	if f < 0 || f > 1 {
		return fmt.Errorf("%w: %g must be between 0.0 and 1.0", ErrFactorOutOfRange, f)
	}

	return nil
}

// scaleChannel scales a single channel, rounded and clamped.
func scaleChannel(v uint8, scale float64) uint8 {
	s := int(math.Round(float64(v) * scale))
	if s < 0 {
		return 0
	}
	if s > 255 {
		return 255
	}

	return uint8(s)
}
