package theme

import (
	"fmt"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Hours       lipgloss.Color
	Warning     lipgloss.Color
	Error       lipgloss.Color

	// Background of rows that overlap another block.
	WarningBg lipgloss.Color

	TextOnAccent    lipgloss.Color
	TextOnSelection lipgloss.Color

	Light bool
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	light := IsLight(t.Bg)
	warningBg := Blend(t.Warning, t.Bg, 0.80)
	if !light {
		warningBg = Blend(t.Warning, t.Bg, 0.70)
	}

	return &Palette{
		Bg:          Color(t.Bg),
		BgHighlight: Color(t.BgHighlight),
		BgSelection: Color(t.BgSelection),
		Fg:          Color(t.Fg),
		FgMuted:     Color(t.FgMuted),
		Accent:      Color(t.Accent),
		Hours:       Color(t.Hours),
		Warning:     Color(t.Warning),
		Error:       Color(t.Error),
		WarningBg:   Color(warningBg),

		TextOnAccent:    Color(readableOn(t.Accent, t.Bg, t.Fg)),
		TextOnSelection: Color(readableOn(t.BgSelection, t.Bg, t.Fg)),

		Light: light,
	}
}

type rgb struct{ r, g, b float64 }

func parseRGB(hex string) (rgb, bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return rgb{}, false
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return rgb{}, false
	}
	return rgb{float64(v >> 16 & 0xff), float64(v >> 8 & 0xff), float64(v & 0xff)}, true
}

func (c rgb) hex() string {
	clamp := func(v float64) int {
		return int(math.Max(0, math.Min(255, math.Round(v))))
	}
	return fmt.Sprintf("#%02x%02x%02x", clamp(c.r), clamp(c.g), clamp(c.b))
}

// Blend mixes a towards b; ratio 0 returns a and 1 returns b. Colors that
// are not "#rrggbb" are returned unchanged.
func Blend(a, b string, ratio float64) string {
	ca, okA := parseRGB(a)
	cb, okB := parseRGB(b)
	if !okA || !okB {
		return a
	}
	ratio = math.Max(0, math.Min(1, ratio))
	mix := func(x, y float64) float64 { return x*(1-ratio) + y*ratio }
	return rgb{mix(ca.r, cb.r), mix(ca.g, cb.g), mix(ca.b, cb.b)}.hex()
}

// IsLight reports whether a background color needs dark text.
func IsLight(bg string) bool {
	return luminance(bg) > 0.55
}

// readableOn picks whichever of two text colors contrasts more with bg.
func readableOn(bg, text1, text2 string) string {
	if contrast(bg, text1) >= contrast(bg, text2) {
		return text1
	}
	return text2
}

func contrast(a, b string) float64 {
	l1, l2 := luminance(a), luminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// luminance is the WCAG relative luminance of a "#rrggbb" color.
func luminance(hex string) float64 {
	c, ok := parseRGB(hex)
	if !ok {
		return 0
	}
	linear := func(v float64) float64 {
		v /= 255
		if v <= 0.04045 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return 0.2126*linear(c.r) + 0.7152*linear(c.g) + 0.0722*linear(c.b)
}
