package gks

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor parses an SVG colour keyword, a hex colour ("#rgb", "#rrggbb",
// "#rrggbbaa") or an "rgb(r, g, b)" / "rgba(r, g, b, a)" function.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, fmt.Errorf("%w: empty colour string", ErrInvalidColor)
	}
	lower := strings.ToLower(s)
	if c, ok := colornames.Map[lower]; ok {
		return c, nil
	}
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s[1:])
	case strings.HasPrefix(lower, "rgba(") && strings.HasSuffix(s, ")"):
		return parseColorFunc(s[5:len(s)-1], 4)
	case strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(s, ")"):
		return parseColorFunc(s[4:len(s)-1], 3)
	}
	return color.RGBA{}, fmt.Errorf("%w: unrecognized format %q", ErrInvalidColor, s)
}

func parseHexColor(s string) (color.RGBA, error) {
	// short forms double each digit
	if len(s) == 3 || len(s) == 4 {
		var b strings.Builder
		for _, r := range s {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		s = b.String()
	}
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("%w: hex colour length %d", ErrInvalidColor, len(s))
	}
	v := [4]uint8{3: 255}
	for i := 0; i < len(s)/2; i++ {
		n, err := strconv.ParseUint(s[2*i:2*i+2], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%w: %v", ErrInvalidColor, err)
		}
		v[i] = uint8(n)
	}
	return color.RGBA{R: v[0], G: v[1], B: v[2], A: v[3]}, nil
}

func parseColorFunc(body string, n int) (color.RGBA, error) {
	parts := strings.Split(body, ",")
	if len(parts) != n {
		return color.RGBA{}, fmt.Errorf("%w: want %d components, got %d", ErrInvalidColor, n, len(parts))
	}
	v := [4]uint8{3: 255}
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if i == 3 && strings.Contains(p, ".") {
			f, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return color.RGBA{}, fmt.Errorf("%w: alpha: %v", ErrInvalidColor, err)
			}
			v[i] = uint8(clampUnit(f) * 255)
			continue
		}
		c, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%w: component %d: %v", ErrInvalidColor, i, err)
		}
		v[i] = uint8(c)
	}
	return color.RGBA{R: v[0], G: v[1], B: v[2], A: v[3]}, nil
}

func clampUnit(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
