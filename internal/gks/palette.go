package gks

import (
	"fmt"
	"image/color"

	"golang.org/x/image/colornames"
)

// PaletteSize is the number of colour indices.
const PaletteSize = 256

// Palette maps GKS colour indices to colours.
type Palette struct {
	colors [PaletteSize]color.RGBA
}

// DefaultPalette returns the GKS default colour table: white background,
// black foreground, the six primaries and secondaries, then a grey ramp
// from black to white over the remaining indices.
func DefaultPalette() *Palette {
	p := &Palette{}
	base := []color.RGBA{
		colornames.White, colornames.Black, colornames.Red, colornames.Lime,
		colornames.Blue, colornames.Cyan, colornames.Magenta, colornames.Yellow,
	}
	copy(p.colors[:], base)
	n := PaletteSize - len(base)
	for i := 0; i < n; i++ {
		g := uint8(i * 255 / (n - 1))
		p.colors[len(base)+i] = color.RGBA{R: g, G: g, B: g, A: 255}
	}
	return p
}

// Set replaces the colour at index.
func (p *Palette) Set(index int, c color.RGBA) error {
	if index < 0 || index >= PaletteSize {
		return fmt.Errorf("%w: index %d out of range", ErrInvalidColor, index)
	}
	p.colors[index] = c
	return nil
}

// SetString parses value with ParseColor and stores it at index.
func (p *Palette) SetString(index int, value string) error {
	c, err := ParseColor(value)
	if err != nil {
		return fmt.Errorf("colour %d: %w", index, err)
	}
	return p.Set(index, c)
}

// Color returns the colour at index. Out of range indices give the
// foreground colour 1.
func (p *Palette) Color(index int) color.RGBA {
	if index < 0 || index >= PaletteSize {
		index = 1
	}
	return p.colors[index]
}

// RGBA returns the colour at index as unit range components.
func (p *Palette) RGBA(index int) (r, g, b, a float64) {
	c := p.Color(index)
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, float64(c.A) / 255
}

// Clone returns an independent copy of p.
func (p *Palette) Clone() *Palette {
	out := *p
	return &out
}
