package gks

import (
	"math"

	"github.com/opd-ai/go-gkscairo/internal/cairo"
)

// Logo is the small text mark drawn in the lower right corner at close.
type Logo struct {
	Enabled bool
	Text    string
}

// DefaultLogo returns the enabled default mark.
func DefaultLogo() Logo {
	return Logo{Enabled: true, Text: "gkscairo"}
}

func (ws *Workstation) drawLogo() {
	if !ws.logo.Enabled || ws.logo.Text == "" {
		return
	}
	cr := ws.cr
	size := math.Max(6, ws.mapper.Height*0.015)
	ext := cairo.MeasureText(cairo.FontStyleItalic, size, ws.logo.Text)
	margin := size / 2

	// drop the clip scope so the mark is never clipped away
	cr.Restore()
	cr.SelectFontFace(cairo.FontStyleItalic)
	cr.SetFontSize(size)
	cr.SetSourceRGBA(0.5, 0.5, 0.5, 1)
	cr.MoveTo(ws.mapper.Width-ext.Width-margin, ws.mapper.Height-margin-math.Abs(ext.Descent))
	cr.ShowText(ws.logo.Text)
	cr.NewPath()
	cr.Save()
}
