// Package gkscairo renders GKS metafile scripts to PNG, PostScript, PDF
// and SVG documents.
//
// A metafile script is a Lua program that drives one workstation through
// the gks table:
//
//	gks.open("pdf", "plot.pdf")
//	gks.set_line_style(gks.LINE_DASH)
//	gks.polyline({{0.1, 0.1}, {0.9, 0.9}})
//	gks.close()
//
// A script may instead define gks_draw(width, height) and leave opening
// and closing the document to the host, which then uses the configured
// device and output path.
//
// # Basic Usage
//
//	opts := gkscairo.DefaultOptions()
//	opts.Device = "svg"
//	if err := gkscairo.Render("plot.lua", opts); err != nil {
//		log.Fatal(err)
//	}
//
// # Watch Mode
//
// [Watch] renders once and then again every time the script or its
// configuration file changes, until the context is cancelled:
//
//	err := gkscairo.Watch(ctx, "plot.lua", opts, func(err error) {
//		if err != nil {
//			log.Printf("render failed: %v", err)
//		}
//	})
//
// # Error Handling
//
// Errors returned by [Render] are [*CategorizedError] values whose
// category tells configuration, script, drawing and file errors apart.
package gkscairo
