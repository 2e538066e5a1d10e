// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"fmt"
	"image/color"
	"io"

	"github.com/aclements/go-moremath/scale"
	"github.com/benchgraph/benchgraph/benchseries"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const pngDPI = 96

// WritePNG draws a static version of c as a PNG image. Lines are
// colored as in the SVG chart; regression lines are omitted.
func WritePNG(w io.Writer, c *Chart, title string) error {
	l := c.Layout
	up, down := benchseries.SlopeRange(c.Regressions)

	pl := plot.New()
	pl.Title.Text = title
	pl.X.Label.Text = "revision"
	pl.Y.Label.Text = "msecs"
	pl.X.Min, pl.X.Max = l.Box.MinX, l.Box.MaxX
	pl.Y.Min, pl.Y.Max = l.Box.MinY, l.Box.MaxY
	pl.X.Tick.Marker = revisionTicks{}

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	pl.Add(grid)

	for _, label := range c.Series.Labels() {
		samples := c.Series[label]
		xys := make(plotter.XYs, len(samples))
		for i, p := range samples {
			xys[i].X, xys[i].Y = float64(p.Revision), p.Value
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("plotting %s: %w", label, err)
		}
		clr := Color{128, 128, 128, 0.10}
		if reg, ok := c.Regressions[label]; ok {
			clr = LineColor(reg.MinSlope(), up, down)
		}
		line.LineStyle.Color = color.NRGBA{uint8(clr.R), uint8(clr.G), uint8(clr.B), uint8(clr.Opacity * 0xFF)}
		line.LineStyle.Width = vg.Points(lineWidth)
		pl.Add(line)
	}

	// Pixels to points at pngDPI.
	width := vg.Length(l.Width) * vg.Inch / pngDPI
	height := vg.Length(l.Height) * vg.Inch / pngDPI
	can := vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(width, height),
		vgimg.UseDPI(pngDPI), vgimg.UseBackgroundColor(color.White))}
	pl.Draw(draw.New(can))
	_, err := can.WriteTo(w)
	return err
}

// revisionTicks places ticks on whole revisions.
type revisionTicks struct{}

func (revisionTicks) Ticks(min, max float64) []plot.Tick {
	major, minor := scale.Linear{Min: min, Max: max}.Ticks(scale.TickOptions{Max: 10})
	var ticks []plot.Tick
	for _, v := range major {
		if v != float64(int(v)) {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf("r%d", int(v))})
	}
	for _, v := range minor {
		ticks = append(ticks, plot.Tick{Value: v})
	}
	return ticks
}
