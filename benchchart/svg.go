// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/benchgraph/benchgraph/benchdata"
	"github.com/benchgraph/benchgraph/benchseries"
)

const (
	fontSize  = 16
	lineWidth = 2
)

// A Chart is the data drawn by WriteSVG.
type Chart struct {
	Series      benchseries.Series
	Regressions map[benchdata.Label]*benchseries.Regression
	Layout      *Layout

	// RevisionURL is the link prefix of a revision; the revision
	// number is appended to it.
	RevisionURL string
}

// Color is the stroke of a series line.
type Color struct {
	R, G, B int
	Opacity float64
}

func (c Color) rgb() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// LineColor returns the color of a series whose regression has the
// given MinSlope, given the slope range of the chart. Worsening
// (slower) series turn red, improving ones green, in proportion to
// their share of the extreme slope. A zero extreme gives no tint.
func LineColor(minSlope, up, down float64) Color {
	c := Color{128, 128, 128, 0.10}
	switch {
	case minSlope < 0:
		d := share(minSlope, down)
		c.G += int(d * 128)
		c.Opacity += d * 0.9
	case minSlope > 0:
		d := share(minSlope, up)
		c.R += int(d * 128)
		c.Opacity += d * 0.9
	}
	return c
}

func share(v, extreme float64) float64 {
	if extreme == 0 {
		return 0
	}
	return math.Max(0, v/extreme)
}

// WriteSVG writes the chart as a standalone SVG document.
func WriteSVG(w io.Writer, c *Chart) error {
	var buf bytes.Buffer
	c.render(&buf)
	_, err := w.Write(buf.Bytes())
	return err
}

func px(v float64) int {
	return int(math.Round(v))
}

func attr(name, value string) string {
	return name + `="` + html.EscapeString(value) + `"`
}

// jsString quotes s as a single-quoted JavaScript string.
func jsString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

func (c *Chart) render(w io.Writer) {
	l := c.Layout
	up, down := benchseries.SlopeRange(c.Regressions)

	canvas := svg.New(w)
	fmt.Fprintf(canvas.Writer, "<!--Picture height %.2f corresponds to bench value %.2f.-->\n", l.Height, l.Box.Height())
	canvas.Start(px(l.Width), px(l.Height),
		fmt.Sprintf(`viewBox="0 0 %d %d"`, px(l.Width), px(l.Height)),
		attr("onclick", "var event = arguments[0] || window.event;"+
			" if (event.shiftKey) { highlightRevision(null); }"+
			" if (event.ctrlKey) { highlight(null); }"+
			" return false;"))

	canvas.Def()
	canvas.Marker("circleMark", 1, 1, 2, 2, `viewBox="0 0 2 2"`, `markerUnits="strokeWidth"`, `orient="0"`)
	canvas.Circle(1, 1, 1)
	canvas.MarkerEnd()
	canvas.DefEnd()

	canvas.Script("text/javascript", strings.ReplaceAll(revisionScript, "REVISION_URL", jsString(c.RevisionURL)))
	c.renderRevisions(canvas)

	canvas.Script("text/javascript", lineScript)
	for _, label := range c.Series.Labels() {
		c.renderLine(canvas, label, up, down)
	}

	canvas.Text(0, fontSize, " ", `id="label"`, fmt.Sprintf(`font-size="%d"`, fontSize))
	fmt.Fprintf(canvas.Writer, `<a id="rev_link" xlink:href="" target="_top">`+"\n")
	canvas.Text(0, fontSize*2, " ", `id="revision"`,
		fmt.Sprintf("font-size:%dpx;stroke:#0000dd;text-decoration:underline", fontSize))
	fmt.Fprintf(canvas.Writer, "</a>\n")
	canvas.End()
}

// renderRevisions draws one full-height background rectangle per
// revision. Each reaches halfway to its neighbors.
func (c *Chart) renderRevisions(canvas *svg.SVG) {
	l := c.Layout
	revs := revisions(c.Series)
	rect := func(left, width float64, rev int) {
		id := strconv.Itoa(rev)
		canvas.Rect(px(l.X(left)), 0, px(l.DW(width)), px(l.Height),
			attr("id", id),
			`fill="white"`,
			`stroke="rgb(98%,98%,88%)"`,
			fmt.Sprintf(`stroke-width="%d"`, lineWidth),
			attr("onmouseover", "var event = arguments[0] || window.event;"+
				" if (event.shiftKey) { highlightRevision("+jsString(id)+"); return false; }"))
	}
	left := l.Box.MinX
	cur := revs[0]
	for _, next := range revs[1:] {
		width := float64(next-cur)/2 + (float64(cur) - left)
		rect(left, width, cur)
		left += width
		cur = next
	}
	rect(left, l.Box.MaxX-left, cur)
}

func (c *Chart) renderLine(canvas *svg.SVG, label benchdata.Label, up, down float64) {
	l := c.Layout
	name := label.String()
	canvas.Group(attr("id", name))

	color := Color{128, 128, 128, 0.10}
	if reg, ok := c.Regressions[label]; ok {
		color = LineColor(reg.MinSlope(), up, down)
		canvas.Polyline(
			[]int{px(l.X(reg.MinX)), px(l.X(reg.MaxX))},
			[]int{px(l.Y(reg.At(reg.MinX))), px(l.Y(reg.At(reg.MaxX)))},
			attr("id", name+"_linear"),
			`fill="none"`, `stroke="yellow"`,
			fmt.Sprintf(`stroke-width="%.2f"`, math.Abs(l.DH(reg.ResidualError*2))),
			`opacity="0.5"`, `pointer-events="none"`, `visibility="hidden"`)
	}

	samples := c.Series[label]
	xs := make([]int, len(samples))
	ys := make([]int, len(samples))
	for i, p := range samples {
		xs[i], ys[i] = px(l.X(float64(p.Revision))), px(l.Y(p.Value))
	}
	canvas.Polyline(xs, ys,
		attr("id", name+"_line"),
		attr("onmouseover", "var event = arguments[0] || window.event;"+
			" if (event.ctrlKey) { highlight("+jsString(name)+"); return false; }"),
		`fill="none"`,
		attr("stroke", color.rgb()),
		fmt.Sprintf(`stroke-width="%d"`, lineWidth),
		fmt.Sprintf(`opacity="%.2f"`, color.Opacity))
	canvas.Gend()
}

// revisions returns the distinct revisions of s in ascending order.
func revisions(s benchseries.Series) []int {
	set := make(map[int]struct{})
	for _, samples := range s {
		for _, p := range samples {
			set[p.Revision] = struct{}{}
		}
	}
	revs := make([]int, 0, len(set))
	for r := range set {
		revs = append(revs, r)
	}
	sort.Ints(revs)
	return revs
}

const revisionScript = `//<![CDATA[
var previousRevision;
var previousRevisionFill;
var previousRevisionStroke;
function highlightRevision(id) {
    if (previousRevision == id) return;

    document.getElementById('revision').firstChild.nodeValue = 'r' + id;
    document.getElementById('rev_link').setAttribute('xlink:href', REVISION_URL + id);

    var preRevision = document.getElementById(previousRevision);
    if (preRevision) {
        preRevision.setAttributeNS(null, 'fill', previousRevisionFill);
        preRevision.setAttributeNS(null, 'stroke', previousRevisionStroke);
    }

    var revision = document.getElementById(id);
    previousRevision = id;
    if (revision) {
        previousRevisionFill = revision.getAttributeNS(null, 'fill');
        revision.setAttributeNS(null, 'fill', 'rgb(100%, 95%, 95%)');
        previousRevisionStroke = revision.getAttributeNS(null, 'stroke');
        revision.setAttributeNS(null, 'stroke', 'rgb(100%, 90%, 90%)');
    }
}
//]]>`

const lineScript = `//<![CDATA[
var previous;
var previousColor;
var previousOpacity;
function highlight(id) {
    if (previous == id) return;

    document.getElementById('label').firstChild.nodeValue = id;

    var preGroup = document.getElementById(previous);
    if (preGroup) {
        var preLine = document.getElementById(previous + '_line');
        preLine.setAttributeNS(null, 'stroke', previousColor);
        preLine.setAttributeNS(null, 'opacity', previousOpacity);
        var preSlope = document.getElementById(previous + '_linear');
        if (preSlope) {
            preSlope.setAttributeNS(null, 'visibility', 'hidden');
        }
    }

    var group = document.getElementById(id);
    previous = id;
    if (group) {
        group.parentNode.appendChild(group);
        var line = document.getElementById(id + '_line');
        previousColor = line.getAttributeNS(null, 'stroke');
        previousOpacity = line.getAttributeNS(null, 'opacity');
        line.setAttributeNS(null, 'stroke', 'blue');
        line.setAttributeNS(null, 'opacity', '1');
        var slope = document.getElementById(id + '_linear');
        if (slope) {
            slope.setAttributeNS(null, 'visibility', 'visible');
        }
    }
}
//]]>`
