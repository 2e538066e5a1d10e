// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/benchgraph/benchgraph/benchdata"
	"github.com/benchgraph/benchgraph/benchseries"
	"github.com/google/safehtml"
	"github.com/google/safehtml/template"
	"github.com/google/safehtml/uncheckedconversions"
)

// A Page is an HTML page showing a chart along with controls to
// filter its lines.
type Page struct {
	Title string

	// Chart is the chart to show. If nil, the page has controls but
	// no chart.
	Chart *Chart

	Series benchseries.Series

	// Ignored holds the points dropped as outliers, and MinTime and
	// MaxTime the range they fell outside of.
	Ignored          *benchdata.Store
	MinTime, MaxTime float64

	// Oldest and Newest are the revisions covered.
	Oldest, Newest int

	// RevisionURL is the link prefix of a revision.
	RevisionURL string
}

type pageData struct {
	Title    string
	SVG      safehtml.HTML
	HasChart bool
	Selects  []selectData

	Discarded        int
	MinTime, MaxTime string
	Description      string

	Oldest, Newest revisionLink
}

type selectData struct {
	Header  string
	Options []optionData
}

type optionData struct {
	Text  string
	Value string // JSON list of label strings
}

type revisionLink struct {
	Text string
	URL  string
}

// WritePage writes p as an HTML document.
func WritePage(w io.Writer, p *Page) error {
	data := &pageData{
		Title:   p.Title,
		Selects: selects(p.Series),
		MinTime: strconv.FormatFloat(p.MinTime, 'f', -1, 64),
		MaxTime: strconv.FormatFloat(p.MaxTime, 'f', -1, 64),
		Oldest:  revisionLink{fmt.Sprintf("r%d", p.Oldest), p.RevisionURL + strconv.Itoa(p.Oldest)},
		Newest:  revisionLink{fmt.Sprintf("r%d", p.Newest), p.RevisionURL + strconv.Itoa(p.Newest)},
	}
	if p.Chart != nil {
		var buf bytes.Buffer
		p.Chart.render(&buf)
		s := buf.String()
		if i := strings.Index(s, "<svg"); i > 0 {
			s = s[i:]
		}
		data.SVG = uncheckedconversions.HTMLFromStringKnownToSatisfyTypeContract(s)
		data.HasChart = true
	}
	if p.Ignored != nil {
		data.Discarded, data.Description = describeIgnored(p.Ignored)
	}
	return pageTemplate.Execute(w, data)
}

// describeIgnored lists the benches of the ignored points per
// revision, newest first.
func describeIgnored(ignored *benchdata.Store) (n int, desc string) {
	var b strings.Builder
	revs := ignored.Revisions()
	for i := len(revs) - 1; i >= 0; i-- {
		pts := ignored.Points(revs[i])
		n += len(pts)
		names := make([]string, len(pts))
		for j, p := range pts {
			names[j] = p.Bench
		}
		sort.Strings(names)
		fmt.Fprintf(&b, "r%d: [%s]\n", revs[i], strings.Join(names, ", "))
	}
	return n, b.String()
}

// selects returns the filter controls of s: one for each of bench,
// config and time type, and one for each setting whose value differs
// between labels.
func selects(s benchseries.Series) []selectData {
	labels := s.Labels()
	out := []selectData{
		newSelect("Bench Type", labels, func(l benchdata.Label) string { return l.Bench }),
		newSelect("Bitmap Config", labels, func(l benchdata.Label) string { return l.Config }),
		newSelect("Timer Type (Cpu/Gpu/wall)", labels, func(l benchdata.Label) string { return l.TimeType }),
	}
	first := make(map[string]string)
	variant := make(map[string]bool)
	for _, l := range labels {
		for k, v := range l.Settings() {
			if fv, ok := first[k]; !ok {
				first[k] = v
			} else if fv != v {
				variant[k] = true
			}
		}
	}
	keys := make([]string, 0, len(variant))
	for k := range variant {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		k := k
		out = append(out, newSelect(k, labels, func(l benchdata.Label) string {
			v, ok := l.Settings()[k]
			switch {
			case !ok:
				return " "
			case v == "":
				return "true"
			}
			return v
		}))
	}
	return out
}

func newSelect(header string, labels []benchdata.Label, option func(benchdata.Label) string) selectData {
	byOption := make(map[string][]string)
	for _, l := range labels {
		o := option(l)
		byOption[o] = append(byOption[o], l.String())
	}
	sel := selectData{Header: header}
	for o, names := range byOption {
		js, err := json.Marshal(names)
		if err != nil {
			panic(err)
		}
		sel.Options = append(sel.Options, optionData{o, string(js)})
	}
	sort.Slice(sel.Options, func(i, j int) bool { return sel.Options[i].Text < sel.Options[j].Text })
	return sel
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{.SVG}}
<script type="text/javascript">
function getAllLines() {
    var selectElem = document.getElementById('benchSelect');
    var linesObj = {};
    for (var i = 0; i < selectElem.options.length; ++i) {
        var lines = JSON.parse(selectElem.options[i].value);
        for (var j = 0; j < lines.length; ++j) {
            linesObj[lines[j]] = true;
        }
    }
    return linesObj;
}
function getOptions(selectElem) {
    var selected = {};
    for (var i = 0; i < selectElem.options.length; ++i) {
        if (!selectElem.options[i].selected) continue;
        var lines = JSON.parse(selectElem.options[i].value);
        for (var j = 0; j < lines.length; ++j) {
            selected[lines[j]] = true;
        }
    }
    return selected;
}
function markSelectedLines(selectElem, allLines) {
    var selected = getOptions(selectElem);
    if (Object.keys(selected).length == 0) return;
    for (var line in allLines) {
        allLines[line] = allLines[line] && selected[line] === true;
    }
}
function updateSvg() {
    var allLines = getAllLines();
    var selects = document.querySelectorAll('select.lines');
    for (var i = 0; i < selects.length; ++i) {
        markSelectedLines(selects[i], allLines);
    }
    for (var line in allLines) {
        var group = document.getElementById(line);
        if (group) {
            group.setAttributeNS(null, 'display', allLines[line] ? 'inline' : 'none');
        }
    }
}
function mark(markerId) {
    for (var line in getAllLines()) {
        var group = document.getElementById(line);
        if (!group || group.getAttributeNS(null, 'display') == 'none') continue;
        var svgLine = document.getElementById(line + '_line');
        if (markerId == null) {
            svgLine.removeAttributeNS(null, 'marker-mid');
        } else {
            svgLine.setAttributeNS(null, 'marker-mid', markerId);
        }
    }
}
</script>
<table border="0" width="100%">
<tr valign="top"><td width="50%">
<table border="0" width="100%">
<tr><td align="center"><form><table border="0">
<tr valign="bottom" align="center">
{{- range .Selects}}
<td width="1">{{.Header}}</td>
{{- end}}
<td width="1"></td></tr>
<tr valign="top" align="center">
{{- range $i, $sel := .Selects}}
<td width="1">
{{- if eq $i 0}}
<select class="lines" id="benchSelect" multiple size="10" onchange="updateSvg();">
{{- else}}
<select class="lines" multiple size="10" onchange="updateSvg();">
{{- end}}
{{- range $sel.Options}}
<option value="{{.Value}}">{{.Text}}</option>
{{- end}}
</select>
</td>
{{- end}}
<td width="1">
<button type="button" onclick="mark('url(#circleMark)'); return false;">Mark Points</button>
<button type="button" onclick="mark(null);">Clear Points</button>
</td>
</tr>
</table></form></td></tr>
<tr><td align="center">
<hr>
{{- if .Discarded}}
<table width="100%" bgcolor="ff0000"><tr><td align="center">
Discarded {{.Discarded}} data points outside of range [{{.MinTime}}-{{.MaxTime}}]
</td></tr><tr><td width="100%" align="center">
<textarea rows="4" style="width:97%" readonly wrap="off">{{.Description}}</textarea>
</td></tr></table>
{{- else}}
Did not discard any data points; all were within the range [{{.MinTime}}-{{.MaxTime}}]
{{- end}}
</td></tr></table>
</td><td width="2%"></td>
<td><table border="0">
<tr><td align="center">{{.Title}}<br>revisions <a href="{{.Oldest.URL}}">{{.Oldest.Text}}</a> - <a href="{{.Newest.URL}}">{{.Newest.Text}}</a></td></tr>
<tr><td align="left">
{{- if not .HasChart}}
<p>There is no data to chart.</p>
{{- end}}
<p>Brighter red indicates tests that have gotten worse; brighter green
indicates tests that have gotten better.</p>
<p>To highlight individual tests, hold down CONTROL and mouse over
graph lines.</p>
<p>To highlight revision numbers, hold down SHIFT and mouse over
the graph area.</p>
<p>To only show certain tests on the graph, select any combination of
tests in the selectors at left. (To show all, select all.)</p>
<p>Use buttons at left to mark/clear points on the lines for selected
benchmarks.</p>
</td></tr>
</table>
</td></tr>
</table>
</body>
</html>
`))
