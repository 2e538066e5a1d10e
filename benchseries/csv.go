// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/aclements/go-gg/table"
)

// WriteCSV writes s as a grid with one row per revision and one column
// per label. A cell is empty when the label has no sample at that
// revision; a label with several samples at one revision gets the last.
func (s Series) WriteCSV(out io.Writer) error {
	labels := s.Labels()
	revSet := make(map[int]struct{})
	cells := make(map[int][]string)
	for i, l := range labels {
		for _, p := range s[l] {
			revSet[p.Revision] = struct{}{}
			row := cells[p.Revision]
			if row == nil {
				row = make([]string, len(labels))
				cells[p.Revision] = row
			}
			row[i] = strof(p.Value)
		}
	}

	hdr := []string{"revision"}
	for _, l := range labels {
		hdr = append(hdr, l.String())
	}
	tab := [][]string{hdr}
	for _, rev := range sortIntSet(revSet) {
		tab = append(tab, append([]string{strconv.Itoa(rev)}, cells[rev]...))
	}
	csvw := csv.NewWriter(out)
	csvw.WriteAll(tab)
	return csvw.Error()
}

// Table returns s as a table with columns "label", "revision" and
// "value", one row per sample, ordered by label then revision.
func (s Series) Table() *table.Table {
	var labels []string
	var revs []int
	var values []float64
	for _, l := range s.Labels() {
		name := l.String()
		for _, p := range s[l] {
			labels = append(labels, name)
			revs = append(revs, p.Revision)
			values = append(values, p.Value)
		}
	}
	return new(table.Builder).
		Add("label", labels).
		Add("revision", revs).
		Add("value", values).
		Done()
}

func sortIntSet(m map[int]struct{}) []int {
	var s []int
	for k := range m {
		s = append(s, k)
	}
	sort.Ints(s)
	return s
}

func strof(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
