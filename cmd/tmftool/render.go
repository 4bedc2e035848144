package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Faultbox/tmfkit/pkg/formats"
	"github.com/Faultbox/tmfkit/pkg/math"
)

type itemSummary struct {
	Name      string     `json:"name"`
	ObjectID  string     `json:"object_id"`
	Triangles int        `json:"triangles"`
	Min       [3]float32 `json:"min"`
	Max       [3]float32 `json:"max"`
}

type fileSummary struct {
	File      string            `json:"file"`
	Part      string            `json:"part,omitempty"`
	Unit      string            `json:"unit,omitempty"`
	Scale     float64           `json:"scale,omitempty"`
	Objects   int               `json:"objects"`
	Triangles int               `json:"triangles"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Items     []itemSummary     `json:"items"`
	Error     string            `json:"error,omitempty"`
}

func summarize(file string, tmf *formats.TMF) fileSummary {
	s := fileSummary{
		File:     file,
		Part:     tmf.Part,
		Unit:     tmf.Unit,
		Scale:    tmf.Scale,
		Objects:  tmf.Objects,
		Metadata: tmf.Metadata,
		Items:    make([]itemSummary, 0, len(tmf.Items)),
	}
	for _, it := range tmf.Items {
		min, max := it.Bounds()
		s.Items = append(s.Items, itemSummary{
			Name:      it.Name,
			ObjectID:  it.ObjectID,
			Triangles: it.TriangleCount(),
			Min:       [3]float32{min.X, min.Y, min.Z},
			Max:       [3]float32{max.X, max.Y, max.Z},
		})
		s.Triangles += it.TriangleCount()
	}
	return s
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func formatVec(v [3]float32, precision int) string {
	return fmt.Sprintf("%.*f, %.*f, %.*f", precision, v[0], precision, v[1], precision, v[2])
}

func renderSummary(w io.Writer, s fileSummary, precision int) {
	unit := s.Unit
	if unit == "" {
		unit = "(default)"
	}
	fmt.Fprintf(w, "File:    %s\n", s.File)
	fmt.Fprintf(w, "Part:    %s\n", s.Part)
	fmt.Fprintf(w, "Unit:    %s (x%g)\n", unit, s.Scale)
	fmt.Fprintf(w, "Objects: %d\n", s.Objects)

	if len(s.Metadata) > 0 {
		keys := make([]string, 0, len(s.Metadata))
		for k := range s.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintln(w, "Metadata:")
		for _, k := range keys {
			fmt.Fprintf(w, "  %-12s %s\n", k, s.Metadata[k])
		}
	}
	fmt.Fprintln(w)

	if len(s.Items) == 0 {
		fmt.Fprintln(w, "(no build items)")
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Name", "Object", "Triangles", "Min", "Max"})
	for i, it := range s.Items {
		t.AppendRow(table.Row{i, it.Name, it.ObjectID, it.Triangles,
			formatVec(it.Min, precision), formatVec(it.Max, precision)})
	}
	t.AppendFooter(table.Row{"", "", "", s.Triangles, "", ""})
	t.Render()
}

// itemsBounds returns the bounding box over every item.
func itemsBounds(items []formats.TMFItem) (min, max math.Vec3, ok bool) {
	for _, it := range items {
		lo, hi, has := math.Bounds(it.Faces)
		if !has {
			continue
		}
		if !ok {
			min, max, ok = lo, hi, true
			continue
		}
		min = min.Min(lo)
		max = max.Max(hi)
	}
	return min, max, ok
}
