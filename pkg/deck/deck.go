// Package deck defines the rendered document artifact: an ordered set of
// slides carrying positioned text boxes, tables, and charts.
//
// The in-memory model is what the renderer builds; the serialized form is
// a zip archive of JSON documents (one manifest, one file per slide) that
// can be re-opened for structural introspection. Encode is the writer
// capability, Open the reader capability; the validator consumes only the
// reader side.
package deck

import (
	"strings"
)

// ShapeKind discriminates the shape union.
type ShapeKind string

// Shape kinds.
const (
	ShapeText  ShapeKind = "text"
	ShapeTable ShapeKind = "table"
	ShapeChart ShapeKind = "chart"
)

// Deck is a complete rendered document.
type Deck struct {
	// ID is a UUID stamped at render time, unique per artifact.
	ID string `json:"id"`
	// Generator records the producing tool and version.
	Generator string `json:"generator,omitempty"`

	WidthInches  float64 `json:"width_inches"`
	HeightInches float64 `json:"height_inches"`

	Slides []Slide `json:"-"` // serialized individually, not in the manifest
}

// Slide is one page of the document.
type Slide struct {
	Index int `json:"index"`
	// Background is a full-slide "#RRGGBB" fill, empty for none.
	Background string  `json:"background,omitempty"`
	Shapes     []Shape `json:"shapes"`
}

// Shape is a positioned element on a slide. Exactly one of Text, Table,
// Chart is non-nil, matching Kind.
type Shape struct {
	Kind ShapeKind `json:"kind"`
	// Name is the schema slot that produced the shape.
	Name string `json:"name,omitempty"`

	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Text  *TextBox `json:"text,omitempty"`
	Table *Table   `json:"table,omitempty"`
	Chart *Chart   `json:"chart,omitempty"`
}

// TextBox holds styled paragraphs.
type TextBox struct {
	Paragraphs []Paragraph `json:"paragraphs"`
}

// Paragraph is one line (or wrapped block) of runs.
type Paragraph struct {
	Alignment string `json:"alignment,omitempty"` // left, center, right
	Runs      []Run  `json:"runs"`
}

// Run is a span of text with uniform styling.
type Run struct {
	Text string `json:"text"`
	Font Font   `json:"font"`
}

// Font is the per-run typography.
type Font struct {
	Name   string  `json:"name,omitempty"`
	SizePt float64 `json:"size_pt,omitempty"`
	Bold   bool    `json:"bold,omitempty"`
	Italic bool    `json:"italic,omitempty"`
	Color  string  `json:"color,omitempty"` // "#RRGGBB"
}

// Table is a grid of cells; the first row is the header.
type Table struct {
	// ColWidths are per-column widths in inches, zero where the layout
	// engine decides.
	ColWidths []float64 `json:"col_widths,omitempty"`
	Rows      [][]Cell  `json:"rows"`
}

// RowCount returns the number of rows including the header.
func (t *Table) RowCount() int { return len(t.Rows) }

// ColumnCount returns the column count of the first row, 0 for an empty
// table.
func (t *Table) ColumnCount() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// Cell is one table cell.
type Cell struct {
	Text      string `json:"text"`
	Color     string `json:"color,omitempty"`     // text color
	Fill      string `json:"fill,omitempty"`      // background fill
	Bold      bool   `json:"bold,omitempty"`
	Alignment string `json:"alignment,omitempty"`
}

// Chart carries the plotted data of a chart shape.
type Chart struct {
	Kind       string        `json:"kind"`
	Categories []string      `json:"categories,omitempty"`
	Series     []ChartSeries `json:"series"`
	// SliceColors are per-point fills for doughnut charts, aligned with
	// Categories. Empty for category charts.
	SliceColors []string `json:"slice_colors,omitempty"`
	// Legend is "" (hidden) or a position such as "bottom".
	Legend string `json:"legend,omitempty"`
}

// ChartSeries is one plotted series (or, for doughnut charts, the single
// slice series).
type ChartSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
	Color  string    `json:"color,omitempty"`
}

// AllText concatenates the text of every text shape on the slide,
// space-separated. Used for content-presence checks.
func (s *Slide) AllText() string {
	var parts []string
	for _, shape := range s.Shapes {
		if shape.Text == nil {
			continue
		}
		var b strings.Builder
		for i, p := range shape.Text.Paragraphs {
			if i > 0 {
				b.WriteByte('\n')
			}
			for _, r := range p.Runs {
				b.WriteString(r.Text)
			}
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, " ")
}

// Tables returns every table shape on the slide in declaration order.
func (s *Slide) Tables() []*Shape {
	var out []*Shape
	for i := range s.Shapes {
		if s.Shapes[i].Kind == ShapeTable && s.Shapes[i].Table != nil {
			out = append(out, &s.Shapes[i])
		}
	}
	return out
}

// Charts returns every chart shape on the slide in declaration order.
func (s *Slide) Charts() []*Shape {
	var out []*Shape
	for i := range s.Shapes {
		if s.Shapes[i].Kind == ShapeChart && s.Shapes[i].Chart != nil {
			out = append(out, &s.Shapes[i])
		}
	}
	return out
}

// TextRuns returns every run across the slide's text shapes, flattened.
// Table cells are excluded; they carry their own color checks.
func (s *Slide) TextRuns() []Run {
	var out []Run
	for _, shape := range s.Shapes {
		if shape.Text == nil {
			continue
		}
		for _, p := range shape.Text.Paragraphs {
			out = append(out, p.Runs...)
		}
	}
	return out
}
