// Package schema defines the template model for deckmason presentations.
//
// A Template is the contract between whoever authored the deck layout and
// the renderer/validator pair: an ordered list of slides, each carrying
// named, positioned data slots with formatting rules. Templates are
// immutable after construction; Validate must pass before a template is
// handed to the renderer.
package schema

import (
	"fmt"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// SlotKind describes what kind of content a data slot holds.
type SlotKind string

// Slot kinds.
const (
	SlotKPIValue       SlotKind = "kpi_value"       // single metric: number + label + variance
	SlotTable          SlotKind = "table"           // data table with header and data rows
	SlotChart          SlotKind = "chart"           // column, line, or doughnut chart
	SlotText           SlotKind = "text"            // narrative text or bullet list
	SlotStatic         SlotKind = "static"          // fixed content, unchanged per report
	SlotImage          SlotKind = "image"           // logo or background image
	SlotSectionDivider SlotKind = "section_divider" // full-slide section break title
)

// Known reports whether k is one of the defined slot kinds.
func (k SlotKind) Known() bool {
	switch k {
	case SlotKPIValue, SlotTable, SlotChart, SlotText, SlotStatic, SlotImage, SlotSectionDivider:
		return true
	}
	return false
}

// ChartKind describes the supported chart shapes.
type ChartKind string

// Chart kinds.
const (
	ChartColumnClustered  ChartKind = "column_clustered"
	ChartLine             ChartKind = "line"
	ChartDoughnut         ChartKind = "doughnut"
	ChartDoughnutExploded ChartKind = "doughnut_exploded"
)

// IsDoughnut reports whether the chart is a doughnut variant.
// Doughnut charts treat each declared series as a single slice.
func (k ChartKind) IsDoughnut() bool {
	return k == ChartDoughnut || k == ChartDoughnutExploded
}

// Known reports whether k is one of the defined chart kinds.
func (k ChartKind) Known() bool {
	switch k {
	case ChartColumnClustered, ChartLine, ChartDoughnut, ChartDoughnutExploded:
		return true
	}
	return false
}

// FormatKind describes how a numeric value is formatted for display.
type FormatKind string

// Format kinds.
const (
	FormatCurrency           FormatKind = "currency"            // <1k=$XXX, 1k-999k=$X.Xk, 1m+=$X.Xm
	FormatPercentage         FormatKind = "percentage"          // X.X%
	FormatVariancePercentage FormatKind = "variance_percentage" // +X.X% / -X.X%
	FormatPointsChange       FormatKind = "points_change"       // +X.X ppts
	FormatNumber             FormatKind = "number"              // <1k=XXX, 1k-999k=X,XXX, 1m+=X.Xm
	FormatInteger            FormatKind = "integer"             // comma-grouped whole number
	FormatText               FormatKind = "text"                // plain text, no formatting
)

// Known reports whether k is one of the defined format kinds.
func (k FormatKind) Known() bool {
	switch k {
	case FormatCurrency, FormatPercentage, FormatVariancePercentage,
		FormatPointsChange, FormatNumber, FormatInteger, FormatText:
		return true
	}
	return false
}

// IsVariance reports whether the format carries a signed delta that should
// be variance-colored (positive/negative/neutral).
func (k FormatKind) IsVariance() bool {
	return k == FormatVariancePercentage || k == FormatPointsChange
}

// SlideKind categorises a slide's role in the presentation.
type SlideKind string

// Slide kinds.
const (
	SlideCover   SlideKind = "cover"
	SlideTOC     SlideKind = "toc"
	SlideDivider SlideKind = "divider"
	SlideData    SlideKind = "data"
	SlideManual  SlideKind = "manual"
)

// KeySeparator namespaces data keys as "<slide>.<field>". Every slot's
// data key must contain it.
const KeySeparator = "."

// =============================================================================
// Positioning and typography primitives
// =============================================================================

// Position is a shape's location and dimensions in inches.
type Position struct {
	Left   float64 `toml:"left" json:"left"`
	Top    float64 `toml:"top" json:"top"`
	Width  float64 `toml:"width" json:"width"`
	Height float64 `toml:"height" json:"height"`
}

// Font is a typography specification for a text element.
type Font struct {
	Name   string  `toml:"name" json:"name"`
	SizePt float64 `toml:"size_pt" json:"size_pt"`
	Bold   bool    `toml:"bold,omitempty" json:"bold,omitempty"`
	Italic bool    `toml:"italic,omitempty" json:"italic,omitempty"`
	Color  string  `toml:"color,omitempty" json:"color,omitempty"` // "#RRGGBB"
}

// FormatRule pairs a format kind with the color triple used for variance
// coloring. Zero-value colors fall back to the design system defaults.
type FormatRule struct {
	Kind          FormatKind `toml:"kind" json:"kind"`
	PositiveColor string     `toml:"positive_color,omitempty" json:"positive_color,omitempty"`
	NegativeColor string     `toml:"negative_color,omitempty" json:"negative_color,omitempty"`
	NeutralColor  string     `toml:"neutral_color,omitempty" json:"neutral_color,omitempty"`
}

// Colors returns the rule's color triple with design-system defaults
// applied for any color left empty.
func (r FormatRule) Colors(d DesignSystem) (positive, negative, neutral string) {
	positive, negative, neutral = r.PositiveColor, r.NegativeColor, r.NeutralColor
	if positive == "" {
		positive = d.Positive
	}
	if negative == "" {
		negative = d.Negative
	}
	if neutral == "" {
		neutral = d.DarkText
	}
	return positive, negative, neutral
}

// =============================================================================
// Column and series definitions
// =============================================================================

// Column defines a single column in a table slot. DataKey is relative:
// it is resolved against each row dict of the slot's row data, not
// against the top-level payload.
type Column struct {
	Header    string      `toml:"header" json:"header"`
	DataKey   string      `toml:"data_key" json:"data_key"`
	WidthIn   float64     `toml:"width_inches,omitempty" json:"width_inches,omitempty"`
	Format    *FormatRule `toml:"format,omitempty" json:"format,omitempty"`
	Alignment string      `toml:"alignment,omitempty" json:"alignment,omitempty"` // left, center, right
}

// Series configures a single data series in a chart slot. For category
// charts DataKey resolves to a list of numbers; for doughnut charts it
// resolves to a scalar that becomes one slice.
type Series struct {
	Name    string `toml:"name" json:"name"`
	DataKey string `toml:"data_key" json:"data_key"`
	Color   string `toml:"color,omitempty" json:"color,omitempty"` // optional override
}

// =============================================================================
// Slot - a named, positioned location for data on a slide
// =============================================================================

// Slot is a single addressable location on a slide where data is rendered.
// Names are unique within a slide; DataKey binds the slot to the payload.
type Slot struct {
	Name     string   `toml:"name" json:"name"`
	Kind     SlotKind `toml:"kind" json:"kind"`
	DataKey  string   `toml:"data_key" json:"data_key"`
	Position Position `toml:"position" json:"position"`

	// Text/KPI styling.
	Font   *Font       `toml:"font,omitempty" json:"font,omitempty"`
	Format *FormatRule `toml:"format,omitempty" json:"format,omitempty"`

	// KPI-specific.
	Label       string `toml:"label,omitempty" json:"label,omitempty"`
	VarianceKey string `toml:"variance_key,omitempty" json:"variance_key,omitempty"`

	// Table-specific.
	Columns    []Column `toml:"columns,omitempty" json:"columns,omitempty"`
	RowDataKey string   `toml:"row_data_key,omitempty" json:"row_data_key,omitempty"`

	// Chart-specific.
	ChartKind     ChartKind `toml:"chart_kind,omitempty" json:"chart_kind,omitempty"`
	Series        []Series  `toml:"series,omitempty" json:"series,omitempty"`
	CategoriesKey string    `toml:"categories_key,omitempty" json:"categories_key,omitempty"`
}

// Keys returns every payload key the slot references: the data key, plus
// variance/row/categories keys and each series key when declared.
// Column keys are excluded; they resolve inside row dicts.
func (s *Slot) Keys() []string {
	var keys []string
	if s.DataKey != "" {
		keys = append(keys, s.DataKey)
	}
	if s.VarianceKey != "" {
		keys = append(keys, s.VarianceKey)
	}
	if s.RowDataKey != "" {
		keys = append(keys, s.RowDataKey)
	}
	if s.CategoriesKey != "" {
		keys = append(keys, s.CategoriesKey)
	}
	for _, series := range s.Series {
		keys = append(keys, series.DataKey)
	}
	return keys
}

// =============================================================================
// Slide
// =============================================================================

// Slide is one slide of the presentation template.
type Slide struct {
	Index    int       `toml:"index" json:"index"`
	Name     string    `toml:"name" json:"name"`
	Title    string    `toml:"title,omitempty" json:"title,omitempty"`
	Kind     SlideKind `toml:"kind" json:"kind"`
	IsStatic bool      `toml:"is_static,omitempty" json:"is_static,omitempty"`
	Slots    []Slot    `toml:"slots,omitempty" json:"slots,omitempty"`
}

// =============================================================================
// Template - top-level container
// =============================================================================

// Template is the complete schema for a presentation: canvas size, design
// system, and the ordered slide list. Construct it, call Validate once,
// then treat it as read-only.
type Template struct {
	Name         string       `toml:"name" json:"name"`
	WidthInches  float64      `toml:"width_inches" json:"width_inches"`
	HeightInches float64      `toml:"height_inches" json:"height_inches"`
	Design       DesignSystem `toml:"design" json:"design"`
	Slides       []Slide      `toml:"slides" json:"slides"`
}

// Slide looks up a slide by its machine name. Returns nil if absent.
func (t *Template) Slide(name string) *Slide {
	for i := range t.Slides {
		if t.Slides[i].Name == name {
			return &t.Slides[i]
		}
	}
	return nil
}

// DataSlides returns only the slides that require data binding.
func (t *Template) DataSlides() []Slide {
	out := make([]Slide, 0, len(t.Slides))
	for _, s := range t.Slides {
		if !s.IsStatic {
			out = append(out, s)
		}
	}
	return out
}

// DataKeys collects every top-level data key referenced anywhere in the
// template. This set is the contract a payload must satisfy; keys absent
// from the payload degrade to sentinels at render time.
//
// Table column keys are not in this set: they name fields inside row
// dicts, not payload entries, so coverage checks would misreport them
// as missing top-level keys. Per-row column coverage is checked
// separately against the first row of each table's data.
func (t *Template) DataKeys() map[string]struct{} {
	keys := make(map[string]struct{})
	for _, slide := range t.Slides {
		for i := range slide.Slots {
			for _, k := range slide.Slots[i].Keys() {
				keys[k] = struct{}{}
			}
		}
	}
	return keys
}

// SlideForKey returns the name of the slide that references data key,
// or "" if no slot references it.
func (t *Template) SlideForKey(key string) string {
	for _, slide := range t.Slides {
		for i := range slide.Slots {
			for _, k := range slide.Slots[i].Keys() {
				if k == key {
					return slide.Name
				}
			}
		}
	}
	return ""
}

// String returns a short human-readable description of the template.
func (t *Template) String() string {
	return fmt.Sprintf("%s (%d slides, %.3f x %.3f in)",
		t.Name, len(t.Slides), t.WidthInches, t.HeightInches)
}
