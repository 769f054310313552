// Package chart builds plottable chart data from a chart slot and a
// payload.
//
// The builders are shared by the renderer (to produce the chart shape)
// and the validator (to re-derive the expected plotted values). Missing
// or malformed data is never fatal here: a chart that cannot be built
// simply reports no data and the caller decides how to degrade.
package chart

import (
	"fmt"

	"github.com/deckmason/deckmason/pkg/payload"
	"github.com/deckmason/deckmason/pkg/schema"
)

// Legend positions. Empty means the legend is hidden.
const (
	LegendHidden = ""
	LegendBottom = "bottom"
)

// The synthetic series name carrying doughnut slices.
const doughnutSeriesName = "Data"

// Series is one plotted series.
type Series struct {
	Name   string
	Values []float64
	Color  string
}

// Data is the resolved, plottable form of a chart slot.
type Data struct {
	Kind       schema.ChartKind
	Categories []string
	Series     []Series
	// SliceColors carries per-slice fills for doughnut charts, aligned
	// with Categories. Nil for category charts, which color whole series.
	SliceColors []string
	Legend      string
}

// Build resolves a chart slot against a payload. ok is false when the
// slot's data cannot produce a chart (missing categories, no series, or
// an all-zero doughnut); the caller should then skip the shape.
//
// Build panics when the slot is not a chart slot or carries no chart
// kind. Those are schema contract violations, not data conditions, and
// schema validation rejects them before rendering.
func Build(slot *schema.Slot, p payload.Payload) (*Data, bool) {
	if slot.Kind != schema.SlotChart {
		panic(fmt.Sprintf("chart: slot %q is not a chart slot", slot.Name))
	}
	if !slot.ChartKind.Known() {
		panic(fmt.Sprintf("chart: slot %q has unknown chart kind %q", slot.Name, slot.ChartKind))
	}

	var d *Data
	if slot.ChartKind.IsDoughnut() {
		d = buildDoughnut(slot, p)
	} else {
		d = buildCategory(slot, p)
	}
	if d == nil {
		return nil, false
	}

	d.Kind = slot.ChartKind
	d.Legend = legendFor(slot)
	return d, true
}

// buildCategory resolves column and line charts. Every declared series
// becomes a plotted series sized to the category axis: short value
// lists are zero-padded, long ones truncated, and non-numeric elements
// collapse to zero.
func buildCategory(slot *schema.Slot, p payload.Payload) *Data {
	if slot.CategoriesKey == "" || len(slot.Series) == 0 {
		return nil
	}

	catVal, ok := p.Get(slot.CategoriesKey).List()
	if !ok || len(catVal) == 0 {
		return nil
	}
	categories := make([]string, len(catVal))
	for i, c := range catVal {
		categories[i] = c.Display()
	}

	series := make([]Series, 0, len(slot.Series))
	for _, def := range slot.Series {
		values := make([]float64, len(categories))
		if elems, ok := p.Get(def.DataKey).List(); ok {
			n := len(elems)
			if n > len(categories) {
				n = len(categories)
			}
			for i := 0; i < n; i++ {
				values[i] = elems[i].Float()
			}
		}
		series = append(series, Series{Name: def.Name, Values: values, Color: def.Color})
	}

	return &Data{Categories: categories, Series: series}
}

// buildDoughnut resolves doughnut charts. Each declared series becomes
// one slice of a single synthetic series; slice values come from the
// series' scalar payload entries. A doughnut whose slices are all zero
// has nothing to plot and yields nil.
func buildDoughnut(slot *schema.Slot, p payload.Payload) *Data {
	if len(slot.Series) == 0 {
		return nil
	}

	categories := make([]string, len(slot.Series))
	values := make([]float64, len(slot.Series))
	colors := make([]string, len(slot.Series))
	allZero := true
	for i, def := range slot.Series {
		categories[i] = def.Name
		values[i] = p.Get(def.DataKey).Float()
		colors[i] = def.Color
		if values[i] != 0 {
			allZero = false
		}
	}
	if allZero {
		return nil
	}

	return &Data{
		Categories:  categories,
		Series:      []Series{{Name: doughnutSeriesName, Values: values}},
		SliceColors: colors,
	}
}

// legendFor applies the legend policy: doughnuts and single-series
// charts hide the legend, multi-series category charts show it below
// the plot area.
func legendFor(slot *schema.Slot) string {
	if slot.ChartKind.IsDoughnut() || len(slot.Series) <= 1 {
		return LegendHidden
	}
	return LegendBottom
}
