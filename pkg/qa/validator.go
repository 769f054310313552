package qa

import (
	"math"
	"sort"
	"strings"

	"github.com/deckmason/deckmason/pkg/deck"
	"github.com/deckmason/deckmason/pkg/format"
	"github.com/deckmason/deckmason/pkg/payload"
	"github.com/deckmason/deckmason/pkg/render/chart"
	"github.com/deckmason/deckmason/pkg/schema"
)

// Validator checks rendered artifacts against the template that
// produced them.
type Validator struct {
	tmpl *schema.Template
}

// New returns a validator for the template.
func New(t *schema.Template) *Validator {
	return &Validator{tmpl: t}
}

// Validate runs all checks on a rendered artifact. The payload must be
// the one the artifact was rendered from; expectations are re-derived
// from it through the shared formatting engine.
func (v *Validator) Validate(artifact []byte, p payload.Payload) Report {
	var r Report

	d, err := deck.Open(artifact)
	if err != nil {
		r.add(SeverityError, -1, "", "", CategoryArtifact, "artifact unreadable: %v", err)
		return r
	}

	v.checkSlideCount(d, &r)
	v.checkDimensions(d, &r)
	v.checkPayloadCoverage(p, &r)

	// Per-slide checks only make sense when indexes line up.
	if len(d.Slides) == len(v.tmpl.Slides) {
		for i := range v.tmpl.Slides {
			ss := &v.tmpl.Slides[i]
			v.checkSlide(&d.Slides[ss.Index], ss, p, &r)
		}
	}

	return r
}

// ValidatePayload checks a payload against the template without an
// artifact: key coverage plus structural type checks.
func (v *Validator) ValidatePayload(p payload.Payload) Report {
	var r Report
	v.checkPayloadCoverage(p, &r)
	for i := range v.tmpl.Slides {
		ss := &v.tmpl.Slides[i]
		for j := range ss.Slots {
			v.checkSlotPayload(&ss.Slots[j], ss, p, &r)
		}
	}
	return r
}

// ===========================================================================
// Document-level checks
// ===========================================================================

func (v *Validator) checkSlideCount(d *deck.Deck, r *Report) {
	if len(d.Slides) != len(v.tmpl.Slides) {
		r.add(SeverityError, -1, "", "", CategorySlideCount,
			"Expected %d slides, got %d", len(v.tmpl.Slides), len(d.Slides))
	}
}

func (v *Validator) checkDimensions(d *deck.Deck, r *Report) {
	if !dimensionEqual(d.WidthInches, v.tmpl.WidthInches) {
		r.add(SeverityError, -1, "", "", CategoryDimensions,
			"Slide width %g != expected %g", d.WidthInches, v.tmpl.WidthInches)
	}
	if !dimensionEqual(d.HeightInches, v.tmpl.HeightInches) {
		r.add(SeverityError, -1, "", "", CategoryDimensions,
			"Slide height %g != expected %g", d.HeightInches, v.tmpl.HeightInches)
	}
}

func (v *Validator) checkPayloadCoverage(p payload.Payload, r *Report) {
	var missing []string
	for key := range v.tmpl.DataKeys() {
		if !p.Has(key) {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	for _, key := range missing {
		r.add(SeverityWarning, -1, v.tmpl.SlideForKey(key), "", CategoryPayloadMissing,
			"Data key %q not in payload", key)
	}
}

// ===========================================================================
// Payload structure checks
// ===========================================================================

func (v *Validator) checkSlotPayload(slot *schema.Slot, ss *schema.Slide, p payload.Payload, r *Report) {
	switch slot.Kind {
	case schema.SlotTable:
		if slot.RowDataKey == "" {
			return
		}
		val := p.Get(slot.RowDataKey)
		if !val.IsAbsent() {
			rows, ok := val.Rows()
			if !ok {
				r.add(SeverityError, ss.Index, ss.Name, slot.Name, CategoryTypeError,
					"row_data_key %q should be row data, got %s", slot.RowDataKey, val.Kind())
				return
			}
			if len(rows) > 0 {
				for _, col := range slot.Columns {
					if _, ok := rows[0][col.DataKey]; !ok {
						r.add(SeverityWarning, ss.Index, ss.Name, slot.Name, CategoryColumnKeyMissing,
							"Column %q expects key %q not found in row data", col.Header, col.DataKey)
					}
				}
			}
		}

	case schema.SlotChart:
		if len(slot.Series) == 0 || slot.ChartKind.IsDoughnut() {
			// Doughnut series values are scalars; nothing structural to check.
			return
		}
		categories, _ := p.Get(slot.CategoriesKey).List()
		for _, s := range slot.Series {
			val := p.Get(s.DataKey)
			if val.IsAbsent() {
				continue
			}
			elems, ok := val.List()
			if !ok {
				r.add(SeverityError, ss.Index, ss.Name, slot.Name, CategoryTypeError,
					"Series %q data_key %q should be a list, got %s", s.Name, s.DataKey, val.Kind())
				continue
			}
			if len(categories) > 0 && len(elems) != len(categories) {
				r.add(SeverityError, ss.Index, ss.Name, slot.Name, CategorySeriesLenMismatch,
					"Series %q has %d values but %d categories", s.Name, len(elems), len(categories))
			}
		}

	case schema.SlotKPIValue:
		val := p.Get(slot.DataKey)
		if val.IsAbsent() {
			return
		}
		if val.Kind() == payload.KindList || val.Kind() == payload.KindRows {
			r.add(SeverityError, ss.Index, ss.Name, slot.Name, CategoryTypeError,
				"KPI value for %q should be numeric or string, got %s", slot.DataKey, val.Kind())
		}
	}
}

// ===========================================================================
// Per-slide checks
// ===========================================================================

func (v *Validator) checkSlide(slide *deck.Slide, ss *schema.Slide, p payload.Payload, r *Report) {
	if ss.Kind == schema.SlideDivider {
		v.checkDividerBackground(slide, ss, r)
	}
	for i := range ss.Slots {
		slot := &ss.Slots[i]
		switch slot.Kind {
		case schema.SlotKPIValue:
			v.checkKPISlot(slide, slot, ss, p, r)
		case schema.SlotTable:
			v.checkTableSlot(slide, slot, ss, p, r)
		case schema.SlotChart:
			v.checkChartSlot(slide, slot, ss, p, r)
		case schema.SlotText, schema.SlotStatic, schema.SlotSectionDivider:
			v.checkTextSlot(slide, slot, ss, p, r)
		}
	}
}

func (v *Validator) checkDividerBackground(slide *deck.Slide, ss *schema.Slide, r *Report) {
	if slide.Background == "" {
		r.add(SeverityError, ss.Index, ss.Name, "", CategoryDividerBackground,
			"Divider slide missing background fill")
		return
	}
	if !hexEqual(slide.Background, v.tmpl.Design.DividerBG) {
		r.add(SeverityError, ss.Index, ss.Name, "", CategoryDividerBackground,
			"Divider background color %s != expected %s", slide.Background, v.tmpl.Design.DividerBG)
	}
}

// ===========================================================================
// KPI checks
// ===========================================================================

func (v *Validator) checkKPISlot(slide *deck.Slide, slot *schema.Slot, ss *schema.Slide, p payload.Payload, r *Report) {
	value := p.Get(slot.DataKey)
	allText := slide.AllText()

	if value.IsAbsent() {
		if !strings.Contains(allText, format.NA) {
			r.add(SeverityWarning, ss.Index, ss.Name, slot.Name, CategoryKPIMissingNA,
				"KPI %q is missing but %s not found on slide", slot.DataKey, format.NA)
		}
		return
	}

	if slot.Format != nil {
		formatted := format.Format(value, slot.Format.Kind)
		if !strings.Contains(allText, formatted) {
			r.add(SeverityError, ss.Index, ss.Name, slot.Name, CategoryKPIValueMissing,
				"Formatted KPI value %q for %q not found on slide", formatted, slot.DataKey)
		}
	}

	if slot.Label != "" && !strings.Contains(allText, slot.Label) {
		r.add(SeverityWarning, ss.Index, ss.Name, slot.Name, CategoryKPILabelMissing,
			"KPI label %q not found on slide", slot.Label)
	}

	if slot.VarianceKey != "" {
		variance := p.Get(slot.VarianceKey)
		if !variance.IsAbsent() {
			v.checkVarianceColor(slide, slot, ss, variance, r)
		}
	}
}

func (v *Validator) checkVarianceColor(slide *deck.Slide, slot *schema.Slot, ss *schema.Slide, variance payload.Value, r *Report) {
	design := v.tmpl.Design
	expected := format.VarianceColor(variance, design.Positive, design.Negative, design.DarkText)

	kind := schema.FormatVariancePercentage
	if slot.Format != nil && slot.Format.Kind == schema.FormatPointsChange {
		kind = schema.FormatPointsChange
	}
	varText := format.Format(variance, kind)

	found := false
	for _, run := range slide.TextRuns() {
		if !strings.Contains(run.Text, varText) {
			continue
		}
		found = true
		if run.Font.Color != "" && !hexEqual(run.Font.Color, expected) {
			r.add(SeverityError, ss.Index, ss.Name, slot.Name, CategoryVarianceColor,
				"Variance %q color %s != expected %s", varText, run.Font.Color, expected)
		}
	}
	if !found {
		r.add(SeverityWarning, ss.Index, ss.Name, slot.Name, CategoryVarianceMissing,
			"Variance text %q not found on slide", varText)
	}
}

// ===========================================================================
// Table checks
// ===========================================================================

func (v *Validator) checkTableSlot(slide *deck.Slide, slot *schema.Slot, ss *schema.Slide, p payload.Payload, r *Report) {
	var rows []payload.Row
	if slot.RowDataKey != "" {
		rows, _ = p.Get(slot.RowDataKey).Rows()
	}
	if len(rows) == 0 || len(slot.Columns) == 0 {
		// No data: the renderer degrades to a text placeholder.
		return
	}

	tables := slide.Tables()
	if len(tables) == 0 {
		r.add(SeverityError, ss.Index, ss.Name, slot.Name, CategoryTableMissing,
			"Table slot has data but no table shape on slide")
		return
	}

	// Prefer the table whose column count matches the slot.
	tbl := tables[0].Table
	for _, ts := range tables {
		if ts.Table.ColumnCount() == len(slot.Columns) {
			tbl = ts.Table
			break
		}
	}

	expectedRows := len(rows) + 1
	if tbl.RowCount() != expectedRows {
		r.add(SeverityError, ss.Index, ss.Name, slot.Name, CategoryTableRowCount,
			"Table has %d rows, expected %d (1 header + %d data)", tbl.RowCount(), expectedRows, len(rows))
	}

	if tbl.ColumnCount() != len(slot.Columns) {
		r.add(SeverityError, ss.Index, ss.Name, slot.Name, CategoryTableColumnCount,
			"Table has %d columns, expected %d", tbl.ColumnCount(), len(slot.Columns))
		// Header and cell checks are meaningless against the wrong grid.
		return
	}

	for i, col := range slot.Columns {
		header := strings.TrimSpace(tbl.Rows[0][i].Text)
		if header != col.Header {
			r.add(SeverityError, ss.Index, ss.Name, slot.Name, CategoryTableHeader,
				"Column %d header %q != expected %q", i, header, col.Header)
		}
	}

	for ri, row := range rows {
		if ri+1 >= tbl.RowCount() {
			break
		}
		for ci, col := range slot.Columns {
			raw := row[col.DataKey]
			if col.Format == nil || raw.IsAbsent() {
				continue
			}
			cellText := strings.TrimSpace(tbl.Rows[ri+1][ci].Text)
			expected := format.Format(raw, col.Format.Kind)
			if cellText != expected {
				r.add(SeverityError, ss.Index, ss.Name, slot.Name, CategoryTableCellFormat,
					"Cell [%d,%d] %q != expected %q (format: %s)", ri+1, ci, cellText, expected, col.Format.Kind)
			}
		}
	}

	v.checkTableVarianceColors(tbl, slot, ss, rows, r)
}

func (v *Validator) checkTableVarianceColors(tbl *deck.Table, slot *schema.Slot, ss *schema.Slide, rows []payload.Row, r *Report) {
	for ci, col := range slot.Columns {
		if col.Format == nil || !col.Format.Kind.IsVariance() {
			continue
		}
		pos, neg, neu := col.Format.Colors(v.tmpl.Design)

		for ri, row := range rows {
			if ri+1 >= tbl.RowCount() || ci >= tbl.ColumnCount() {
				break
			}
			raw := row[col.DataKey]
			if raw.IsAbsent() {
				continue
			}
			expected := format.VarianceColor(raw, pos, neg, neu)
			cell := tbl.Rows[ri+1][ci]
			if cell.Color != "" && !hexEqual(cell.Color, expected) {
				r.add(SeverityError, ss.Index, ss.Name, slot.Name, CategoryTableVarianceColor,
					"Cell [%d,%d] variance color %s != expected %s (value=%s)",
					ri+1, ci, cell.Color, expected, raw.Display())
			}
		}
	}
}

// ===========================================================================
// Chart checks
// ===========================================================================

func (v *Validator) checkChartSlot(slide *deck.Slide, slot *schema.Slot, ss *schema.Slide, p payload.Payload, r *Report) {
	if !slot.ChartKind.Known() || len(slot.Series) == 0 {
		return
	}

	// The shared chart builder decides whether a chart exists at all; a
	// slot it declines (no categories, all-zero doughnut) renders as a
	// placeholder, not a chart shape.
	_, expectChart := chart.Build(slot, p)

	charts := slide.Charts()
	if len(charts) == 0 {
		if expectChart {
			r.add(SeverityError, ss.Index, ss.Name, slot.Name, CategoryChartMissing,
				"Chart slot has data but no chart shape on slide")
		}
		return
	}

	ch := matchChart(charts, slot)

	if ch.Kind != string(slot.ChartKind) {
		r.add(SeverityError, ss.Index, ss.Name, slot.Name, CategoryChartType,
			"Chart type %s != expected %s", ch.Kind, slot.ChartKind)
	}

	if !slot.ChartKind.IsDoughnut() {
		expected := 0
		for _, s := range slot.Series {
			if elems, ok := p.Get(s.DataKey).List(); ok && len(elems) > 0 {
				expected++
			}
		}
		if expected == 0 {
			// With no data at all the renderer zero-fills every series.
			expected = len(slot.Series)
		}
		if len(ch.Series) != expected {
			r.add(SeverityWarning, ss.Index, ss.Name, slot.Name, CategoryChartSeriesCount,
				"Chart has %d series, expected %d", len(ch.Series), expected)
		}
	}

	if slot.CategoriesKey != "" {
		if categories, ok := p.Get(slot.CategoriesKey).List(); ok && len(categories) > 0 {
			for _, s := range slot.Series {
				if elems, ok := p.Get(s.DataKey).List(); ok && len(elems) > 0 && len(elems) != len(categories) {
					r.add(SeverityError, ss.Index, ss.Name, slot.Name, CategoryChartDataLength,
						"Series %q has %d values but %d categories", s.Name, len(elems), len(categories))
				}
			}
		}
	}
}

// matchChart pairs a chart shape with a slot, by kind first and slot
// position second.
func matchChart(charts []*deck.Shape, slot *schema.Slot) *deck.Chart {
	for _, cs := range charts {
		if cs.Chart.Kind == string(slot.ChartKind) {
			return cs.Chart
		}
	}
	best := charts[0]
	bestDist := math.Abs(best.Left-slot.Position.Left) + math.Abs(best.Top-slot.Position.Top)
	for _, cs := range charts[1:] {
		dist := math.Abs(cs.Left-slot.Position.Left) + math.Abs(cs.Top-slot.Position.Top)
		if dist < bestDist {
			best = cs
			bestDist = dist
		}
	}
	return best.Chart
}

// ===========================================================================
// Text checks
// ===========================================================================

func (v *Validator) checkTextSlot(slide *deck.Slide, slot *schema.Slot, ss *schema.Slide, p payload.Payload, r *Report) {
	value := p.Get(slot.DataKey)
	if value.IsAbsent() {
		return
	}

	allText := slide.AllText()

	if elems, ok := value.List(); ok {
		for _, e := range elems {
			item := e.Display()
			if !strings.Contains(allText, item) {
				r.add(SeverityWarning, ss.Index, ss.Name, slot.Name, CategoryTextContent,
					"List item %q not found on slide", item)
			}
		}
		return
	}
	if s, ok := value.Str(); ok && s != "" {
		if !strings.Contains(allText, s) {
			r.add(SeverityWarning, ss.Index, ss.Name, slot.Name, CategoryTextContent,
				"Text %q not found on slide", truncate(s, 60))
		}
	}
}

// ===========================================================================
// Helpers
// ===========================================================================

// dimensionEqual compares sizes in inches with a small tolerance for
// serialization round trips.
func dimensionEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// hexEqual compares "#RRGGBB" colors case-insensitively.
func hexEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimPrefix(a, "#"), strings.TrimPrefix(b, "#"))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
