// Package render turns a schema template and a data payload into a deck
// artifact.
//
// Rendering is total over the payload: missing or malformed data
// degrades to "N/A" text, zero-filled chart series, or a placeholder
// shape, but never to an error and never to a dropped slot. The only
// panics are schema contract violations
// (a slot routed to the wrong renderer), which template validation rules
// out before rendering starts.
package render

import (
	"fmt"
	"strings"

	"github.com/deckmason/deckmason/pkg/buildinfo"
	"github.com/deckmason/deckmason/pkg/deck"
	"github.com/deckmason/deckmason/pkg/format"
	"github.com/deckmason/deckmason/pkg/payload"
	"github.com/deckmason/deckmason/pkg/render/chart"
	"github.com/deckmason/deckmason/pkg/schema"
)

// Render builds the deck and encodes it to its archive form.
func Render(t *schema.Template, p payload.Payload) ([]byte, error) {
	return Build(t, p).Encode()
}

// Build renders every slide of the template against the payload and
// returns the in-memory deck.
func Build(t *schema.Template, p payload.Payload) *deck.Deck {
	d := deck.NewDeck(t.WidthInches, t.HeightInches, buildinfo.Generator())
	for i := range t.Slides {
		d.Slides = append(d.Slides, buildSlide(&t.Slides[i], p, t.Design))
	}
	return d
}

func buildSlide(s *schema.Slide, p payload.Payload, design schema.DesignSystem) deck.Slide {
	out := deck.Slide{Index: s.Index}
	if s.Kind == schema.SlideDivider {
		out.Background = design.DividerBG
	}

	for i := range s.Slots {
		slot := &s.Slots[i]
		var shape *deck.Shape
		switch slot.Kind {
		case schema.SlotKPIValue:
			shape = renderKPI(slot, p, design)
		case schema.SlotTable:
			shape = renderTable(slot, p, design)
		case schema.SlotChart:
			shape = renderChart(slot, p, design)
		case schema.SlotText, schema.SlotStatic:
			shape = renderText(slot, p, design)
		case schema.SlotSectionDivider:
			shape = renderDivider(slot, p, design)
		default:
			// Image slots and future kinds render as placeholders.
			shape = renderPlaceholder(slot, design)
		}
		if shape != nil {
			out.Shapes = append(out.Shapes, *shape)
		}
	}
	return out
}

// renderKPI produces a centered label / value / variance stack.
func renderKPI(slot *schema.Slot, p payload.Payload, design schema.DesignSystem) *deck.Shape {
	if slot.Kind != schema.SlotKPIValue {
		panic(fmt.Sprintf("render: slot %q is not a kpi slot", slot.Name))
	}

	box := &deck.TextBox{}

	if slot.Label != "" {
		box.Paragraphs = append(box.Paragraphs, deck.Paragraph{
			Alignment: "center",
			Runs: []deck.Run{{Text: slot.Label, Font: deck.Font{
				Name:   design.PrimaryFont,
				SizePt: design.KPILabelSizePt,
				Color:  design.DarkGrey,
			}}},
		})
	}

	value := p.Get(slot.DataKey)
	box.Paragraphs = append(box.Paragraphs, deck.Paragraph{
		Alignment: "center",
		Runs: []deck.Run{{
			Text: formatSlotValue(value, slot.Format),
			Font: fontFor(slot.Font, design),
		}},
	})

	if slot.VarianceKey != "" {
		variance := p.Get(slot.VarianceKey)
		if !variance.IsAbsent() {
			box.Paragraphs = append(box.Paragraphs, deck.Paragraph{
				Alignment: "center",
				Runs: []deck.Run{{
					Text: varianceText(variance, slot.Format),
					Font: deck.Font{
						Name:   design.PrimaryFont,
						SizePt: design.CaptionSizePt,
						Color:  format.VarianceColor(variance, design.Positive, design.Negative, design.DarkText),
					},
				}},
			})
		}
	}

	return textShape(slot, box)
}

// renderTable produces a header row plus one row per payload row. A
// table without usable row data or columns falls back to plain text so
// the slide never loses the slot entirely.
func renderTable(slot *schema.Slot, p payload.Payload, design schema.DesignSystem) *deck.Shape {
	if slot.Kind != schema.SlotTable {
		panic(fmt.Sprintf("render: slot %q is not a table slot", slot.Name))
	}

	var rows []payload.Row
	if slot.RowDataKey != "" {
		rows, _ = p.Get(slot.RowDataKey).Rows()
	}
	if len(rows) == 0 || len(slot.Columns) == 0 {
		return renderTextAs(slot, p, design)
	}

	tbl := &deck.Table{Rows: make([][]deck.Cell, 0, len(rows)+1)}
	for _, col := range slot.Columns {
		tbl.ColWidths = append(tbl.ColWidths, col.WidthIn)
	}

	header := make([]deck.Cell, len(slot.Columns))
	for i, col := range slot.Columns {
		header[i] = deck.Cell{
			Text:      col.Header,
			Bold:      true,
			Fill:      design.DarkBlue,
			Color:     design.White,
			Alignment: col.Alignment,
		}
	}
	tbl.Rows = append(tbl.Rows, header)

	for _, row := range rows {
		cells := make([]deck.Cell, len(slot.Columns))
		for i, col := range slot.Columns {
			raw := row[col.DataKey]
			cell := deck.Cell{
				Text:      formatSlotValue(raw, col.Format),
				Color:     design.DarkText,
				Alignment: col.Alignment,
			}
			if col.Format != nil && col.Format.Kind.IsVariance() && !raw.IsAbsent() {
				pos, neg, neu := col.Format.Colors(design)
				cell.Color = format.VarianceColor(raw, pos, neg, neu)
			}
			cells[i] = cell
		}
		tbl.Rows = append(tbl.Rows, cells)
	}

	return &deck.Shape{
		Kind: deck.ShapeTable, Name: slot.Name,
		Left: slot.Position.Left, Top: slot.Position.Top,
		Width: slot.Position.Width, Height: slot.Position.Height,
		Table: tbl,
	}
}

// renderChart delegates to the shared chart builder. A chart with no
// plottable data degrades to a visible placeholder; the slot is never
// dropped from the slide.
func renderChart(slot *schema.Slot, p payload.Payload, design schema.DesignSystem) *deck.Shape {
	data, ok := chart.Build(slot, p)
	if !ok {
		return renderPlaceholder(slot, design)
	}

	series := make([]deck.ChartSeries, len(data.Series))
	for i, s := range data.Series {
		series[i] = deck.ChartSeries{Name: s.Name, Values: s.Values, Color: s.Color}
	}

	return &deck.Shape{
		Kind: deck.ShapeChart, Name: slot.Name,
		Left: slot.Position.Left, Top: slot.Position.Top,
		Width: slot.Position.Width, Height: slot.Position.Height,
		Chart: &deck.Chart{
			Kind:        string(data.Kind),
			Categories:  data.Categories,
			Series:      series,
			SliceColors: data.SliceColors,
			Legend:      data.Legend,
		},
	}
}

// renderText produces a single-paragraph text box. List values render
// one line per element (table-of-contents entries, bullet lists).
func renderText(slot *schema.Slot, p payload.Payload, design schema.DesignSystem) *deck.Shape {
	if slot.Kind != schema.SlotText && slot.Kind != schema.SlotStatic {
		panic(fmt.Sprintf("render: slot %q is not a text slot", slot.Name))
	}
	return renderTextAs(slot, p, design)
}

// renderTextAs is the kind-agnostic text body, shared with the table
// fallback path.
func renderTextAs(slot *schema.Slot, p payload.Payload, design schema.DesignSystem) *deck.Shape {
	value := p.Get(slot.DataKey)

	var text string
	switch {
	case value.IsAbsent():
		text = ""
	default:
		if elems, ok := value.List(); ok {
			lines := make([]string, len(elems))
			for i, e := range elems {
				lines[i] = e.Display()
			}
			text = strings.Join(lines, "\n")
		} else {
			text = value.Display()
		}
	}

	return textShape(slot, &deck.TextBox{Paragraphs: []deck.Paragraph{
		{Runs: []deck.Run{{Text: text, Font: fontFor(slot.Font, design)}}},
	}})
}

// renderDivider produces the centered divider title, falling back to the
// slot name when the payload carries no title.
func renderDivider(slot *schema.Slot, p payload.Payload, design schema.DesignSystem) *deck.Shape {
	if slot.Kind != schema.SlotSectionDivider {
		panic(fmt.Sprintf("render: slot %q is not a divider slot", slot.Name))
	}

	value := p.Get(slot.DataKey)
	text := slot.Name
	if !value.IsAbsent() {
		text = value.Display()
	}

	return textShape(slot, &deck.TextBox{Paragraphs: []deck.Paragraph{
		{Alignment: "center", Runs: []deck.Run{{Text: text, Font: fontFor(slot.Font, design)}}},
	}})
}

// renderPlaceholder marks a slot the renderer does not materialize, so
// the layout gap is visible during review.
func renderPlaceholder(slot *schema.Slot, design schema.DesignSystem) *deck.Shape {
	return textShape(slot, &deck.TextBox{Paragraphs: []deck.Paragraph{
		{Runs: []deck.Run{{
			Text: fmt.Sprintf("[%s: %s]", slot.Kind, slot.Name),
			Font: deck.Font{
				Name:   design.PrimaryFont,
				SizePt: design.CaptionSizePt,
				Color:  design.LightGray,
			},
		}}},
	}})
}

// fontFor converts a schema font to its deck form, defaulting to the
// design system's body typography.
func fontFor(f *schema.Font, design schema.DesignSystem) deck.Font {
	if f == nil {
		return deck.Font{Name: design.PrimaryFont, SizePt: design.BodySizePt}
	}
	return deck.Font{Name: f.Name, SizePt: f.SizePt, Bold: f.Bold, Italic: f.Italic, Color: f.Color}
}

func textShape(slot *schema.Slot, box *deck.TextBox) *deck.Shape {
	return &deck.Shape{
		Kind: deck.ShapeText, Name: slot.Name,
		Left: slot.Position.Left, Top: slot.Position.Top,
		Width: slot.Position.Width, Height: slot.Position.Height,
		Text: box,
	}
}

// formatSlotValue renders a value through the slot's format rule.
// Without a rule the value's plain display form is used; absent values
// always read "N/A".
func formatSlotValue(v payload.Value, rule *schema.FormatRule) string {
	if v.IsAbsent() {
		return format.NA
	}
	if rule == nil {
		return v.Display()
	}
	return format.Format(v, rule.Kind)
}

// varianceText formats a variance delta: points-change slots report the
// delta in points, everything else as a signed percentage.
func varianceText(v payload.Value, rule *schema.FormatRule) string {
	kind := schema.FormatVariancePercentage
	if rule != nil && rule.Kind == schema.FormatPointsChange {
		kind = schema.FormatPointsChange
	}
	return format.Format(v, kind)
}
