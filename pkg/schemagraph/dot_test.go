package schemagraph

import (
	"strings"
	"testing"

	"github.com/deckmason/deckmason/pkg/schema"
)

func graphTemplate() *schema.Template {
	return &schema.Template{
		Name:         "monthly",
		WidthInches:  13.333,
		HeightInches: 7.5,
		Design:       schema.DefaultDesign(),
		Slides: []schema.Slide{
			{
				Index: 0, Name: "cover", Title: "Cover", Kind: schema.SlideCover,
				Slots: []schema.Slot{
					{
						Name: "revenue", Kind: schema.SlotKPIValue,
						DataKey: "cover.revenue", VarianceKey: "cover.revenue_var",
						Position: schema.Position{Left: 1, Top: 1, Width: 2, Height: 1},
					},
				},
			},
			{
				Index: 1, Name: "section", Kind: schema.SlideDivider,
				Slots: []schema.Slot{
					{
						Name: "title", Kind: schema.SlotSectionDivider,
						DataKey:  "section.title",
						Position: schema.Position{Left: 0, Top: 0, Width: 13.333, Height: 7.5},
					},
				},
			},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(graphTemplate(), Options{})

	for _, want := range []string{
		"digraph schema {",
		`"template" -> "slide:cover"`,
		`"slide:cover" -> "slot:cover.revenue"`,
		"0: Cover",
		"1: section",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	// Divider slides use the brand background fill.
	if !strings.Contains(dot, schema.DefaultDesign().DividerBG) {
		t.Error("divider slide not filled with divider background color")
	}

	// Without the DataKeys option no key nodes appear.
	if strings.Contains(dot, "key:cover.revenue") {
		t.Error("data-key nodes present without DataKeys option")
	}
}

func TestToDOTWithDataKeys(t *testing.T) {
	dot := ToDOT(graphTemplate(), Options{DataKeys: true})

	for _, want := range []string{
		`"key:cover.revenue"`,
		`"key:cover.revenue_var"`,
		`"slot:cover.revenue" -> "key:cover.revenue"`,
		"style=dashed",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}
