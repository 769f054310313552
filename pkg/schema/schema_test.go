package schema

import (
	"testing"

	"github.com/deckmason/deckmason/pkg/errors"
)

func validTemplate() *Template {
	return &Template{
		Name:         "monthly",
		WidthInches:  13.333,
		HeightInches: 7.5,
		Design:       DefaultDesign(),
		Slides: []Slide{
			{
				Index: 0, Name: "cover", Kind: SlideCover,
				Slots: []Slot{
					{
						Name: "revenue", Kind: SlotKPIValue,
						DataKey: "cover.revenue", VarianceKey: "cover.revenue_var",
						Position: Position{Left: 1, Top: 1, Width: 3, Height: 1.5},
						Format:   &FormatRule{Kind: FormatCurrency},
					},
				},
			},
			{
				Index: 1, Name: "trend", Kind: SlideData,
				Slots: []Slot{
					{
						Name: "trend_chart", Kind: SlotChart,
						DataKey:       "trend.chart",
						ChartKind:     ChartLine,
						CategoriesKey: "trend.months",
						Series: []Series{
							{Name: "Revenue", DataKey: "trend.revenue", Color: "#0065E0"},
						},
						Position: Position{Left: 1, Top: 1, Width: 10, Height: 5},
					},
				},
			},
		},
	}
}

func TestValidateAcceptsWellFormedTemplate(t *testing.T) {
	if err := validTemplate().Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Template)
		wantCode errors.Code
	}{
		{
			name:     "empty name",
			mutate:   func(tm *Template) { tm.Name = "" },
			wantCode: errors.ErrCodeInvalidSchema,
		},
		{
			name:     "zero width",
			mutate:   func(tm *Template) { tm.WidthInches = 0 },
			wantCode: errors.ErrCodeInvalidSchema,
		},
		{
			name:     "slide index gap",
			mutate:   func(tm *Template) { tm.Slides[1].Index = 5 },
			wantCode: errors.ErrCodeInvalidSchema,
		},
		{
			name: "duplicate slot name",
			mutate: func(tm *Template) {
				s := tm.Slides[0].Slots[0]
				tm.Slides[0].Slots = append(tm.Slides[0].Slots, s)
			},
			wantCode: errors.ErrCodeInvalidSchema,
		},
		{
			name:     "bad slot name",
			mutate:   func(tm *Template) { tm.Slides[0].Slots[0].Name = "Total Revenue" },
			wantCode: errors.ErrCodeInvalidSchema,
		},
		{
			name:     "unknown slot kind",
			mutate:   func(tm *Template) { tm.Slides[0].Slots[0].Kind = "video" },
			wantCode: errors.ErrCodeInvalidSchema,
		},
		{
			name:     "missing data key",
			mutate:   func(tm *Template) { tm.Slides[0].Slots[0].DataKey = "" },
			wantCode: errors.ErrCodeInvalidDataKey,
		},
		{
			name:     "un-namespaced data key",
			mutate:   func(tm *Template) { tm.Slides[0].Slots[0].DataKey = "revenue" },
			wantCode: errors.ErrCodeInvalidDataKey,
		},
		{
			name:     "zero-size position",
			mutate:   func(tm *Template) { tm.Slides[0].Slots[0].Position.Width = 0 },
			wantCode: errors.ErrCodeInvalidSchema,
		},
		{
			name:     "unknown format kind",
			mutate:   func(tm *Template) { tm.Slides[0].Slots[0].Format.Kind = "scientific" },
			wantCode: errors.ErrCodeInvalidSchema,
		},
		{
			name:     "unknown chart kind",
			mutate:   func(tm *Template) { tm.Slides[1].Slots[0].ChartKind = "pie" },
			wantCode: errors.ErrCodeInvalidSchema,
		},
		{
			name:     "bad series color",
			mutate:   func(tm *Template) { tm.Slides[1].Slots[0].Series[0].Color = "blue" },
			wantCode: errors.ErrCodeInvalidSchema,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := validTemplate()
			tt.mutate(tm)
			err := tm.Validate()
			if err == nil {
				t.Fatal("Validate() accepted a broken template")
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error code = %v, want %v (err: %v)", errors.GetCode(err), tt.wantCode, err)
			}
		})
	}
}

func TestDataKeys(t *testing.T) {
	keys := validTemplate().DataKeys()
	want := []string{
		"cover.revenue", "cover.revenue_var",
		"trend.chart", "trend.months", "trend.revenue",
	}
	if len(keys) != len(want) {
		t.Fatalf("DataKeys() size = %d, want %d (%v)", len(keys), len(want), keys)
	}
	for _, k := range want {
		if _, ok := keys[k]; !ok {
			t.Errorf("DataKeys() missing %q", k)
		}
	}
}

func TestSlideForKey(t *testing.T) {
	tm := validTemplate()
	if got := tm.SlideForKey("trend.revenue"); got != "trend" {
		t.Errorf("SlideForKey(trend.revenue) = %q, want trend", got)
	}
	if got := tm.SlideForKey("cover.revenue_var"); got != "cover" {
		t.Errorf("SlideForKey(cover.revenue_var) = %q, want cover", got)
	}
	if got := tm.SlideForKey("nope.nothing"); got != "" {
		t.Errorf("SlideForKey(unknown) = %q, want empty", got)
	}
}

func TestSlideLookup(t *testing.T) {
	tm := validTemplate()
	if s := tm.Slide("trend"); s == nil || s.Index != 1 {
		t.Errorf("Slide(trend) = %+v", s)
	}
	if s := tm.Slide("missing"); s != nil {
		t.Errorf("Slide(missing) = %+v, want nil", s)
	}
}

func TestFormatRuleColors(t *testing.T) {
	d := DefaultDesign()

	r := FormatRule{Kind: FormatVariancePercentage}
	pos, neg, neu := r.Colors(d)
	if pos != d.Positive || neg != d.Negative || neu != d.DarkText {
		t.Errorf("default Colors() = %s/%s/%s", pos, neg, neu)
	}

	r = FormatRule{Kind: FormatVariancePercentage, PositiveColor: "#111111", NegativeColor: "#222222", NeutralColor: "#333333"}
	pos, neg, neu = r.Colors(d)
	if pos != "#111111" || neg != "#222222" || neu != "#333333" {
		t.Errorf("override Colors() = %s/%s/%s", pos, neg, neu)
	}
}
