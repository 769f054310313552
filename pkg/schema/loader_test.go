package schema

import (
	"testing"

	"github.com/deckmason/deckmason/pkg/errors"
)

const templateTOML = `
name = "monthly"
width_inches = 13.333
height_inches = 7.5

[[slides]]
index = 0
name = "cover"
kind = "cover"

  [[slides.slots]]
  name = "revenue"
  kind = "kpi_value"
  data_key = "cover.revenue"
  variance_key = "cover.revenue_var"
  label = "REVENUE"

    [slides.slots.position]
    left = 1.0
    top = 1.0
    width = 3.0
    height = 1.5

    [slides.slots.format]
    kind = "currency"

[[slides]]
index = 1
name = "trend"
kind = "data"

  [[slides.slots]]
  name = "trend_chart"
  kind = "chart"
  data_key = "trend.chart"
  chart_kind = "line"
  categories_key = "trend.months"

    [slides.slots.position]
    left = 1.0
    top = 1.0
    width = 10.0
    height = 5.0

    [[slides.slots.series]]
    name = "Revenue"
    data_key = "trend.revenue"
    color = "#0065E0"
`

func TestParseTemplate(t *testing.T) {
	tm, err := Parse([]byte(templateTOML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if tm.Name != "monthly" || len(tm.Slides) != 2 {
		t.Errorf("template = %s", tm)
	}

	kpi := tm.Slides[0].Slots[0]
	if kpi.Kind != SlotKPIValue || kpi.Format == nil || kpi.Format.Kind != FormatCurrency {
		t.Errorf("kpi slot = %+v", kpi)
	}
	if kpi.VarianceKey != "cover.revenue_var" {
		t.Errorf("variance key = %q", kpi.VarianceKey)
	}

	ch := tm.Slides[1].Slots[0]
	if ch.ChartKind != ChartLine || len(ch.Series) != 1 || ch.Series[0].Color != "#0065E0" {
		t.Errorf("chart slot = %+v", ch)
	}

	// A template without a [design] table gets the stock design system.
	if tm.Design.PrimaryFont == "" || tm.Design.DividerBG != DefaultDesign().DividerBG {
		t.Errorf("design defaults not applied: %+v", tm.Design)
	}
}

func TestParseRejectsInvalidTemplate(t *testing.T) {
	cases := map[string]string{
		"not toml": "{{{",
		"fails validation": `
name = ""
width_inches = 13.333
height_inches = 7.5
`,
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("%s: Parse() succeeded", name)
		}
	}
}

func TestEncodeParseRoundTrip(t *testing.T) {
	orig, err := Parse([]byte(templateTOML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	data, err := orig.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	again, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Encode()) error = %v", err)
	}
	if again.String() != orig.String() {
		t.Errorf("round trip changed template: %s vs %s", again, orig)
	}
	if len(again.Slides[1].Slots[0].Series) != 1 {
		t.Error("round trip dropped chart series")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.toml")
	if err == nil {
		t.Fatal("Load() succeeded on missing file")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}
