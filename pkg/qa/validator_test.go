package qa

import (
	"strings"
	"testing"

	"github.com/deckmason/deckmason/pkg/payload"
	"github.com/deckmason/deckmason/pkg/render"
	"github.com/deckmason/deckmason/pkg/schema"
)

func reportTemplate() *schema.Template {
	return &schema.Template{
		Name:         "monthly",
		WidthInches:  13.333,
		HeightInches: 7.5,
		Design:       schema.DefaultDesign(),
		Slides: []schema.Slide{
			{
				Index: 0, Name: "kpis", Kind: schema.SlideData,
				Slots: []schema.Slot{
					{
						Name: "revenue", Kind: schema.SlotKPIValue,
						DataKey: "kpi.revenue", VarianceKey: "kpi.revenue_var",
						Label:    "REVENUE",
						Position: schema.Position{Left: 1, Top: 1, Width: 3, Height: 1.5},
						Format:   &schema.FormatRule{Kind: schema.FormatCurrency},
					},
				},
			},
			{
				Index: 1, Name: "detail", Kind: schema.SlideData,
				Slots: []schema.Slot{
					{
						Name: "breakdown", Kind: schema.SlotTable,
						RowDataKey: "table.rows",
						Position:   schema.Position{Left: 1, Top: 1, Width: 10, Height: 4},
						Columns: []schema.Column{
							{Header: "Metric", DataKey: "metric"},
							{Header: "Actual", DataKey: "actual",
								Format: &schema.FormatRule{Kind: schema.FormatCurrency}},
							{Header: "vs LM", DataKey: "vs_lm",
								Format: &schema.FormatRule{Kind: schema.FormatVariancePercentage}},
						},
					},
					{
						Name: "trend_chart", Kind: schema.SlotChart,
						ChartKind:     schema.ChartColumnClustered,
						CategoriesKey: "trend.months",
						Series: []schema.Series{
							{Name: "Revenue", DataKey: "trend.revenue"},
							{Name: "Costs", DataKey: "trend.costs"},
						},
						Position: schema.Position{Left: 1, Top: 5, Width: 10, Height: 2},
					},
				},
			},
			{
				Index: 2, Name: "section", Kind: schema.SlideDivider,
				Slots: []schema.Slot{
					{
						Name: "divider_title", Kind: schema.SlotSectionDivider,
						DataKey:  "section.title",
						Position: schema.Position{Left: 1, Top: 3, Width: 11, Height: 1.5},
					},
				},
			},
		},
	}
}

func reportPayload() payload.Payload {
	return payload.Payload{
		"kpi.revenue":     payload.Number(209_200),
		"kpi.revenue_var": payload.Number(5.2),
		"table.rows": payload.Rows([]payload.Row{
			{"metric": payload.String("Revenue"), "actual": payload.Number(209_200), "vs_lm": payload.Number(5.2)},
			{"metric": payload.String("Costs"), "actual": payload.Number(84_000), "vs_lm": payload.Number(-3.1)},
		}),
		"trend.months":  payload.Strings("Jan", "Feb", "Mar"),
		"trend.revenue": payload.Numbers(100, 150, 209.2),
		"trend.costs":   payload.Numbers(40, 45, 50),
		"section.title": payload.String("Marketing Performance"),
	}
}

func renderArtifact(t *testing.T, tmpl *schema.Template, p payload.Payload) []byte {
	t.Helper()
	data, err := render.Render(tmpl, p)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return data
}

func categories(r Report) map[string]int {
	out := make(map[string]int)
	for _, i := range r.Issues {
		out[i.Category]++
	}
	return out
}

func TestValidateCleanRoundTrip(t *testing.T) {
	tmpl := reportTemplate()
	p := reportPayload()
	artifact := renderArtifact(t, tmpl, p)

	r := New(tmpl).Validate(artifact, p)
	if !r.Passed() {
		t.Fatalf("validation failed:\n%s", r)
	}
	if len(r.Issues) != 0 {
		t.Errorf("clean round trip produced issues:\n%s", r)
	}
	if got := r.Summary(); got != "QA PASS: 0 error(s), 0 warning(s)" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestValidateIsIdempotent(t *testing.T) {
	tmpl := reportTemplate()
	p := reportPayload()
	artifact := renderArtifact(t, tmpl, p)
	v := New(tmpl)

	first := v.Validate(artifact, p)
	second := v.Validate(artifact, p)
	if len(first.Issues) != len(second.Issues) {
		t.Errorf("issue counts differ across runs: %d vs %d", len(first.Issues), len(second.Issues))
	}
}

func TestValidateUnreadableArtifact(t *testing.T) {
	r := New(reportTemplate()).Validate([]byte("garbage"), reportPayload())
	if r.Passed() {
		t.Fatal("unreadable artifact passed validation")
	}
	if categories(r)[CategoryArtifact] != 1 {
		t.Errorf("issues = %v, want one artifact issue", r.Issues)
	}
}

func TestValidateSlideCountMismatch(t *testing.T) {
	tmpl := reportTemplate()
	p := reportPayload()

	short := reportTemplate()
	short.Slides = short.Slides[:2]
	artifact := renderArtifact(t, short, p)

	r := New(tmpl).Validate(artifact, p)
	if r.Passed() {
		t.Fatal("slide count mismatch passed validation")
	}
	cats := categories(r)
	if cats[CategorySlideCount] != 1 {
		t.Errorf("issues = %v, want one slide_count error", r.Issues)
	}
	// Per-slide checks are skipped when counts diverge.
	if cats[CategoryTableMissing] != 0 || cats[CategoryChartMissing] != 0 {
		t.Errorf("per-slide issues reported despite count mismatch:\n%s", r)
	}
}

func TestValidateDimensionMismatch(t *testing.T) {
	tmpl := reportTemplate()
	p := reportPayload()

	wide := reportTemplate()
	wide.WidthInches = 10
	wide.HeightInches = 5.625
	artifact := renderArtifact(t, wide, p)

	r := New(tmpl).Validate(artifact, p)
	if got := categories(r)[CategoryDimensions]; got != 2 {
		t.Errorf("dimensions issues = %d, want 2 (width and height)", got)
	}
}

func TestValidateMissingPayloadKeys(t *testing.T) {
	tmpl := reportTemplate()
	p := reportPayload()
	delete(p, "trend.costs")
	artifact := renderArtifact(t, tmpl, p)

	r := New(tmpl).Validate(artifact, p)
	if !r.Passed() {
		t.Fatalf("missing key should only warn:\n%s", r)
	}
	var found *Issue
	for i := range r.Issues {
		if r.Issues[i].Category == CategoryPayloadMissing {
			found = &r.Issues[i]
		}
	}
	if found == nil {
		t.Fatalf("no payload_missing warning in:\n%s", r)
	}
	if !strings.Contains(found.Message, "trend.costs") {
		t.Errorf("warning message = %q, want mention of trend.costs", found.Message)
	}
	if found.SlideName != "detail" {
		t.Errorf("warning slide = %q, want detail", found.SlideName)
	}
}

func TestValidateTamperedKPIValue(t *testing.T) {
	tmpl := reportTemplate()
	p := reportPayload()
	artifact := renderArtifact(t, tmpl, p)

	// Validate against a payload claiming a different revenue figure.
	tampered := reportPayload()
	tampered["kpi.revenue"] = payload.Number(999_999)

	r := New(tmpl).Validate(artifact, tampered)
	if r.Passed() {
		t.Fatal("stale KPI value passed validation")
	}
	if categories(r)[CategoryKPIValueMissing] == 0 {
		t.Errorf("no kpi_value_missing error in:\n%s", r)
	}
}

func TestValidateVarianceColorMismatch(t *testing.T) {
	tmpl := reportTemplate()
	p := reportPayload()
	artifact := renderArtifact(t, tmpl, p)

	// Flip the variance sign but keep the magnitude; the rendered text
	// differs so only the variance text warning fires.
	tampered := reportPayload()
	tampered["kpi.revenue_var"] = payload.Number(-5.2)

	r := New(tmpl).Validate(artifact, tampered)
	if categories(r)[CategoryVarianceMissing] == 0 {
		t.Errorf("no variance_text_missing warning in:\n%s", r)
	}
}

func TestValidateTableRowCountMismatch(t *testing.T) {
	tmpl := reportTemplate()
	p := reportPayload()
	artifact := renderArtifact(t, tmpl, p)

	extra := reportPayload()
	rows, _ := extra["table.rows"].Rows()
	rows = append(rows, payload.Row{"metric": payload.String("Margin"), "actual": payload.Number(125_200), "vs_lm": payload.Number(11.4)})
	extra["table.rows"] = payload.Rows(rows)

	r := New(tmpl).Validate(artifact, extra)
	if r.Passed() {
		t.Fatal("row count mismatch passed validation")
	}
	if categories(r)[CategoryTableRowCount] == 0 {
		t.Errorf("no table_row_count error in:\n%s", r)
	}
}

func TestValidateChartSeriesLengthMismatch(t *testing.T) {
	tmpl := reportTemplate()
	p := reportPayload()
	p["trend.revenue"] = payload.Numbers(100, 150) // 2 values, 3 categories
	artifact := renderArtifact(t, tmpl, p)

	r := New(tmpl).Validate(artifact, p)
	if r.Passed() {
		t.Fatal("series length mismatch passed validation")
	}
	if categories(r)[CategoryChartDataLength] == 0 {
		t.Errorf("no chart_data_length error in:\n%s", r)
	}
}

func TestValidateChartWithoutCategoriesRoundTrips(t *testing.T) {
	// Series data with no categories list is unplottable: the renderer
	// keeps the slot as a placeholder, and the validator derives the
	// same no-chart expectation from the shared chart builder.
	tmpl := reportTemplate()
	p := reportPayload()
	delete(p, "trend.months")
	artifact := renderArtifact(t, tmpl, p)

	r := New(tmpl).Validate(artifact, p)
	if !r.Passed() {
		t.Fatalf("round trip without categories failed:\n%s", r)
	}
	if categories(r)[CategoryChartMissing] != 0 {
		t.Errorf("chart_missing reported for an unplottable chart:\n%s", r)
	}
}

func TestValidateChartMissingFromArtifact(t *testing.T) {
	// Artifact rendered while categories were missing, validated against
	// the completed payload: a chart is now expected but absent.
	tmpl := reportTemplate()
	stale := reportPayload()
	delete(stale, "trend.months")
	artifact := renderArtifact(t, tmpl, stale)

	r := New(tmpl).Validate(artifact, reportPayload())
	if r.Passed() {
		t.Fatal("missing chart shape passed validation")
	}
	if categories(r)[CategoryChartMissing] == 0 {
		t.Errorf("no chart_missing error in:\n%s", r)
	}
}

func TestValidateDividerBackground(t *testing.T) {
	tmpl := reportTemplate()
	p := reportPayload()

	offBrand := reportTemplate()
	offBrand.Design.DividerBG = "#FF0000"
	artifact := renderArtifact(t, offBrand, p)

	r := New(tmpl).Validate(artifact, p)
	if categories(r)[CategoryDividerBackground] == 0 {
		t.Errorf("no divider_background error in:\n%s", r)
	}
}

func TestValidateMissingKPIShowsNA(t *testing.T) {
	tmpl := reportTemplate()
	p := reportPayload()
	delete(p, "kpi.revenue")
	artifact := renderArtifact(t, tmpl, p)

	// The renderer writes N/A, so the degraded deck still passes.
	r := New(tmpl).Validate(artifact, p)
	if !r.Passed() {
		t.Fatalf("degraded KPI should pass with warnings only:\n%s", r)
	}
	if categories(r)[CategoryKPIMissingNA] != 0 {
		t.Errorf("kpi_missing_na reported even though N/A is on the slide:\n%s", r)
	}
}

func TestValidatePayloadStructure(t *testing.T) {
	tmpl := reportTemplate()

	p := reportPayload()
	p["table.rows"] = payload.Number(42)        // not row data
	p["trend.revenue"] = payload.String("lots") // not a list
	p["kpi.revenue"] = payload.Numbers(1, 2, 3) // not a scalar

	r := New(tmpl).ValidatePayload(p)
	if r.Passed() {
		t.Fatal("malformed payload passed validation")
	}
	cats := categories(r)
	if cats[CategoryTypeError] != 3 {
		t.Errorf("type_error count = %d, want 3:\n%s", cats[CategoryTypeError], r)
	}
}

func TestValidatePayloadColumnKeyMissing(t *testing.T) {
	tmpl := reportTemplate()
	p := reportPayload()
	p["table.rows"] = payload.Rows([]payload.Row{
		{"metric": payload.String("Revenue"), "actual": payload.Number(1)},
	})

	r := New(tmpl).ValidatePayload(p)
	if !r.Passed() {
		t.Fatalf("missing column key should only warn:\n%s", r)
	}
	if categories(r)[CategoryColumnKeyMissing] != 1 {
		t.Errorf("column_key_missing count = %d, want 1:\n%s", categories(r)[CategoryColumnKeyMissing], r)
	}
}

func TestIssueString(t *testing.T) {
	i := Issue{
		Severity:   SeverityError,
		SlideIndex: 1,
		SlideName:  "detail",
		SlotName:   "breakdown",
		Category:   CategoryTableRowCount,
		Message:    "Table has 3 rows, expected 4 (1 header + 3 data)",
	}
	want := "[ERROR] slide 1 (detail) / breakdown: Table has 3 rows, expected 4 (1 header + 3 data)"
	if got := i.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestReportString(t *testing.T) {
	var r Report
	r.add(SeverityError, -1, "", "", CategorySlideCount, "Expected 3 slides, got 2")
	r.add(SeverityWarning, 0, "kpis", "revenue", CategoryKPILabelMissing, "KPI label \"REVENUE\" not found on slide")

	got := r.String()
	if !strings.HasPrefix(got, "QA FAIL: 1 error(s), 1 warning(s)") {
		t.Errorf("report does not open with summary: %q", got)
	}
	if lines := strings.Split(got, "\n"); len(lines) != 3 {
		t.Errorf("report line count = %d, want 3", len(lines))
	}
}
