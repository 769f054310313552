// Package qa validates a rendered deck artifact against the schema and
// payload that produced it.
//
// The validator re-opens the artifact through the reader side of the
// deck package and re-derives the expected content with the same
// formatting engine the renderer used. Every finding is an Issue;
// errors fail the run, warnings do not. Validation itself never fails:
// even an unreadable artifact reports as an issue rather than an error
// return.
package qa

import (
	"fmt"
	"strings"
)

// Severity classifies an issue.
type Severity string

// Issue severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue categories.
const (
	CategoryArtifact           = "artifact"
	CategorySlideCount         = "slide_count"
	CategoryDimensions         = "dimensions"
	CategoryPayloadMissing     = "payload_missing"
	CategoryTypeError          = "type_error"
	CategoryColumnKeyMissing   = "column_key_missing"
	CategorySeriesLenMismatch  = "series_length_mismatch"
	CategoryKPIMissingNA       = "kpi_missing_na"
	CategoryKPIValueMissing    = "kpi_value_missing"
	CategoryKPILabelMissing    = "kpi_label_missing"
	CategoryVarianceColor      = "variance_color"
	CategoryVarianceMissing    = "variance_text_missing"
	CategoryTableMissing       = "table_missing"
	CategoryTableRowCount      = "table_row_count"
	CategoryTableColumnCount   = "table_column_count"
	CategoryTableHeader        = "table_header"
	CategoryTableCellFormat    = "table_cell_format"
	CategoryTableVarianceColor = "table_variance_color"
	CategoryChartMissing       = "chart_missing"
	CategoryChartType          = "chart_type"
	CategoryChartSeriesCount   = "chart_series_count"
	CategoryChartDataLength    = "chart_data_length"
	CategoryDividerBackground  = "divider_background"
	CategoryTextContent        = "text_content"
)

// Issue is a single finding.
type Issue struct {
	Severity Severity `json:"severity"`
	// SlideIndex is -1 for document-level issues.
	SlideIndex int    `json:"slide_index"`
	SlideName  string `json:"slide_name,omitempty"`
	SlotName   string `json:"slot_name,omitempty"`
	Category   string `json:"category"`
	Message    string `json:"message"`
}

// String renders the issue as a single report line.
func (i Issue) String() string {
	loc := fmt.Sprintf("slide %d", i.SlideIndex)
	if i.SlideName != "" {
		loc += fmt.Sprintf(" (%s)", i.SlideName)
	}
	if i.SlotName != "" {
		loc += " / " + i.SlotName
	}
	return fmt.Sprintf("[%s] %s: %s", strings.ToUpper(string(i.Severity)), loc, i.Message)
}

// Report aggregates the issues of one validation run.
type Report struct {
	Issues []Issue `json:"issues"`
}

// Errors returns the error-severity issues.
func (r Report) Errors() []Issue { return r.filter(SeverityError) }

// Warnings returns the warning-severity issues.
func (r Report) Warnings() []Issue { return r.filter(SeverityWarning) }

func (r Report) filter(s Severity) []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			out = append(out, i)
		}
	}
	return out
}

// Passed reports whether the run produced no errors. Warnings alone
// still pass.
func (r Report) Passed() bool { return r.ErrorCount() == 0 }

// ErrorCount returns the number of error-severity issues.
func (r Report) ErrorCount() int { return len(r.Errors()) }

// WarningCount returns the number of warning-severity issues.
func (r Report) WarningCount() int { return len(r.Warnings()) }

// Summary returns the one-line result.
func (r Report) Summary() string {
	status := "PASS"
	if !r.Passed() {
		status = "FAIL"
	}
	return fmt.Sprintf("QA %s: %d error(s), %d warning(s)", status, r.ErrorCount(), r.WarningCount())
}

// String returns the multi-line report: summary first, then one line
// per issue in discovery order.
func (r Report) String() string {
	lines := []string{r.Summary()}
	for _, i := range r.Issues {
		lines = append(lines, "  "+i.String())
	}
	return strings.Join(lines, "\n")
}

func (r *Report) add(sev Severity, slideIndex int, slideName, slotName, category, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{
		Severity:   sev,
		SlideIndex: slideIndex,
		SlideName:  slideName,
		SlotName:   slotName,
		Category:   category,
		Message:    fmt.Sprintf(format, args...),
	})
}
