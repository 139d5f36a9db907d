// Package extract splits free-text biography cells into name and date fields.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ppiankov/lifelines/internal/model"
)

var (
	// Four digits, an en-dash (U+2013, never a hyphen), four digits.
	deceasedPattern = regexp.MustCompile(`\d{4}` + model.EnDash + `\d{4}`)

	// Lowercase b, period, exactly one space character (ASCII whitespace or
	// a Unicode space such as NBSP), four digits.
	alivePattern = regexp.MustCompile(`b\.[\s\p{Zs}](\d{4})`)
)

// AmbiguityReason explains why a cell did not match exactly one date format
type AmbiguityReason string

const (
	ReasonNoDates     AmbiguityReason = "no date pattern matched"
	ReasonBothFormats AmbiguityReason = "both date formats matched; using birth–death range"
)

// AmbiguityError reports a cell that matched zero or both date formats.
// It is recoverable: for ReasonBothFormats the returned fields are still
// usable, for ReasonNoDates they carry only the name.
type AmbiguityError struct {
	Cell   string
	Reason AmbiguityReason
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("ambiguous cell %q: %s", e.Cell, e.Reason)
}

// Extract splits one cell into its name and date fields.
//
// The name is everything before the first "(", trimmed. The remainder is
// searched for a "YYYY–YYYY" range (deceased) and a "b. YYYY" marker
// (alive). When both match, the range wins.
func Extract(cell model.RawCell) (model.ExtractedFields, error) {
	name, remainder, _ := strings.Cut(cell, "(")

	fields := model.ExtractedFields{
		Name:   strings.TrimSpace(name),
		Source: cell,
	}

	dateRange := deceasedPattern.FindString(remainder)
	alive := alivePattern.FindStringSubmatch(remainder)

	switch {
	case dateRange != "" && alive != nil:
		fields.DateRange = &dateRange
		return fields, &AmbiguityError{Cell: cell, Reason: ReasonBothFormats}
	case dateRange != "":
		fields.DateRange = &dateRange
	case alive != nil:
		born := alive[1]
		fields.BornIfAlive = &born
	default:
		return fields, &AmbiguityError{Cell: cell, Reason: ReasonNoDates}
	}

	return fields, nil
}

// ExtractAll runs Extract over every cell. Cells without any date are
// reported and left out; cells matching both formats are reported and kept.
// RowIssue.Row is the index into cells.
func ExtractAll(cells []model.RawCell) ([]model.ExtractedFields, []model.RowIssue) {
	out := make([]model.ExtractedFields, 0, len(cells))
	var issues []model.RowIssue

	for i, cell := range cells {
		fields, err := Extract(cell)
		if err != nil {
			issues = append(issues, model.RowIssue{
				Kind:    model.IssueExtractionAmbiguity,
				Row:     i,
				Text:    cell,
				Detail:  err.Error(),
				Dropped: !fields.HasDates(),
			})
			if !fields.HasDates() {
				continue
			}
		}
		out = append(out, fields)
	}

	return out, issues
}
