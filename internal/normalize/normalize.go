// Package normalize turns extracted text fields into typed, deduplicated
// person records.
package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/ppiankov/lifelines/internal/model"
)

// aliveMarker prefixes a birth year for living subjects
const aliveMarker = "b. "

// CoercionError reports a row whose required year could not be typed
type CoercionError struct {
	Row   int
	Field string
	Value string
	Err   error
}

func (e *CoercionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("row %d: %s %q: %v", e.Row, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("row %d: %s %q is not a valid year", e.Row, e.Field, e.Value)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

// Result is the outcome of normalizing one batch of extracted rows
type Result struct {
	Records           []model.PersonRecord
	Issues            []model.RowIssue
	Conflicts         []model.DuplicateConflict
	DuplicatesRemoved int
}

// Normalizer converts ExtractedFields into PersonRecords
type Normalizer struct {
	logger *zap.Logger
}

// NewNormalizer creates a normalizer; a nil logger discards output
func NewNormalizer(logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{logger: logger}
}

// Normalize types every row, drops rows whose birth year cannot be read,
// then removes exact duplicates. Rows sharing a name but not values are
// kept and reported as conflicts. Output order follows first occurrence.
func (n *Normalizer) Normalize(items []model.ExtractedFields) *Result {
	res := &Result{}
	records := make([]model.PersonRecord, 0, len(items))

	for i, item := range items {
		rec, err := toRecord(i, item)
		if err != nil {
			issue := model.RowIssue{
				Kind:    model.IssueCoercion,
				Row:     i,
				Text:    identify(item),
				Detail:  err.Error(),
				Dropped: true,
			}
			if !item.HasDates() {
				issue.Kind = model.IssueExtractionAmbiguity
			}
			res.Issues = append(res.Issues, issue)
			n.logger.Warn("row dropped",
				zap.Int("row", i),
				zap.String("kind", string(issue.Kind)),
				zap.String("text", issue.Text),
				zap.Error(err))
			continue
		}
		records = append(records, rec)
	}

	res.Records, res.Conflicts, res.DuplicatesRemoved = Dedupe(records)

	if res.DuplicatesRemoved > 0 {
		n.logger.Debug("collapsed duplicate rows", zap.Int("count", res.DuplicatesRemoved))
	}
	for _, c := range res.Conflicts {
		n.logger.Warn("same name with differing values",
			zap.String("name", c.Name),
			zap.Int("variants", len(c.Records)))
	}

	return res
}

// toRecord splits the range, strips the alive marker,
// coerces to integers and derives age at death.
func toRecord(row int, item model.ExtractedFields) (model.PersonRecord, error) {
	var birthText, deathText string
	hasDeath := false

	switch {
	case item.DateRange != nil:
		b, d, found := strings.Cut(*item.DateRange, model.EnDash)
		birthText = b
		if found {
			deathText = d
			hasDeath = true
		}
	case item.BornIfAlive != nil:
		birthText = *item.BornIfAlive
	default:
		return model.PersonRecord{}, &CoercionError{Row: row, Field: "born", Value: ""}
	}

	birthText = strings.TrimPrefix(strings.TrimSpace(birthText), aliveMarker)

	born, err := parseYear(birthText)
	if err != nil {
		return model.PersonRecord{}, &CoercionError{Row: row, Field: "born", Value: birthText, Err: err}
	}

	var died *int
	if hasDeath {
		// An unreadable death year means "unknown", not a bad row
		if d, err := parseYear(deathText); err == nil {
			died = &d
		}
	}

	if died != nil && *died < born {
		return model.PersonRecord{}, &CoercionError{
			Row:   row,
			Field: "died",
			Value: strconv.Itoa(*died),
			Err:   fmt.Errorf("death year before birth year %d", born),
		}
	}

	return model.NewPersonRecord(item.Name, born, died), nil
}

// parseYear accepts exactly four ASCII digits
func parseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if len(s) != 4 {
		return 0, fmt.Errorf("want 4 digits, got %d characters", len(s))
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-digit %q", r)
		}
	}
	return strconv.Atoi(s)
}

// Dedupe collapses records equal in name, born and died (first occurrence
// wins) and groups same-name records that disagree. It is idempotent.
func Dedupe(records []model.PersonRecord) ([]model.PersonRecord, []model.DuplicateConflict, int) {
	seen := make(map[string]bool)
	byName := make(map[string][]model.PersonRecord)
	var order []string
	unique := make([]model.PersonRecord, 0, len(records))
	removed := 0

	for _, rec := range records {
		nk := NameKey(rec.Name)
		key := exactKey(nk, rec)
		if seen[key] {
			removed++
			continue
		}
		seen[key] = true
		unique = append(unique, rec)

		if _, ok := byName[nk]; !ok {
			order = append(order, nk)
		}
		byName[nk] = append(byName[nk], rec)
	}

	var conflicts []model.DuplicateConflict
	for _, nk := range order {
		group := byName[nk]
		if len(group) > 1 {
			conflicts = append(conflicts, model.DuplicateConflict{
				Name:    group[0].Name,
				Records: group,
			})
		}
	}

	return unique, conflicts, removed
}

// NameKey normalizes a name for comparison: Unicode NFC, single spaces.
// Case is preserved since the source capitalizes names consistently.
func NameKey(name string) string {
	return strings.Join(strings.Fields(norm.NFC.String(name)), " ")
}

func exactKey(nameKey string, rec model.PersonRecord) string {
	died := "-"
	if rec.Died != nil {
		died = strconv.Itoa(*rec.Died)
	}
	return nameKey + "\x00" + strconv.Itoa(rec.Born) + "\x00" + died
}

func identify(item model.ExtractedFields) string {
	if item.Source != "" {
		return item.Source
	}
	return item.Name
}
