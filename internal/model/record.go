package model

// RawCell is the free-text content of one table cell, e.g.
// "John Gorton(1911–2002)Higgins" or "John Howard(b. 1939)Bennelong".
type RawCell = string

// ExtractedFields is the untyped result of splitting a RawCell.
// For a well-formed cell exactly one of DateRange or BornIfAlive is set.
type ExtractedFields struct {
	Name        string  `json:"name"`
	DateRange   *string `json:"date_range,omitempty"`    // "YYYY–YYYY" (deceased)
	BornIfAlive *string `json:"born_if_alive,omitempty"` // "YYYY" (alive)
	Source      string  `json:"source,omitempty"`        // Raw cell text, kept for reporting
}

// HasDates reports whether any date format was recognised
func (f ExtractedFields) HasDates() bool {
	return f.DateRange != nil || f.BornIfAlive != nil
}

// PersonRecord is one normalized subject
type PersonRecord struct {
	Name       string `json:"name"`
	Born       int    `json:"born"`
	Died       *int   `json:"died,omitempty"`
	AgeAtDeath *int   `json:"age_at_death,omitempty"`
}

// NewPersonRecord builds a record and derives AgeAtDeath from died.
// A nil died yields a living subject.
func NewPersonRecord(name string, born int, died *int) PersonRecord {
	rec := PersonRecord{Name: name, Born: born}
	if died != nil {
		d := *died
		age := d - born
		rec.Died = &d
		rec.AgeAtDeath = &age
	}
	return rec
}

// Alive reports whether the subject has no recorded death year
func (r PersonRecord) Alive() bool {
	return r.Died == nil
}

// EnDash separates birth and death years in a date range
const EnDash = "–"

// IssueKind classifies a row-level problem
type IssueKind string

const (
	IssueExtractionAmbiguity IssueKind = "extraction_ambiguity" // zero or both date formats matched
	IssueCoercion            IssueKind = "coercion_error"       // required year not parseable
)

// RowIssue records a recoverable problem with one input row
type RowIssue struct {
	Kind    IssueKind `json:"kind"`
	Row     int       `json:"row"`     // 0-based index into the input of the stage that raised it
	Text    string    `json:"text"`    // Identifying text (raw cell or name)
	Detail  string    `json:"detail"`  // Human-readable reason
	Dropped bool      `json:"dropped"` // Whether the row was excluded from the output
}

// DuplicateConflict groups records sharing a name but disagreeing on values
type DuplicateConflict struct {
	Name    string         `json:"name"`
	Records []PersonRecord `json:"records"`
}
