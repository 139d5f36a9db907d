// Package present renders person records for the terminal and for export.
package present

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ppiankov/lifelines/internal/model"
)

// missing is shown for absent optional values
const missing = "—"

// Column labels for the record table
var tableHeaders = []string{"Name", "Born", "Died", "Age at death"}

// Presenter renders to a single writer. Colors are emitted only when the
// writer is a color-capable terminal.
type Presenter struct {
	w      io.Writer
	width  int
	header lipgloss.Style
	cell   lipgloss.Style
	muted  lipgloss.Style
	alive  lipgloss.Style
	dead   lipgloss.Style
	border lipgloss.Style
}

// New creates a presenter writing to w; width is the timeline bar area
func New(w io.Writer, width int) *Presenter {
	if width < 10 {
		width = 10
	}
	r := lipgloss.NewRenderer(w)
	return &Presenter{
		w:      w,
		width:  width,
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")).Padding(0, 1),
		cell:   r.NewStyle().Padding(0, 1),
		muted:  r.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		alive:  r.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		dead:   r.NewStyle().Foreground(lipgloss.Color("#7C3AED")),
		border: r.NewStyle().Foreground(lipgloss.Color("#45475A")),
	}
}

// Table renders records with human-readable column labels
func (p *Presenter) Table(records []model.PersonRecord) string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Name,
			strconv.Itoa(rec.Born),
			optInt(rec.Died),
			optInt(rec.AgeAtDeath),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.border).
		Headers(tableHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.header
			}
			return p.cell
		})

	return t.String()
}

// Summary renders the descriptive statistics block
func (p *Presenter) Summary(s model.Summary) string {
	out := fmt.Sprintf("Subjects: %d (%d living, %d deceased)\n", s.Total, s.Living, s.Deceased)
	if s.MeanAgeAtDeath != nil {
		out += fmt.Sprintf("Mean age at death: %.1f\n", *s.MeanAgeAtDeath)
	}
	if s.MedianAgeAtDeath != nil {
		out += fmt.Sprintf("Median age at death: %.1f\n", *s.MedianAgeAtDeath)
	}
	if s.Longest != nil {
		out += fmt.Sprintf("Longest lived: %s (%d)\n", s.Longest.Name, *s.Longest.AgeAtDeath)
	}
	if s.Shortest != nil {
		out += fmt.Sprintf("Shortest lived: %s (%d)\n", s.Shortest.Name, *s.Shortest.AgeAtDeath)
	}
	return out
}

// Render writes the table, summary and (unless disabled) the timeline
func (p *Presenter) Render(records []model.PersonRecord, summary model.Summary, currentYear int, timeline bool) error {
	if _, err := fmt.Fprintln(p.w, p.Table(records)); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	if _, err := fmt.Fprintln(p.w, p.Summary(summary)); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	if timeline && len(records) > 0 {
		if _, err := fmt.Fprintln(p.w, p.Timeline(Segments(records, currentYear))); err != nil {
			return fmt.Errorf("write timeline: %w", err)
		}
	}
	return nil
}

func optInt(v *int) string {
	if v == nil {
		return missing
	}
	return strconv.Itoa(*v)
}
