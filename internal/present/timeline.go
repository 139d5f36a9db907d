package present

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ppiankov/lifelines/internal/model"
)

const barGlyph = "█"

// Segment is one horizontal bar of the timeline
type Segment struct {
	Name  string
	Start int
	End   int
	Alive bool
}

// Segments maps records to bars. Living subjects end at currentYear; the
// substitution exists only here and is never written back to a record.
func Segments(records []model.PersonRecord, currentYear int) []Segment {
	segs := make([]Segment, 0, len(records))
	for _, rec := range records {
		seg := Segment{Name: rec.Name, Start: rec.Born, Alive: rec.Alive()}
		if rec.Died != nil {
			seg.End = *rec.Died
		} else {
			seg.End = currentYear
		}
		if seg.End < seg.Start {
			seg.End = seg.Start
		}
		segs = append(segs, seg)
	}
	return segs
}

// Timeline draws one bar per segment on a shared year axis
func (p *Presenter) Timeline(segs []Segment) string {
	if len(segs) == 0 {
		return ""
	}

	lo, hi := segs[0].Start, segs[0].End
	labelWidth := 0
	for _, s := range segs {
		lo = min(lo, s.Start)
		hi = max(hi, s.End)
		labelWidth = max(labelWidth, lipgloss.Width(s.Name))
	}

	var b strings.Builder
	for _, s := range segs {
		from, to := p.column(s.Start, lo, hi), p.column(s.End, lo, hi)
		style, until := p.dead, fmt.Sprintf("%d", s.End)
		if s.Alive {
			style, until = p.alive, "present"
		}

		b.WriteString(pad(s.Name, labelWidth))
		b.WriteString(" │")
		b.WriteString(strings.Repeat(" ", from))
		b.WriteString(style.Render(strings.Repeat(barGlyph, to-from+1)))
		b.WriteString(strings.Repeat(" ", p.width-to))
		b.WriteString(p.muted.Render(fmt.Sprintf("%d–%s", s.Start, until)))
		b.WriteString("\n")
	}

	// Axis: first and last year under the bar area
	left, right := fmt.Sprintf("%d", lo), fmt.Sprintf("%d", hi)
	gap := max(1, p.width-len(left)-len(right)+1)
	b.WriteString(strings.Repeat(" ", labelWidth+2))
	b.WriteString(p.muted.Render(left + strings.Repeat(" ", gap) + right))
	b.WriteString("\n")

	b.WriteString(strings.Repeat(" ", labelWidth+2))
	b.WriteString(p.dead.Render(barGlyph) + " deceased  " + p.alive.Render(barGlyph) + " living")

	return b.String()
}

// column maps a year to a 0-based offset within the bar area
func (p *Presenter) column(year, lo, hi int) int {
	if hi <= lo {
		return 0
	}
	return (year - lo) * (p.width - 1) / (hi - lo)
}

func pad(s string, width int) string {
	return s + strings.Repeat(" ", max(0, width-lipgloss.Width(s)))
}
