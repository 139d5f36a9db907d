package present

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/lifelines/internal/model"
	"github.com/ppiankov/lifelines/internal/stats"
)

func died(y int) *int { return &y }

func sample() []model.PersonRecord {
	return []model.PersonRecord{
		model.NewPersonRecord("John Gorton", 1911, died(2002)),
		model.NewPersonRecord("John Howard", 1939, nil),
	}
}

func TestTable_LabelsAndAbsentValues(t *testing.T) {
	p := New(&bytes.Buffer{}, 40)
	out := p.Table(sample())

	for _, label := range []string{"Name", "Born", "Died", "Age at death"} {
		assert.Contains(t, out, label)
	}
	assert.Contains(t, out, "John Gorton")
	assert.Contains(t, out, "2002")
	assert.Contains(t, out, "91")

	var howard string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "John Howard") {
			howard = line
		}
	}
	require.NotEmpty(t, howard)
	assert.Contains(t, howard, "1939")
	assert.Equal(t, 2, strings.Count(howard, missing))
}

func TestSegments_AliveUsesCurrentYear(t *testing.T) {
	records := sample()
	segs := Segments(records, 2024)
	require.Len(t, segs, 2)

	assert.Equal(t, Segment{Name: "John Gorton", Start: 1911, End: 2002}, segs[0])
	assert.Equal(t, Segment{Name: "John Howard", Start: 1939, End: 2024, Alive: true}, segs[1])

	// Records are untouched
	assert.Nil(t, records[1].Died)
	assert.Nil(t, records[1].AgeAtDeath)
}

func TestTimeline_BarsAxisAndLegend(t *testing.T) {
	p := New(&bytes.Buffer{}, 20)
	out := p.Timeline(Segments(sample(), 2024))

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)

	assert.True(t, strings.HasPrefix(lines[0], "John Gorton │"+barGlyph))
	assert.Contains(t, lines[0], "1911–2002")
	assert.Contains(t, lines[1], "1939–present")
	assert.Contains(t, lines[2], "1911")
	assert.Contains(t, lines[2], "2024")
	assert.Contains(t, lines[3], "deceased")
	assert.Contains(t, lines[3], "living")

	// Gorton spans from the left edge, Howard starts later
	gorton := strings.Count(lines[0], barGlyph)
	howard := strings.Count(lines[1], barGlyph)
	assert.Greater(t, gorton, 0)
	assert.Greater(t, howard, 0)
	assert.Greater(t, strings.Index(lines[1], barGlyph), strings.Index(lines[0], barGlyph))
}

func TestTimeline_Empty(t *testing.T) {
	assert.Empty(t, New(&bytes.Buffer{}, 20).Timeline(nil))
}

func TestTimeline_SingleYear(t *testing.T) {
	p := New(&bytes.Buffer{}, 20)
	out := p.Timeline([]Segment{{Name: "Infant", Start: 1900, End: 1900}})
	assert.Equal(t, 1, strings.Count(strings.Split(out, "\n")[0], barGlyph))
}

func TestRender_WritesAllSections(t *testing.T) {
	var buf bytes.Buffer
	records := sample()
	require.NoError(t, New(&buf, 30).Render(records, stats.Summarize(records), 2024, true))

	out := buf.String()
	assert.Contains(t, out, "Age at death")
	assert.Contains(t, out, "Subjects: 2 (1 living, 1 deceased)")
	assert.Contains(t, out, "Longest lived: John Gorton (91)")
	assert.Contains(t, out, "1939–present")
}

func TestRender_NoTimeline(t *testing.T) {
	var buf bytes.Buffer
	records := sample()
	require.NoError(t, New(&buf, 30).Render(records, stats.Summarize(records), 2024, false))
	assert.NotContains(t, buf.String(), "present")
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "records.json")
	report := &model.Report{Subject: "test", Records: sample()}
	require.NoError(t, WriteJSON(report, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		Records []map[string]any `json:"records"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Records, 2)
	assert.Equal(t, "John Gorton", decoded.Records[0]["name"])
	assert.EqualValues(t, 91, decoded.Records[0]["age_at_death"])
	assert.NotContains(t, decoded.Records[1], "died")
	assert.NotContains(t, decoded.Records[1], "age_at_death")
}
