package narrate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/lifelines/internal/model"
	"github.com/ppiankov/lifelines/internal/stats"
)

type mockProvider struct {
	available bool
	text      string
	err       error
	prompt    string
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) IsAvailable(context.Context) bool { return m.available }

func (m *mockProvider) Narrate(_ context.Context, req Request) (*Response, error) {
	m.prompt = req.Prompt
	if m.err != nil {
		return nil, m.err
	}
	return &Response{Text: m.text, Model: "mock-1"}, nil
}

func records() []model.PersonRecord {
	d := 2002
	return []model.PersonRecord{
		model.NewPersonRecord("John Gorton", 1911, &d),
		model.NewPersonRecord("John Howard", 1939, nil),
	}
}

func TestNarrator_Disabled(t *testing.T) {
	n := NewNarratorWithProvider(nil, Config{}, nil)
	assert.False(t, n.IsEnabled())
	assert.Nil(t, n.Narrate(context.Background(), "x", records(), model.Summary{}))

	var none *Narrator
	assert.False(t, none.IsEnabled())
}

func TestNarrator_Unavailable(t *testing.T) {
	n := NewNarratorWithProvider(&mockProvider{}, Config{StrictFigures: true}, nil)
	out := n.Narrate(context.Background(), "x", records(), model.Summary{})
	require.NotNil(t, out)
	assert.False(t, out.Enabled)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "not available")
}

func TestNarrator_Success(t *testing.T) {
	mock := &mockProvider{available: true, text: "Gorton was born in 1911 and died in 2002; Howard, born 1939, is living."}
	n := NewNarratorWithProvider(mock, Config{StrictFigures: true}, nil)

	recs := records()
	out := n.Narrate(context.Background(), "Prime ministers", recs, stats.Summarize(recs))
	require.NotNil(t, out)
	assert.True(t, out.Enabled)
	assert.Empty(t, out.Warnings)
	assert.Equal(t, "mock", out.Provider)
	assert.Equal(t, "mock-1", out.Model)
	assert.Equal(t, mock.text, out.Text)

	assert.Contains(t, mock.prompt, "John Gorton, 1911, 2002, 91")
	assert.Contains(t, mock.prompt, "John Howard, 1939, living")
}

func TestNarrator_FigureLeakRejected(t *testing.T) {
	mock := &mockProvider{available: true, text: "Gorton became prime minister in 1968."}
	n := NewNarratorWithProvider(mock, Config{StrictFigures: true}, nil)

	out := n.Narrate(context.Background(), "x", records(), model.Summary{})
	require.NotNil(t, out)
	assert.False(t, out.Enabled)
	assert.Empty(t, out.Text)
	require.Len(t, out.Warnings, 1)
	assert.True(t, strings.HasPrefix(out.Warnings[0], "FIGURE LEAK"))
}

func TestNarrator_LooseModeKeepsText(t *testing.T) {
	mock := &mockProvider{available: true, text: "Gorton became prime minister in 1968."}
	n := NewNarratorWithProvider(mock, Config{StrictFigures: false}, nil)

	out := n.Narrate(context.Background(), "x", records(), model.Summary{})
	assert.True(t, out.Enabled)
	assert.Equal(t, mock.text, out.Text)
}

func TestNarrator_ProviderErrorIsWarning(t *testing.T) {
	n := NewNarratorWithProvider(&mockProvider{available: true, err: errors.New("rate limited")}, Config{}, nil)
	out := n.Narrate(context.Background(), "x", records(), model.Summary{})
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "rate limited")
}

func TestCheckFigures(t *testing.T) {
	recs := records()
	assert.NoError(t, CheckFigures("From 1911 to 2002, and 1939.", recs))
	assert.NoError(t, CheckFigures("No years at all, aged 91.", recs))

	err := CheckFigures("In 1968 and 1971 and 1968 again; 19111 is not a year.", recs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[1968 1971]")
}

func TestBuildPrompt_TruncatesLongLists(t *testing.T) {
	var recs []model.PersonRecord
	for i := 0; i < maxPromptRecords+5; i++ {
		recs = append(recs, model.NewPersonRecord("P", 1900, nil))
	}
	prompt := BuildPrompt("x", recs, stats.Summarize(recs))
	assert.Contains(t, prompt, "... and 5 more")
	assert.Contains(t, prompt, "85 people")
}
