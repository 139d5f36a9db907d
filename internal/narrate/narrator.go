package narrate

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/ppiankov/lifelines/internal/model"
)

var yearPattern = regexp.MustCompile(`\b\d{4}\b`)

// Narrator wraps a provider and enforces the figure check
type Narrator struct {
	provider Provider
	config   Config
	logger   *zap.Logger
}

// NewNarrator builds a narrator from config. The returned narrator is
// disabled when no provider is configured.
func NewNarrator(config Config, logger *zap.Logger) (*Narrator, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return NewNarratorWithProvider(provider, config, logger), nil
}

// NewNarratorWithProvider uses an existing provider; nil disables narration
func NewNarratorWithProvider(provider Provider, config Config, logger *zap.Logger) *Narrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Narrator{provider: provider, config: config, logger: logger}
}

// IsEnabled reports whether a provider is configured
func (n *Narrator) IsEnabled() bool {
	return n != nil && n.provider != nil
}

// Narrate asks the provider for a paragraph. Failures are returned as
// warnings on the narrative, never as an error. Returns nil when disabled.
func (n *Narrator) Narrate(ctx context.Context, subject string, records []model.PersonRecord, summary model.Summary) *model.Narrative {
	if !n.IsEnabled() {
		return nil
	}

	out := &model.Narrative{
		Provider:      n.provider.Name(),
		Model:         n.config.Model,
		StrictFigures: n.config.StrictFigures,
	}

	if !n.provider.IsAvailable(ctx) {
		out.Warnings = append(out.Warnings, fmt.Sprintf("LLM provider %s is not available", n.provider.Name()))
		return out
	}

	resp, err := n.provider.Narrate(ctx, Request{
		Prompt:    BuildPrompt(subject, records, summary),
		Model:     n.config.Model,
		MaxTokens: n.config.MaxTokens,
	})
	if err != nil {
		n.logger.Warn("narrative failed", zap.String("provider", n.provider.Name()), zap.Error(err))
		out.Warnings = append(out.Warnings, fmt.Sprintf("narrative generation failed: %v", err))
		return out
	}
	out.Model = resp.Model

	if n.config.StrictFigures {
		if err := CheckFigures(resp.Text, records); err != nil {
			n.logger.Warn("narrative rejected", zap.Error(err))
			out.Warnings = append(out.Warnings, err.Error())
			return out
		}
	}

	out.Enabled = true
	out.Text = resp.Text
	n.logger.Debug("narrative generated", zap.Int("tokens", resp.TokensUsed))
	return out
}

// CheckFigures rejects text mentioning a four-digit year that is not a
// birth or death year of some record
func CheckFigures(text string, records []model.PersonRecord) error {
	known := make(map[int]bool, 2*len(records))
	for _, rec := range records {
		known[rec.Born] = true
		if rec.Died != nil {
			known[*rec.Died] = true
		}
	}

	leaked := map[int]bool{}
	for _, m := range yearPattern.FindAllString(text, -1) {
		year, _ := strconv.Atoi(m)
		if !known[year] {
			leaked[year] = true
		}
	}
	if len(leaked) == 0 {
		return nil
	}

	years := make([]int, 0, len(leaked))
	for y := range leaked {
		years = append(years, y)
	}
	sort.Ints(years)
	return fmt.Errorf("FIGURE LEAK: narrative mentions years not in the records: %v", years)
}
