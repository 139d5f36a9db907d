// Package narrate produces an optional prose paragraph about a record set.
// The paragraph is decoration: records and statistics are computed before it
// and are never changed by it.
package narrate

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/lifelines/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Narrate sends the prompt and returns the model's reply
	Narrate(ctx context.Context, req Request) (*Response, error)

	// IsAvailable checks if the provider is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// Request is the input to a provider
type Request struct {
	Prompt    string
	Model     string
	MaxTokens int
}

// Response is a provider's reply
type Response struct {
	Text       string
	Model      string
	TokensUsed int
}

// Config holds provider configuration
type Config struct {
	Provider      string // "openai", "ollama" or "" (disabled)
	Model         string
	APIKey        string
	BaseURL       string
	Timeout       int // seconds
	StrictFigures bool
	MaxTokens     int
	HTTPProxy     string
	HTTPSProxy    string
}

// ConfigFromModel converts the application config
func ConfigFromModel(cfg *model.Config) Config {
	return Config{
		Provider:      cfg.LLM.Provider,
		Model:         cfg.LLM.Model,
		APIKey:        cfg.LLM.APIKey,
		BaseURL:       cfg.LLM.BaseURL,
		Timeout:       cfg.LLM.Timeout,
		StrictFigures: cfg.LLM.StrictFigures,
		MaxTokens:     cfg.LLM.MaxTokens,
		HTTPProxy:     cfg.HTTP.HTTPProxy,
		HTTPSProxy:    cfg.HTTP.HTTPSProxy,
	}
}

// maxPromptRecords bounds the record listing sent to the model
const maxPromptRecords = 80

// BuildPrompt lists the records and summary and restricts the model to them
func BuildPrompt(subject string, records []model.PersonRecord, summary model.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are writing a short paragraph about the lifespans of the people in %q.\n\n", subject)
	b.WriteString(`RULES:
1. Use ONLY the names and years listed below. Do not add dates, ages or people from memory.
2. Do not mention any year that is not in the list.
3. Living people have no death year; do not guess one.
4. Describe patterns (longest and shortest lives, who is still living), not politics.

Records (name, born, died, age at death):
`)

	for i, rec := range records {
		if i >= maxPromptRecords {
			fmt.Fprintf(&b, "... and %d more\n", len(records)-maxPromptRecords)
			break
		}
		if rec.Alive() {
			fmt.Fprintf(&b, "- %s, %d, living\n", rec.Name, rec.Born)
			continue
		}
		fmt.Fprintf(&b, "- %s, %d, %d, %d\n", rec.Name, rec.Born, *rec.Died, *rec.AgeAtDeath)
	}

	fmt.Fprintf(&b, "\nSummary: %d people, %d living, %d deceased.\n", summary.Total, summary.Living, summary.Deceased)
	if summary.MeanAgeAtDeath != nil {
		fmt.Fprintf(&b, "Mean age at death: %.1f.\n", *summary.MeanAgeAtDeath)
	}

	b.WriteString("\nWrite 3-4 sentences.")
	return b.String()
}
