// Package symptom maps free-text symptom descriptions to a medical
// specialization. A fixed phrase table is consulted first; unmatched text
// is handed to an optional model fallback.
package symptom

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/docfinder/docfinder/pkg/core"
)

// DefaultRegion is the patient location assumed when none is given.
const DefaultRegion = "Bangladesh"

// ErrEmptySymptoms is returned for blank symptom text.
var ErrEmptySymptoms = errors.New("symptoms must not be empty")

// Fallback suggests a specialization for text no rule matched.
type Fallback interface {
	Suggest(ctx context.Context, symptoms, region string) (string, error)
}

// Source says how a specialization was chosen.
type Source string

// Specialization sources.
const (
	SourceRule     Source = "rule"
	SourceModel    Source = "model"
	SourceFallback Source = "default"
)

// Result is the outcome of one analysis.
type Result struct {
	Specialization string `json:"specialization"`
	Source         Source `json:"source"`
	Phrase         string `json:"phrase,omitempty"`
}

// Analyzer maps symptoms to specializations.
type Analyzer struct {
	rules    []Rule
	fallback Fallback
	logger   *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithFallback sets the model fallback used when no rule matches.
func WithFallback(f Fallback) Option {
	return func(a *Analyzer) { a.fallback = f }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithRules replaces the default rule table.
func WithRules(rules []Rule) Option {
	return func(a *Analyzer) { a.rules = rules }
}

// NewAnalyzer creates an analyzer with the default rule table.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		rules:  Rules,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze returns the specialization for symptoms. Fallback errors are
// logged and resolve to the general physician default.
func (a *Analyzer) Analyze(ctx context.Context, symptoms, region string) (*Result, error) {
	if strings.TrimSpace(symptoms) == "" {
		return nil, ErrEmptySymptoms
	}
	if region == "" {
		region = DefaultRegion
	}

	lower := strings.ToLower(symptoms)
	for _, r := range a.rules {
		if strings.Contains(lower, r.Phrase) {
			return &Result{Specialization: r.Specialization, Source: SourceRule, Phrase: r.Phrase}, nil
		}
	}

	if a.fallback == nil {
		return &Result{Specialization: core.DefaultSpecialization, Source: SourceFallback}, nil
	}

	suggestion, err := a.fallback.Suggest(ctx, symptoms, region)
	if err != nil {
		a.logger.Warn("model analysis failed", "error", err)
		return &Result{Specialization: core.DefaultSpecialization, Source: SourceFallback}, nil
	}
	name := CleanSuggestion(suggestion)
	if name == "" {
		a.logger.Warn("model returned no specialization")
		return &Result{Specialization: core.DefaultSpecialization, Source: SourceFallback}, nil
	}
	return &Result{Specialization: name, Source: SourceModel}, nil
}

// CleanSuggestion keeps the first sentence and first line of a model reply.
func CleanSuggestion(s string) string {
	s = strings.TrimSpace(s)
	s, _, _ = strings.Cut(s, ".")
	s, _, _ = strings.Cut(s, "\n")
	return strings.TrimSpace(s)
}
