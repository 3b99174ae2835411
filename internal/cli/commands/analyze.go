package commands

import (
	"fmt"
	"strings"

	"github.com/docfinder/docfinder/internal/symptom"
	"github.com/spf13/cobra"
)

// AnalyzeOptions holds options for the analyze command.
type AnalyzeOptions struct {
	Region  string
	NoModel bool
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <symptoms>",
		Short: "Suggest a medical specialization for symptoms",
		Long: `Map a free-text symptom description to the specialization that should
treat it.

Known phrases such as "chest pain" or "skin rash" are matched directly.
Anything else is sent to a Gemini model when an API key is configured
(symptom.api_key, GEMINI_API_KEY or GOOGLE_API_KEY, .env files are read).
Without a key, or when the model fails, "General Physician" is suggested.`,
		Example: `  docfinder analyze "sharp chest pain when climbing stairs"
  docfinder analyze --no-model "persistent cough"
  docfinder analyze --region Dhaka -o json "itchy eyes"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Region, "region", "", "Patient location given to the model (default from symptom.region)")
	cmd.Flags().BoolVar(&opts.NoModel, "no-model", false, "Only use the phrase table")

	return cmd
}

func runAnalyze(cmd *cobra.Command, symptoms string, opts *AnalyzeOptions) error {
	cc := NewCommandContext(cmd)
	ctx := cmd.Context()

	region := opts.Region
	if region == "" {
		region = cc.Cfg.Symptom.Region
	}

	analyzerOpts := []symptom.Option{symptom.WithLogger(cc.Logger)}
	if !opts.NoModel && cc.Cfg.Symptom.APIKey != "" {
		fallback, err := symptom.NewGeminiFallback(ctx, symptom.GeminiConfig{
			APIKey:      cc.Cfg.Symptom.APIKey,
			Model:       cc.Cfg.Symptom.Model,
			Temperature: float32(cc.Cfg.Symptom.Temperature),
			MaxTokens:   int32(cc.Cfg.Symptom.MaxTokens), //nolint:gosec // G115: small configured value
		})
		if err != nil {
			cc.Logger.Warn("model fallback unavailable", "error", err)
		} else {
			analyzerOpts = append(analyzerOpts, symptom.WithFallback(fallback))
		}
	}

	result, err := symptom.NewAnalyzer(analyzerOpts...).Analyze(ctx, symptoms, region)
	if err != nil {
		return err
	}

	if cc.JSON() {
		return renderJSON(cc.Out, result)
	}
	_, _ = fmt.Fprintf(cc.Out, "Recommended specialization: %s\n", result.Specialization)
	if result.Phrase != "" {
		_, _ = fmt.Fprintf(cc.Out, "Matched: %q\n", result.Phrase)
	} else {
		_, _ = fmt.Fprintf(cc.Out, "Source: %s\n", result.Source)
	}
	return nil
}
