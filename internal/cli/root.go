// Package cli implements the resumeforge command line tool.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/resumeforge/internal/config"
	"github.com/dgallion1/resumeforge/internal/feedback"
	"github.com/dgallion1/resumeforge/internal/llm"
)

// NewRootCmd builds the resumeforge command tree.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "resumeforge",
		Short: "Replace the first project on a .docx resume and review the result",
		Long: `resumeforge edits the PROJECT EXPERIENCE section of a .docx resume.

Environment variables (optionally prefixed with RESUMEFORGE_, read from .env):
  OPENAI_API_KEY      key for bullet generation (replace --generate)
  ANTHROPIC_API_KEY   key for feedback and models
  SECTION_MARKER      section heading to look for (default: PROJECT EXPERIENCE)`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolP("verbose", "v", false, "Log progress to stderr")
	root.PersistentFlags().Bool("json", false, "Output as JSON")

	root.AddCommand(ReplaceCmd())
	root.AddCommand(InspectCmd())
	root.AddCommand(TextCmd())
	root.AddCommand(FeedbackCmd())
	root.AddCommand(ModelsCmd())
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute(version string) int {
	root := NewRootCmd(version)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func wantJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newReviewer builds a feedback reviewer from the environment.
func newReviewer(cfg config.Config, log *slog.Logger) (*feedback.Reviewer, error) {
	if err := cfg.RequireAnthropic(); err != nil {
		return nil, err
	}
	claude := llm.NewClaude(cfg.AnthropicAPIKey, cfg.AnthropicModel, llm.WithClaudeBaseURL(cfg.AnthropicBaseURL))
	return feedback.NewReviewer(claude, feedback.Options{
		Temperature:    cfg.AnthropicTemperature,
		MaxTokens:      cfg.AnthropicMaxTokens,
		MaxInputTokens: cfg.MaxReviewTokens,
	}, log), nil
}
