package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/resumeforge/internal/config"
	"github.com/dgallion1/resumeforge/internal/feedback"
	"github.com/dgallion1/resumeforge/internal/parser"
)

// FeedbackCmd creates the feedback command.
func FeedbackCmd() *cobra.Command {
	var (
		model string
		html  bool
	)

	cmd := &cobra.Command{
		Use:   "feedback <file>",
		Short: "Ask Claude for feedback on a resume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger(cmd)
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			reviewer, err := newReviewer(cfg, log)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			text, err := parser.Extract(f, args[0], parser.WithPdftotext(cfg.PDFFallbackPdftotext))
			if err != nil {
				return err
			}
			if strings.TrimSpace(text) == "" {
				return errors.New("no text found in " + args[0])
			}

			if model == "" {
				model = reviewer.DefaultModel()
			}
			md, err := reviewer.Review(cmd.Context(), text, model)
			if err != nil {
				return err
			}

			out := md
			if html {
				if out, err = feedback.RenderHTML(md); err != nil {
					return err
				}
			}
			if wantJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), map[string]string{"model": model, "feedback": out})
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "Claude model (default: ANTHROPIC_MODEL)")
	cmd.Flags().BoolVar(&html, "html", false, "Render the feedback as HTML")
	return cmd
}

// ModelsCmd creates the models command.
func ModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List Claude models available for feedback",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			reviewer, err := newReviewer(cfg, logger(cmd))
			if err != nil {
				return err
			}
			models := reviewer.ModelsOrDefault(cmd.Context())
			if wantJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), map[string]any{"models": models, "default": reviewer.DefaultModel()})
			}
			for _, m := range models {
				mark := " "
				if m == reviewer.DefaultModel() {
					mark = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, m)
			}
			return nil
		},
	}
}
