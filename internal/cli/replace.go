package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/resumeforge/internal/bullets"
	"github.com/dgallion1/resumeforge/internal/config"
	"github.com/dgallion1/resumeforge/internal/document"
	"github.com/dgallion1/resumeforge/internal/editor"
	"github.com/dgallion1/resumeforge/internal/llm"
)

type replaceOptions struct {
	title       string
	bullets     []string
	generate    bool
	description string
	githubURL   string
	output      string
	marker      string
}

// ReplaceCmd creates the replace command.
func ReplaceCmd() *cobra.Command {
	var opts replaceOptions

	cmd := &cobra.Command{
		Use:   "replace <resume.docx>",
		Short: "Replace the first project with a new title and bullets",
		Long: `Replaces the title and bullets of the first entry under PROJECT EXPERIENCE.

Bullets come from repeated --bullet flags, or from OpenAI with --generate.
Without either, the entry is replaced by the title alone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplace(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "New project title (required)")
	cmd.Flags().StringArrayVarP(&opts.bullets, "bullet", "b", nil, "Bullet text, repeatable")
	cmd.Flags().BoolVar(&opts.generate, "generate", false, "Generate bullets with OpenAI")
	cmd.Flags().StringVar(&opts.description, "description", "", "Project description for --generate")
	cmd.Flags().StringVar(&opts.githubURL, "github-url", "", "Repository URL for --generate")
	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "Output path (default: <name>_tailored.docx)")
	cmd.Flags().StringVar(&opts.marker, "marker", "", "Section heading to look for")
	_ = cmd.MarkFlagRequired("title")
	cmd.MarkFlagsMutuallyExclusive("bullet", "generate")

	return cmd
}

func runReplace(cmd *cobra.Command, path string, opts replaceOptions) error {
	log := logger(cmd)
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	marker := opts.marker
	if marker == "" {
		marker = cfg.SectionMarker
	}

	lines := opts.bullets
	var gen bullets.Result
	if opts.generate {
		if err := cfg.RequireOpenAI(); err != nil {
			return err
		}
		client := llm.NewOpenAI(llm.OpenAIConfig{
			APIKey:      cfg.OpenAIAPIKey,
			Model:       cfg.OpenAIModel,
			Temperature: cfg.OpenAITemperature,
			BaseURL:     cfg.OpenAIBaseURL,
		})
		gen, err = bullets.NewGenerator(client, cfg.Bullets(), log).Generate(cmd.Context(), bullets.Request{
			Subject:     opts.title,
			Description: opts.description,
			GitHubURL:   opts.githubURL,
		})
		if err != nil {
			return err
		}
		lines = gen.Bullets
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	doc, err := document.Load(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	block, err := editor.ReplaceFirstProject(doc, opts.title, lines, editor.WithMarker(marker))
	if err != nil {
		if msg := editor.UserMessage(err); msg != "" {
			return fmt.Errorf("%w\n%s", err, msg)
		}
		return err
	}
	out, err := doc.Bytes()
	if err != nil {
		return err
	}

	dest := opts.output
	if dest == "" {
		dest = strings.TrimSuffix(path, filepath.Ext(path)) + "_tailored.docx"
	}
	if err := os.WriteFile(dest, out, 0o644); err != nil {
		return err
	}
	log.Info("first project replaced", "start", block.Start, "end", block.End, "out", dest)

	w := cmd.OutOrStdout()
	if wantJSON(cmd) {
		return printJSON(w, map[string]any{
			"output":                 dest,
			"replaced_block":         block,
			"bullets":                lines,
			"assumptions":            gen.Assumptions,
			"missing_info_questions": gen.MissingInfoQuestions,
		})
	}
	fmt.Fprintf(w, "Wrote %s (replaced paragraphs %d-%d)\n", dest, block.Start, block.End-1)
	for _, b := range lines {
		if b = strings.TrimSpace(b); b != "" {
			fmt.Fprintf(w, "%s%s\n", editor.BulletGlyph, b)
		}
	}
	for _, q := range gen.MissingInfoQuestions {
		fmt.Fprintf(w, "? %s\n", q)
	}
	return nil
}
