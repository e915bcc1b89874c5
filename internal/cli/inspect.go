package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/resumeforge/internal/config"
	"github.com/dgallion1/resumeforge/internal/document"
	"github.com/dgallion1/resumeforge/internal/editor"
	"github.com/dgallion1/resumeforge/internal/parser"
)

// InspectCmd creates the inspect command.
func InspectCmd() *cobra.Command {
	var marker string

	cmd := &cobra.Command{
		Use:   "inspect <resume.docx>",
		Short: "Show which paragraphs replace would edit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], marker)
		},
	}
	cmd.Flags().StringVar(&marker, "marker", "", "Section heading to look for")
	return cmd
}

func runInspect(cmd *cobra.Command, path, marker string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if marker == "" {
		marker = cfg.SectionMarker
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	doc, err := document.Load(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	block, err := editor.Locate(doc, marker)
	if err != nil {
		if msg := editor.UserMessage(err); msg != "" {
			return fmt.Errorf("%w\n%s", err, msg)
		}
		return err
	}

	w := cmd.OutOrStdout()
	if wantJSON(cmd) {
		entry := make([]string, 0, block.Len())
		for i := block.Start; i < block.End; i++ {
			entry = append(entry, doc.At(i).Text())
		}
		return printJSON(w, map[string]any{"block": block, "entry": entry})
	}

	fmt.Fprintf(w, "%4d  H %s\n", block.Header, doc.At(block.Header).Text())
	for i := block.Start; i < block.End; i++ {
		tag := " "
		if i == block.Title {
			tag = "T"
		}
		fmt.Fprintf(w, "%4d  %s %s\n", i, tag, doc.At(i).Text())
	}
	return nil
}

// TextCmd creates the text command.
func TextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "text <file>",
		Short: "Print the plain text of a resume (.docx, .pdf, .txt, .md, .html)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
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
			if wantJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), map[string]string{"text": text})
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
