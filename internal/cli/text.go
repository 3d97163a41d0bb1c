package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ppiankov/foundyear/internal/pipeline"
)

var (
	textName string
	textJSON bool
)

// textCmd represents the text command
var textCmd = &cobra.Command{
	Use:   "text --name <company> <file|->",
	Short: "Estimate a founding year from local plain text",
	Long: `Text runs the founding-year estimator on a plain-text file (or stdin with
"-") instead of a Wikipedia article. No network access is made.

Example:
  foundyear text --name "Acme Corp" acme.txt
  curl -s https://example.com/about.txt | foundyear text --name "Acme Corp" -`,
	Args: cobra.ExactArgs(1),
	RunE: runText,
}

func init() {
	rootCmd.AddCommand(textCmd)

	textCmd.Flags().StringVar(&textName, "name", "", "company name to look for (required)")
	textCmd.Flags().BoolVar(&textJSON, "json", false, "print the full record as JSON")
	_ = textCmd.MarkFlagRequired("name")
}

func runText(cmd *cobra.Command, args []string) error {
	source := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var data []byte
	if source == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return fmt.Errorf("read text: %w", err)
	}

	estimator, err := newEstimator(cfg)
	if err != nil {
		return err
	}

	title := "stdin"
	if source != "-" {
		title = filepath.Base(source)
	}

	// The lookup stage is skipped entirely
	p := pipeline.NewPipeline(nil, estimator, pipeline.NewRenderer(cfg.Output.LegacyLists), nil)
	rec := p.EstimateText(title, string(data), textName)

	if textJSON {
		return p.Renderer().RenderJSON(cmd.OutOrStdout(), rec)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), p.Line(rec))
	return err
}
