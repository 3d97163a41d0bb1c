package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ppiankov/foundyear/internal/lookup"
	"github.com/ppiankov/foundyear/internal/model"
)

var lookupJSON bool

// lookupCmd represents the lookup command
var lookupCmd = &cobra.Command{
	Use:   "lookup <company>",
	Short: "Estimate the founding year of a single company",
	Long: `Lookup resolves one company name on Wikipedia and prints its record to
stdout. Nothing is appended to the record file.

Example:
  foundyear lookup "Procter & Gamble"
  foundyear lookup "Siemens" --lang de --json`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)

	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "print the full record as JSON")
}

func runLookup(cmd *cobra.Command, args []string) error {
	name := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	p, err := newPipeline(cfg, logger, nil)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Looking up %q on %s\n", name, lookupTarget(cfg))
	}

	rec := p.Process(ctx, name)

	if lookupJSON {
		return p.Renderer().RenderJSON(cmd.OutOrStdout(), rec)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), p.Line(rec))
	return err
}

// lookupTarget describes where lookups go
func lookupTarget(cfg *model.Config) string {
	return lookup.BaseURL(cfg.Lookup)
}
