package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/teller/internal/config"
)

// configFile is the config file name inside a terminal directory.
const configFile = "teller.yaml"

func newInitCommand() *cobra.Command {
	var terminalID string
	var cash string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a terminal directory with a demo configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			reserve, err := decimal.NewFromString(cash)
			if err != nil {
				return fmt.Errorf("parsing --cash %q: %w", cash, err)
			}

			return runInit(cmd.OutOrStdout(), absDir, terminalID, reserve)
		},
	}

	cmd.Flags().StringVar(&terminalID, "terminal-id", "", "terminal identifier (required)")
	_ = cmd.MarkFlagRequired("terminal-id")
	cmd.Flags().StringVar(&cash, "cash", "1000", "initial cash reserve")

	return cmd
}

func runInit(out io.Writer, dir, terminalID string, cash decimal.Decimal) error {
	if err := os.MkdirAll(filepath.Join(dir, "logs"), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	path := filepath.Join(dir, configFile)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	cfg := config.Default(terminalID, cash)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}

	fmt.Fprintf(out, "Initialized terminal %s at %s\n", terminalID, dir)
	for _, c := range cfg.Cards {
		status := ""
		if c.Blocked {
			status = " (blocked)"
		}
		fmt.Fprintf(out, "  card %s pin %04d%s\n", c.Number, c.PIN, status)
	}
	return nil
}
