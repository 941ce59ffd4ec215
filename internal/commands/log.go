package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/teller/internal/txlog"
)

func newLogCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the terminal log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(cmd.OutOrStdout(), dir)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "terminal directory")
	return cmd
}

func runLog(out io.Writer, dir string) error {
	entries, err := txlog.Read(dir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "no events")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		amount := ""
		if !e.Amount.IsZero() {
			amount = e.Amount.StringFixed(2)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Action, amount, e.Details)
	}
	return tw.Flush()
}
