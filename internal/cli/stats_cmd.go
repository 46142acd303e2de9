package cli

import (
	"fmt"

	"github.com/hidrocoding/cotizador/internal/cli/formatter"
	"github.com/hidrocoding/cotizador/internal/report"
	"github.com/hidrocoding/cotizador/internal/service"
	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	var filters filterFlags

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Counts per status and amounts, overall and per month",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := filters.filter()
			if err != nil {
				return err
			}
			book := service.NewBook(app.Quotations, app.Owner)
			if err := book.Reload(cmd.Context()); err != nil {
				return err
			}

			st, months := book.Stats(), book.Monthly()
			if !f.IsZero() {
				qs := book.Filter(f)
				st, months = report.Summarize(qs, now()), report.Group(qs, now())
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStats(st, months, app.Locale))
			return nil
		},
	}
	filters.register(cmd)

	return cmd
}
