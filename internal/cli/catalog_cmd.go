package cli

import (
	"fmt"

	"github.com/hidrocoding/cotizador/internal/catalog"
	"github.com/hidrocoding/cotizador/internal/cli/formatter"
	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Built-in services to build quotation lines from",
	}
	cmd.AddCommand(newCatalogListCmd(app))
	return cmd
}

func newCatalogListCmd(app *App) *cobra.Command {
	var category, tag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog services",
		RunE: func(cmd *cobra.Command, args []string) error {
			ts := catalog.All()
			if category != "" {
				c, err := domain.ParseCategory(category)
				if err != nil {
					return err
				}
				ts = catalog.ByCategory(c)
			}
			if tag != "" {
				tagged := ts[:0]
				for _, t := range ts {
					if t.HasTag(tag) {
						tagged = append(tagged, t)
					}
				}
				ts = tagged
			}
			if len(ts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No services found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCatalog(ts, app.Locale))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only this category (e.g. web-dev, hosting)")
	cmd.Flags().StringVar(&tag, "tag", "", "only services with this tag")

	return cmd
}
