package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hidrocoding/cotizador/internal/backup"
	"github.com/hidrocoding/cotizador/internal/cli/formatter"
	"github.com/hidrocoding/cotizador/internal/service"
	"github.com/spf13/cobra"
)

func newBackupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore quotations, clients and configuration as JSON",
	}

	cmd.AddCommand(
		newBackupExportCmd(app),
		newBackupImportCmd(app),
	)

	return cmd
}

func newBackupExportCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup (stdout unless --output is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := app.Backup.Export(cmd.Context(), app.Owner)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				return backup.Write(cmd.OutOrStdout(), snap)
			}
			if err := writeFile(output, func(f *os.File) error {
				return backup.Write(f, snap)
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d quotations and %d clients to %s\n",
				len(snap.Quotations), len(snap.Clients), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "backup file")

	return cmd
}

func newBackupImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Restore a backup; each section is applied on its own",
		Long: `Restore a backup. Records are matched by ID, so importing the same file
twice changes nothing. Clients, configuration and quotations are imported
independently: a broken section is reported and skipped without undoing the
others. Use - to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				sections *backup.Sections
				err      error
			)
			if args[0] == "-" {
				sections, err = backup.Read(cmd.InOrStdin())
			} else {
				sections, err = backup.LoadFile(args[0])
			}
			if err != nil {
				return err
			}

			res, err := app.Backup.Import(cmd.Context(), app.Owner, sections)
			if err != nil {
				return err
			}
			printImportResult(cmd.OutOrStdout(), res)
			if res.Failed() {
				return errors.New("backup import finished with errors")
			}
			return nil
		},
	}
}

func printImportResult(w io.Writer, res *service.ImportResult) {
	rows := [][]string{
		sectionRow("Clientes", res.Clients),
		sectionRow("Configuración", res.Configuration),
		sectionRow("Cotizaciones", res.Quotations),
	}
	fmt.Fprintln(w, formatter.RenderTable([]string{"Sección", "Importados", "Resultado"}, rows, 1))
}

func sectionRow(name string, r service.SectionResult) []string {
	switch {
	case !r.Present:
		return []string{name, "-", formatter.Dim("ausente")}
	case r.Err != nil:
		return []string{name, "0", formatter.StyleRed.Render(r.Err.Error())}
	default:
		return []string{name, fmt.Sprint(r.Imported), formatter.StyleGreen.Render("ok")}
	}
}
