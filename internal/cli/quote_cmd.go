package cli

import (
	"fmt"
	"os"
	"slices"

	"github.com/hidrocoding/cotizador/internal/cli/formatter"
	"github.com/hidrocoding/cotizador/internal/document"
	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/hidrocoding/cotizador/internal/money"
	"github.com/hidrocoding/cotizador/internal/service"
	"github.com/spf13/cobra"
)

func newQuoteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "quote",
		Aliases: []string{"q"},
		Short:   "Create, track and share quotations",
	}

	cmd.AddCommand(
		newQuoteNewCmd(app),
		newQuoteListCmd(app),
		newQuoteShowCmd(app),
		newQuoteEditCmd(app),
		newQuoteTransitionCmd(app, "send", domain.StatusSent, "Mark a draft as sent to the client"),
		newQuoteTransitionCmd(app, "approve", domain.StatusApproved, "Record the client's approval"),
		newQuoteTransitionCmd(app, "reject", domain.StatusRejected, "Record the client's rejection"),
		newQuoteDeleteCmd(app),
		newQuoteShareCmd(app),
		newQuotePublicCmd(app),
		newQuoteExportCmd(app),
	)

	return cmd
}

// clientFlags are the contact fields a quotation's client snapshot can be
// set from. Only flags given on the command line are applied.
type clientFlags struct {
	name, email, phone, company, address string
}

func (f *clientFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "client-name", "", "client name")
	cmd.Flags().StringVar(&f.email, "client-email", "", "client email")
	cmd.Flags().StringVar(&f.phone, "client-phone", "", "client phone")
	cmd.Flags().StringVar(&f.company, "client-company", "", "client company")
	cmd.Flags().StringVar(&f.address, "client-address", "", "client address")
}

func (f *clientFlags) apply(cmd *cobra.Command, c *domain.ClientSnapshot) {
	set := func(flag string, dst *string, v string) {
		if cmd.Flags().Changed(flag) {
			*dst = v
		}
	}
	set("client-name", &c.Name, f.name)
	set("client-email", &c.Email, f.email)
	set("client-phone", &c.Phone, f.phone)
	set("client-company", &c.Company, f.company)
	set("client-address", &c.Address, f.address)
}

// setDates moves the issue date keeping the validity span, then applies an
// explicit expiration date.
func setDates(q *domain.Quotation, issue, expires string) error {
	if issue != "" {
		d, err := parseDate("--issue-date", issue)
		if err != nil {
			return err
		}
		span := q.ExpirationDate.Sub(q.IssueDate)
		q.IssueDate = domain.DateOf(d)
		q.ExpirationDate = q.IssueDate.Add(span)
	}
	if expires != "" {
		d, err := parseDate("--expires", expires)
		if err != nil {
			return err
		}
		q.ExpirationDate = domain.DateOf(d)
	}
	return nil
}

func newQuoteNewCmd(app *App) *cobra.Command {
	var (
		clientRef      string
		client         clientFlags
		lines          lineFlag
		services       []string
		discount       string
		notes          string
		issue, expires string
		number         string
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a draft quotation",
		Example: `  cotizador quote new --client-name "Ana Torres" --client-email ana@acme.mx \
    --service web-003 --service con-001=4 --line "Dominio|350|1|hosting"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			q, err := app.Quotations.NewDraft(ctx, app.Owner)
			if err != nil {
				return err
			}

			if clientRef != "" {
				c, err := resolveClient(ctx, app, clientRef)
				if err != nil {
					return err
				}
				q.Client = c.Snapshot()
			}
			client.apply(cmd, &q.Client)

			fromCatalog, err := catalogLines(services)
			if err != nil {
				return err
			}
			q.Lines = append(fromCatalog, lines...)

			if discount != "" {
				if q.DiscountPercent, err = money.ParsePercent(discount); err != nil {
					return fmt.Errorf("invalid --discount: %w", err)
				}
			}
			q.Notes = notes
			q.Number = number
			if err := setDates(q, issue, expires); err != nil {
				return err
			}

			if err := app.Quotations.Create(ctx, q); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created quotation %s for %s (total %s)\n",
				q.Number, q.Client.Name, money.Format(q.Totals.Total, app.Locale))
			return nil
		},
	}

	cmd.Flags().StringVar(&clientRef, "client", "", "saved client ID or email")
	client.register(cmd)
	cmd.Flags().Var(&lines, "line", "ad-hoc line name|price[|qty[|category[|unit[|description]]]] (repeatable)")
	cmd.Flags().StringArrayVar(&services, "service", nil, "catalog service ID[=qty] (repeatable)")
	cmd.Flags().StringVar(&discount, "discount", "", "discount percent (0-100)")
	cmd.Flags().StringVar(&notes, "notes", "", "notes printed on the quotation")
	cmd.Flags().StringVar(&issue, "issue-date", "", "issue date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&expires, "expires", "", "expiration date (YYYY-MM-DD, default issue date plus validity days)")
	cmd.Flags().StringVar(&number, "number", "", "keep an existing number (COT-YYYY-NNN) instead of issuing one")

	return cmd
}

func newQuoteListCmd(app *App) *cobra.Command {
	var filters filterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quotations, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := filters.filter()
			if err != nil {
				return err
			}
			book := service.NewBook(app.Quotations, app.Owner)
			if err := book.Reload(cmd.Context()); err != nil {
				return err
			}

			qs := book.Filter(f)
			if len(qs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No quotations found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatQuotationList(qs, app.Locale, now()))
			return nil
		},
	}
	filters.register(cmd)

	return cmd
}

func newQuoteShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show NUMBER",
		Short: "Print a quotation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := resolveDocument(cmd, app, args[0])
			if err != nil {
				return err
			}
			return formatter.TerminalRenderer{}.Render(cmd.OutOrStdout(), d)
		},
	}
}

func resolveDocument(cmd *cobra.Command, app *App, ref string) (document.Document, error) {
	ctx := cmd.Context()
	q, err := resolveQuotation(ctx, app, ref)
	if err != nil {
		return document.Document{}, err
	}
	cfg, err := app.Config.Get(ctx, app.Owner)
	if err != nil {
		return document.Document{}, err
	}
	return document.Resolve(q, cfg, app.Locale, now()), nil
}

func newQuoteEditCmd(app *App) *cobra.Command {
	var (
		client         clientFlags
		addLines       lineFlag
		addServices    []string
		removeLines    []int
		discount       string
		taxRate        string
		applyTax       bool
		notes          string
		issue, expires string
	)

	cmd := &cobra.Command{
		Use:   "edit NUMBER",
		Short: "Change client, lines, discount, tax, notes or dates",
		Long: `Change a stored quotation. Tax settings are copied from the configuration
when a quotation is created; use --tax-rate and --apply-tax to change them
for this quotation only.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			q, err := resolveQuotation(ctx, app, args[0])
			if err != nil {
				return err
			}

			client.apply(cmd, &q.Client)

			if len(removeLines) > 0 {
				for _, n := range removeLines {
					if n < 1 || n > len(q.Lines) {
						return fmt.Errorf("--remove-line %d: quotation has %d lines", n, len(q.Lines))
					}
				}
				kept := make([]domain.ServiceLine, 0, len(q.Lines))
				for i, l := range q.Lines {
					if !slices.Contains(removeLines, i+1) {
						kept = append(kept, l)
					}
				}
				q.Lines = kept
			}
			fromCatalog, err := catalogLines(addServices)
			if err != nil {
				return err
			}
			q.Lines = append(q.Lines, fromCatalog...)
			q.Lines = append(q.Lines, addLines...)

			if cmd.Flags().Changed("discount") {
				if q.DiscountPercent, err = money.ParsePercent(discount); err != nil {
					return fmt.Errorf("invalid --discount: %w", err)
				}
			}
			if cmd.Flags().Changed("tax-rate") {
				if q.Tax.RatePercent, err = money.ParsePercent(taxRate); err != nil {
					return fmt.Errorf("invalid --tax-rate: %w", err)
				}
			}
			if cmd.Flags().Changed("apply-tax") {
				q.Tax.Apply = applyTax
			}
			if cmd.Flags().Changed("notes") {
				q.Notes = notes
			}
			if err := setDates(q, issue, expires); err != nil {
				return err
			}

			if err := app.Quotations.Update(ctx, q); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated quotation %s (total %s)\n",
				q.Number, money.Format(q.Totals.Total, app.Locale))
			return nil
		},
	}

	client.register(cmd)
	cmd.Flags().Var(&addLines, "add-line", "append line name|price[|qty[|category[|unit[|description]]]] (repeatable)")
	cmd.Flags().StringArrayVar(&addServices, "add-service", nil, "append catalog service ID[=qty] (repeatable)")
	cmd.Flags().IntSliceVar(&removeLines, "remove-line", nil, "remove lines by number, as shown by quote show")
	cmd.Flags().StringVar(&discount, "discount", "", "discount percent (0-100)")
	cmd.Flags().StringVar(&taxRate, "tax-rate", "", "tax rate percent for this quotation")
	cmd.Flags().BoolVar(&applyTax, "apply-tax", false, "add tax to this quotation (--apply-tax=false to remove it)")
	cmd.Flags().StringVar(&notes, "notes", "", "notes printed on the quotation")
	cmd.Flags().StringVar(&issue, "issue-date", "", "issue date (YYYY-MM-DD); expiration moves with it")
	cmd.Flags().StringVar(&expires, "expires", "", "expiration date (YYYY-MM-DD)")

	return cmd
}

func newQuoteTransitionCmd(app *App, use string, to domain.Status, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " NUMBER",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			q, err := resolveQuotation(ctx, app, args[0])
			if err != nil {
				return err
			}
			q, err = app.Quotations.Transition(ctx, q.ID, to)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Quotation %s is now %s\n",
				q.Number, formatter.StatusPill(q.Status))
			return nil
		},
	}
}

func newQuoteDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete NUMBER",
		Aliases: []string{"rm"},
		Short:   "Delete a quotation",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			q, err := resolveQuotation(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Quotations.Delete(ctx, q.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted quotation %s\n", q.Number)
			return nil
		},
	}
}

func newQuoteShareCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "share NUMBER",
		Short: "Get the token that opens a quotation read-only",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			q, err := resolveQuotation(ctx, app, args[0])
			if err != nil {
				return err
			}
			token, err := app.Share.GenerateToken(ctx, q.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatShareLink(q.Number, token))
			return nil
		},
	}
}

func newQuotePublicCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "public TOKEN",
		Short: "Print a shared quotation from its token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.Share.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return formatter.TerminalRenderer{}.Render(cmd.OutOrStdout(), d)
		},
	}
}

func newQuoteExportCmd(app *App) *cobra.Command {
	var (
		output  string
		filters filterFlags
	)

	cmd := &cobra.Command{
		Use:   "export [NUMBER]",
		Short: "Write a quotation, or the filtered list, to an .xlsx workbook",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				d, err := resolveDocument(cmd, app, args[0])
				if err != nil {
					return err
				}
				path := output
				if path == "" {
					path = d.Number + ".xlsx"
				}
				if err := writeFile(path, func(f *os.File) error {
					return document.XLSXRenderer{}.Render(f, d)
				}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
				return nil
			}

			f, err := filters.filter()
			if err != nil {
				return err
			}
			book := service.NewBook(app.Quotations, app.Owner)
			if err := book.Reload(cmd.Context()); err != nil {
				return err
			}
			qs := book.Filter(f)
			path := output
			if path == "" {
				path = "cotizaciones.xlsx"
			}
			if err := writeFile(path, func(w *os.File) error {
				return document.WriteReport(w, qs, app.Locale, now())
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d quotations to %s\n", len(qs), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	filters.register(cmd)

	return cmd
}

// writeFile creates path and removes it again when write fails.
func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
