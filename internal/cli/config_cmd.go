package cli

import (
	"fmt"

	"github.com/hidrocoding/cotizador/internal/cli/formatter"
	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/hidrocoding/cotizador/internal/money"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Company details and defaults for new quotations",
	}

	cmd.AddCommand(
		newConfigShowCmd(app),
		newConfigSetCmd(app),
	)

	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the company configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Get(cmd.Context(), app.Owner)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatConfig(cfg))
			return nil
		},
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	var (
		c              domain.CompanyConfig
		taxRate        string
		paymentMethods []string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change company details, tax and quotation defaults",
		Example: `  cotizador config set --name "Hidro_coding" --tax-rate 16 --apply-tax
  cotizador config set --payment-method "Transferencia Bancaria" --payment-method Efectivo`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := app.Config.Get(ctx, app.Owner)
			if err != nil {
				return err
			}
			cfg.OwnerID = app.Owner

			changed := cmd.Flags().Changed
			str := func(flag string, dst *string, v string) {
				if changed(flag) {
					*dst = v
				}
			}
			str("name", &cfg.Name, c.Name)
			str("email", &cfg.Email, c.Email)
			str("phone", &cfg.Phone, c.Phone)
			str("address", &cfg.Address, c.Address)
			str("website", &cfg.Website, c.Website)
			str("logo-url", &cfg.LogoURL, c.LogoURL)
			str("issuer-name", &cfg.Issuer.Name, c.Issuer.Name)
			str("issuer-title", &cfg.Issuer.Title, c.Issuer.Title)
			str("issuer-email", &cfg.Issuer.Email, c.Issuer.Email)
			str("issuer-phone", &cfg.Issuer.Phone, c.Issuer.Phone)
			str("delivery-time", &cfg.DefaultTerms.DeliveryTime, c.DefaultTerms.DeliveryTime)
			str("payment-terms", &cfg.DefaultTerms.PaymentTerms, c.DefaultTerms.PaymentTerms)
			str("includes", &cfg.DefaultTerms.Includes, c.DefaultTerms.Includes)
			str("excludes", &cfg.DefaultTerms.Excludes, c.DefaultTerms.Excludes)
			str("validity", &cfg.DefaultTerms.Validity, c.DefaultTerms.Validity)
			str("warranty", &cfg.DefaultTerms.Warranty, c.DefaultTerms.Warranty)

			if changed("tax-rate") {
				if cfg.Tax.RatePercent, err = money.ParsePercent(taxRate); err != nil {
					return fmt.Errorf("invalid --tax-rate: %w", err)
				}
			}
			if changed("apply-tax") {
				cfg.Tax.Apply = c.Tax.Apply
			}
			if changed("validity-days") {
				cfg.ValidityDays = c.ValidityDays
			}
			if changed("payment-method") {
				cfg.DefaultPaymentMethods = make([]domain.PaymentMethod, len(paymentMethods))
				for i, kind := range paymentMethods {
					cfg.DefaultPaymentMethods[i] = domain.PaymentMethod{Kind: kind}
				}
			}

			if err := app.Config.Save(ctx, &cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration saved.")
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&c.Name, "name", "", "company name")
	f.StringVar(&c.Email, "email", "", "company email")
	f.StringVar(&c.Phone, "phone", "", "company phone")
	f.StringVar(&c.Address, "address", "", "company address")
	f.StringVar(&c.Website, "website", "", "company website")
	f.StringVar(&c.LogoURL, "logo-url", "", "logo URL")
	f.StringVar(&c.Issuer.Name, "issuer-name", "", "name signing quotations")
	f.StringVar(&c.Issuer.Title, "issuer-title", "", "title of the signer")
	f.StringVar(&c.Issuer.Email, "issuer-email", "", "email of the signer")
	f.StringVar(&c.Issuer.Phone, "issuer-phone", "", "phone of the signer")
	f.StringVar(&c.DefaultTerms.DeliveryTime, "delivery-time", "", "default delivery time text")
	f.StringVar(&c.DefaultTerms.PaymentTerms, "payment-terms", "", "default payment terms text")
	f.StringVar(&c.DefaultTerms.Includes, "includes", "", "default included scope text")
	f.StringVar(&c.DefaultTerms.Excludes, "excludes", "", "default excluded scope text")
	f.StringVar(&c.DefaultTerms.Validity, "validity", "", "default validity text")
	f.StringVar(&c.DefaultTerms.Warranty, "warranty", "", "default warranty text")
	f.StringVar(&taxRate, "tax-rate", "", "tax rate percent (0-100)")
	f.BoolVar(&c.Tax.Apply, "apply-tax", false, "add tax to quotation totals")
	f.IntVar(&c.ValidityDays, "validity-days", domain.DefaultValidityDays, "days a new quotation stays valid")
	f.StringArrayVar(&paymentMethods, "payment-method", nil, "default payment method (repeatable, replaces the list)")

	return cmd
}
