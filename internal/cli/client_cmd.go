package cli

import (
	"fmt"

	"github.com/hidrocoding/cotizador/internal/cli/formatter"
	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/spf13/cobra"
)

func newClientCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage saved clients",
	}

	cmd.AddCommand(
		newClientAddCmd(app),
		newClientListCmd(app),
		newClientSearchCmd(app),
		newClientEditCmd(app),
		newClientRemoveCmd(app),
	)

	return cmd
}

type contactFlags struct {
	name, email, phone, company, address string
}

func (f *contactFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "client name")
	cmd.Flags().StringVar(&f.email, "email", "", "client email")
	cmd.Flags().StringVar(&f.phone, "phone", "", "phone")
	cmd.Flags().StringVar(&f.company, "company", "", "company")
	cmd.Flags().StringVar(&f.address, "address", "", "address")
}

func (f *contactFlags) apply(cmd *cobra.Command, c *domain.Client) {
	if cmd.Flags().Changed("name") {
		c.Name = f.name
	}
	if cmd.Flags().Changed("email") {
		c.Email = f.email
	}
	if cmd.Flags().Changed("phone") {
		c.Phone = f.phone
	}
	if cmd.Flags().Changed("company") {
		c.Company = f.company
	}
	if cmd.Flags().Changed("address") {
		c.Address = f.address
	}
}

func newClientAddCmd(app *App) *cobra.Command {
	var contact contactFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := &domain.Client{OwnerID: app.Owner}
			contact.apply(cmd, c)
			if err := app.Clients.Create(cmd.Context(), c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved client %s <%s> [%s]\n", c.Name, c.Email, c.ID[:8])
			return nil
		},
	}

	contact.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newClientListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			clients, err := app.Clients.List(cmd.Context(), app.Owner)
			if err != nil {
				return err
			}
			return printClients(cmd, clients)
		},
	}
}

func newClientSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search TERM",
		Short: "Find clients by name, email or company",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := ""
			if len(args) == 1 {
				term = args[0]
			}
			clients, err := app.Clients.Search(cmd.Context(), app.Owner, term)
			if err != nil {
				return err
			}
			return printClients(cmd, clients)
		},
	}
}

func printClients(cmd *cobra.Command, clients []*domain.Client) error {
	if len(clients) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No clients found.")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatClientList(clients, now()))
	return nil
}

func newClientEditCmd(app *App) *cobra.Command {
	var contact contactFlags

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Update a saved client",
		Long:  "Update a saved client. Quotations already issued keep the contact details they were saved with.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := resolveClient(ctx, app, args[0])
			if err != nil {
				return err
			}
			contact.apply(cmd, c)
			if err := app.Clients.Update(ctx, c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated client %s <%s>\n", c.Name, c.Email)
			return nil
		},
	}
	contact.register(cmd)

	return cmd
}

func newClientRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete a saved client",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := resolveClient(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Clients.Delete(ctx, c.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed client %s\n", c.Name)
			return nil
		},
	}
}
