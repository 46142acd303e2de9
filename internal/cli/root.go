package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/hidrocoding/cotizador/internal/config"
	"github.com/hidrocoding/cotizador/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// App holds references to all service interfaces used by CLI commands,
// plus the owner and locale every command acts for.
type App struct {
	Quotations service.QuotationService
	Clients    service.ClientService
	Config     service.ConfigService
	Share      service.ShareService
	Backup     service.BackupService

	Owner  string
	Locale string
}

// Bootstrap builds the App once configuration is known, which is only after
// flags have been parsed.
type Bootstrap func(ctx context.Context, cfg *config.Config) (*App, error)

// NewRootCmd creates the top-level "cotizador" command. Persistent flags are
// bound into v so they override the config file and environment.
func NewRootCmd(v *viper.Viper, boot Bootstrap) *cobra.Command {
	app := &App{}
	var cfgFile string

	root := &cobra.Command{
		Use:           "cotizador",
		Short:         "Quotations for a software studio: price, number, track and share",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			built, err := boot(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			*app = *built
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default $HOME/.cotizador/cotizador.yaml)")
	pf.String("driver", "", "database driver: sqlite or pgx")
	pf.String("db", "", "database DSN, or SQLite file path")
	pf.String("owner", "", "owner whose quotations are managed")
	pf.String("locale", "", "locale for amounts and dates (es-MX, en-US, es-ES, es-CO)")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("log-file", "", "also write logs to this file")
	pf.Bool("debug", false, "verbose development logging")

	for key, flag := range map[string]string{
		config.KeyDBDriver: "driver",
		config.KeyDBDSN:    "db",
		config.KeyOwner:    "owner",
		config.KeyLocale:   "locale",
		config.KeyLogLevel: "log-level",
		config.KeyLogFile:  "log-file",
		config.KeyDebug:    "debug",
	} {
		if err := v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flag, err))
		}
	}

	root.AddCommand(
		newQuoteCmd(app),
		newClientCmd(app),
		newConfigCmd(app),
		newCatalogCmd(app),
		newStatsCmd(app),
		newBackupCmd(app),
	)

	return root
}

func now() time.Time {
	return time.Now().UTC()
}
