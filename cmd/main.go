package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/contactdesk/internal/app"
)

type rootFlags struct {
	configFile string
	addr       string
	dbDriver   string
	dbPath     string
	dbDSN      string
	logMode    string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	serve := func(cmd *cobra.Command, args []string) error {
		cfg, err := flags.load(cmd)
		if err != nil {
			return err
		}
		a, err := app.New(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return a.Run(ctx)
	}

	root := &cobra.Command{
		Use:           "contactdesk",
		Short:         "Contact collection service with notes, CSV export and an admin view",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve,
	}
	root.PersistentFlags().StringVar(&flags.addr, "addr", "", "HTTP listen address (default :5000)")
	root.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "YAML config file (or set CONFIG_FILE)")
	root.PersistentFlags().StringVar(&flags.dbDriver, "db-driver", "", "Database driver: sqlite or postgres")
	root.PersistentFlags().StringVar(&flags.dbPath, "db-path", "", "SQLite database file")
	root.PersistentFlags().StringVar(&flags.dbDSN, "db-dsn", "", "Postgres DSN")
	root.PersistentFlags().StringVar(&flags.logMode, "log-mode", "", "Log mode: development, production or test")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Migrate the schema and serve HTTP until interrupted",
		RunE:  serve,
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			defer a.Close()
			a.Log.Info("Schema is up to date", "driver", a.Store.Driver())
			return nil
		},
	}

	var out string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write all contacts as CSV to stdout or --out",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			defer a.Close()
			return exportContacts(cmd.Context(), a, cmd.OutOrStdout(), out)
		},
	}
	exportCmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")

	root.AddCommand(serveCmd, migrateCmd, exportCmd)
	return root
}

// load applies explicitly set flags on top of file and environment config.
func (f *rootFlags) load(cmd *cobra.Command) (app.Config, error) {
	cfg, err := app.LoadConfig(f.configFile)
	if err != nil {
		return cfg, err
	}
	set := cmd.Flags().Changed
	if set("addr") {
		cfg.Addr = f.addr
	}
	if set("db-driver") {
		cfg.Database.Driver = f.dbDriver
	}
	if set("db-path") {
		cfg.Database.Path = f.dbPath
	}
	if set("db-dsn") {
		cfg.Database.DSN = f.dbDSN
	}
	if set("log-mode") {
		cfg.LogMode = f.logMode
	}
	return cfg, nil
}

func exportContacts(ctx context.Context, a *app.App, stdout io.Writer, out string) error {
	filename, body, err := a.Services.Contacts.ExportCSV(ctx)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if out == "" {
		_, err = io.WriteString(stdout, body)
		return err
	}
	if err := os.WriteFile(out, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	a.Log.Info("Contacts exported", "file", out, "suggested_name", filename)
	return nil
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
