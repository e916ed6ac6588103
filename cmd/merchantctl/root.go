package main

import (
	"context"
	"io"
	"time"

	"github.com/DRSN-tech/grocery-merchant/internal/app"
	config "github.com/DRSN-tech/grocery-merchant/internal/cfg"
	"github.com/DRSN-tech/grocery-merchant/pkg/logger"
	"github.com/spf13/cobra"
)

const closeTimeout = 15 * time.Second

type rootOptions struct {
	envFile    string
	ordersFile string
	catalog    string
	logLevel   string
	session    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "merchantctl",
		Short: "Grocery merchant command line tool",
		Long: `merchantctl works with the same catalog and order file as the merchant server:
search products, filter the catalog, place orders and read back the last order.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.envFile, "env", ".env", "path to .env file")
	cmd.PersistentFlags().StringVar(&opts.ordersFile, "orders-file", "", "order store file (overrides ORDERS_FILE)")
	cmd.PersistentFlags().StringVar(&opts.catalog, "catalog", "", "catalog file, json or yaml (overrides CATALOG_PATH)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&opts.session, "session", "cli", "session id for preferences")

	cmd.AddCommand(
		newSearchCmd(opts),
		newFilterCmd(opts),
		newOrderCmd(opts),
		newLastCmd(opts),
		newOrdersCmd(opts),
		newCacheCmd(opts),
	)

	return cmd
}

// withServices собирает ядро магазина, выполняет fn и освобождает ресурсы.
func (o *rootOptions) withServices(cmd *cobra.Command, fn func(ctx context.Context, s *app.Services) error) error {
	log := logger.New(logger.Options{Level: o.logLevel, Output: cmd.ErrOrStderr()})

	if err := config.LoadDotEnv(o.envFile); err != nil {
		return err
	}

	cfg, err := config.Load(log)
	if err != nil {
		return err
	}

	if o.ordersFile != "" {
		cfg.App.OrdersFile = o.ordersFile
	}
	if o.catalog != "" {
		cfg.App.CatalogPath = o.catalog
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	services, err := app.NewServices(ctx, cfg, log)
	if err != nil {
		return err
	}

	runErr := fn(ctx, services)

	closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := services.Close(closeCtx); err != nil {
		log.Warnf("Resource cleanup error: %v", err)
	}

	return runErr
}

func writeLine(w io.Writer, s string) error {
	if len(s) > 0 && s[len(s)-1] == '\n' {
		_, err := io.WriteString(w, s)
		return err
	}
	_, err := io.WriteString(w, s+"\n")
	return err
}
