package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/freshbreeze-api/pkg/config"
	"github.com/jhoicas/freshbreeze-api/pkg/logger"
)

// version se fija en build con -ldflags "-X main.version=...".
var version = "dev"

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "fbb",
		Short:         "Fresh Breeze Basket API",
		Long:          "Backend multi-empresa de Fresh Breeze Basket: tienda, pedidos, compras, ventas y facturación.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newServeCommand())
	root.AddCommand(newMigrateCommand())
	return root
}

// bootstrap carga configuración y logger, compartido por todos los subcomandos.
func bootstrap() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	return cfg, log, nil
}
