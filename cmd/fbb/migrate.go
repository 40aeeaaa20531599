package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jhoicas/freshbreeze-api/internal/infrastructure/postgres"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica o revierte las migraciones de la base de datos",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Aplica todas las migraciones pendientes",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(cmd *cobra.Command, m *postgres.Migrator, _ []string) error {
				return m.Up()
			}),
		},
		&cobra.Command{
			Use:   "down [steps]",
			Short: "Revierte migraciones (todas si no se indica steps)",
			Args:  cobra.MaximumNArgs(1),
			RunE: withMigrator(func(cmd *cobra.Command, m *postgres.Migrator, args []string) error {
				steps := 0
				if len(args) == 1 {
					n, err := strconv.Atoi(args[0])
					if err != nil || n < 1 {
						return fmt.Errorf("steps inválido: %q", args[0])
					}
					steps = n
				}
				return m.Down(steps)
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Muestra la versión aplicada",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(cmd *cobra.Command, m *postgres.Migrator, _ []string) error {
				v, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "versión %d (dirty=%t)\n", v, dirty)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "force <version>",
			Short: "Fija la versión sin ejecutar SQL",
			Args:  cobra.ExactArgs(1),
			RunE: withMigrator(func(cmd *cobra.Command, m *postgres.Migrator, args []string) error {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("versión inválida: %q", args[0])
				}
				return m.Force(v)
			}),
		},
	)
	return cmd
}

// withMigrator abre el migrador con la configuración actual y lo cierra al terminar.
func withMigrator(fn func(*cobra.Command, *postgres.Migrator, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		m, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log.Component("migrate"))
		if err != nil {
			return err
		}
		defer func() {
			if err := m.Close(); err != nil {
				log.Warn().Err(err).Msg("cerrar migrador")
			}
		}()
		if err := fn(cmd, m, args); err != nil {
			return err
		}
		log.Info().Str("command", cmd.Name()).Msg("migraciones: listo")
		return nil
	}
}
