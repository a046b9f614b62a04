package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	appRepos "github.com/vdab/fietsen/internal/app/repositories"
	appServices "github.com/vdab/fietsen/internal/app/services"
	"github.com/vdab/fietsen/internal/bootstrap"
	"github.com/vdab/fietsen/internal/pkg/logger"
	"github.com/vdab/fietsen/internal/pkg/metrics"
	"github.com/vdab/fietsen/internal/seed"
	"github.com/vdab/fietsen/internal/server"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "fietsen",
		Short:         "Instructor, campus and responsibility administration API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the YAML configuration file")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Migrate the database and start the HTTP server",
			RunE: func(cmd *cobra.Command, _ []string) error {
				srv, err := server.NewServer(cmd.Context(), configPath)
				if err != nil {
					return fmt.Errorf("failed to initialize server: %w", err)
				}
				if err := srv.Run(cmd.Context()); err != nil {
					return err
				}
				logger.Info().Msg("Application finished gracefully.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply the database migrations",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
				if err != nil {
					return err
				}
				database, err := bootstrap.ConnectDatabase(cfg, lgr)
				if err != nil {
					return err
				}
				defer database.Close()
				return bootstrap.RunMigrations(cmd.Context(), database, lgr)
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Create the default campus and responsibilities",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
				if err != nil {
					return err
				}
				database, err := bootstrap.ConnectDatabase(cfg, lgr)
				if err != nil {
					return err
				}
				defer database.Close()
				return seed.CreateDefaultData(cmd.Context(), appRepos.NewRepositories(database), lgr)
			},
		},
		newRaiseCommand(&configPath),
	)

	return root
}

func newRaiseCommand(configPath *string) *cobra.Command {
	var percentage string

	cmd := &cobra.Command{
		Use:   "raise",
		Short: "Raise every instructor salary by a percentage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pct, err := decimal.NewFromString(percentage)
			if err != nil {
				return fmt.Errorf("invalid percentage %q: %w", percentage, err)
			}

			cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(*configPath)
			if err != nil {
				return err
			}
			database, err := bootstrap.ConnectDatabase(cfg, lgr)
			if err != nil {
				return err
			}
			defer database.Close()

			svc := appServices.NewInstructorService(appRepos.NewRepositories(database), metrics.New())
			updated, err := svc.BulkRaise(cmd.Context(), pct)
			if err != nil {
				return err
			}
			lgr.Info().Int64("updated", updated).Str("percentage", pct.String()).Msg("Salaries raised")
			fmt.Fprintf(cmd.OutOrStdout(), "%d salaries raised by %s%%\n", updated, pct.String())
			return nil
		},
	}
	cmd.Flags().StringVarP(&percentage, "percentage", "p", "", "raise percentage, e.g. 2.5")
	_ = cmd.MarkFlagRequired("percentage")
	return cmd
}
