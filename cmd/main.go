package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/buildcare-backend/internal/app"
	"github.com/yungbote/buildcare-backend/internal/seed"
	"github.com/yungbote/buildcare-backend/internal/services"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "buildcare",
		Short:         "BuildCare residential management backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	var envFile string
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load before reading the environment")

	rootCmd.AddCommand(
		serveCmd(&envFile),
		migrateCmd(&envFile),
		seedCmd(&envFile),
		tokenCmd(&envFile),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(envFile string) (app.Config, error) {
	if envFile != "" {
		return app.LoadConfig(envFile)
	}
	return app.LoadConfig()
}

func serveCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*envFile)
			if err != nil {
				return err
			}
			log, err := app.NewLogger(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, log, cfg)
			if err != nil {
				log.Sync()
				return err
			}
			defer a.Close()
			return a.Run(ctx)
		},
	}
}

func migrateCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update every table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*envFile)
			if err != nil {
				return err
			}
			log, err := app.NewLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()
			store, err := app.OpenDB(log, cfg)
			if err != nil {
				return err
			}
			defer store.Close()
			log.Info("Migration complete")
			return nil
		},
	}
}

func seedCmd(envFile *string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load apartments, coupons and admins from a YAML file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*envFile)
			if err != nil {
				return err
			}
			log, err := app.NewLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()

			f, err := seed.Load(file)
			if err != nil {
				return err
			}
			store, err := app.OpenDB(log, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			rep, err := seed.NewSeeder(store.DB(), log).Apply(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "apartments=%d coupons=%d admins=%d\n", rep.Apartments, rep.Coupons, rep.Admins)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", os.Getenv("SEED_FILE"), "seed YAML file (embedded defaults when empty)")
	return cmd
}

func tokenCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "token <email>",
		Short: "Mint a bearer token for an identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*envFile)
			if err != nil {
				return err
			}
			log, err := app.NewLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()

			auth := services.NewAuthService(log, nil, cfg.JWTSecretKey, cfg.AccessTokenTTL)
			token, err := auth.MintToken(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}
