package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/askhub/internal/config"
	"github.com/deppfellow/askhub/internal/database"
	"github.com/deppfellow/askhub/internal/handler"
	"github.com/deppfellow/askhub/internal/lib/utils"
	"github.com/deppfellow/askhub/internal/logger"
	"github.com/deppfellow/askhub/internal/middleware"
	"github.com/deppfellow/askhub/internal/repository"
	"github.com/deppfellow/askhub/internal/router"
	"github.com/deppfellow/askhub/internal/server"
	"github.com/deppfellow/askhub/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const DefaultContextTimeout = 30 * time.Second

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "askhub",
		Short:        "Help-request marketplace API",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd(), migrateCmd(), purgeProfileCmd())
	return root
}

// app is the shared bootstrap for every command.
type app struct {
	cfg           *config.Config
	log           zerolog.Logger
	loggerService *logger.LoggerService
}

func bootstrap() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	return &app{
		cfg:           cfg,
		log:           logger.NewLoggerWithService(cfg.Observability, loggerService),
		loggerService: loggerService,
	}, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run migrations, the notification worker and the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := bootstrap()
			if err != nil {
				return err
			}
			defer rt.loggerService.Shutdown()
			return serve(cmd.Context(), rt)
		},
	}
}

func serve(ctx context.Context, rt *app) error {
	log := rt.log

	if rt.cfg.Primary.Env != "local" {
		if err := database.Migrate(ctx, &log, rt.cfg.Database.DSN()); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	srv, err := server.New(rt.cfg, &log, rt.loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories()
	services, err := service.NewServices(srv, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create services")
	}
	log.Info().Str("auth_provider", services.Auth.Provider()).Msg("services ready")

	if err := srv.StartJobs(services.Message); err != nil {
		log.Fatal().Err(err).Msg("failed to start notification worker")
	}

	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(handlers, middleware.NewMiddlewares(srv))
	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
	return nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := bootstrap()
			if err != nil {
				return err
			}
			defer rt.loggerService.Shutdown()
			return database.Migrate(cmd.Context(), &rt.log, rt.cfg.Database.DSN())
		},
	}
}

func purgeProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge-profile <user-id>",
		Short: "Delete a profile and everything that cascades from it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap()
			if err != nil {
				return err
			}
			defer rt.loggerService.Shutdown()

			srv, err := server.New(rt.cfg, &rt.log, rt.loggerService)
			if err != nil {
				return err
			}
			defer srv.Close()

			services, err := service.NewServices(srv, repository.NewRepositories())
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), DefaultContextTimeout)
			defer cancel()

			deleted, err := services.Profile.Purge(ctx, args[0])
			if err != nil {
				return err
			}
			return utils.PrintJSON(cmd.OutOrStdout(), map[string]any{
				"id":      args[0],
				"deleted": deleted,
			})
		},
	}
}
