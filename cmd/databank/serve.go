package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpdbs/research-databank/internal/api"
	"github.com/rpdbs/research-databank/internal/api/handler"
	"github.com/rpdbs/research-databank/internal/core/service"
	redisstore "github.com/rpdbs/research-databank/internal/infrastructure/db/redis"
	"github.com/rpdbs/research-databank/internal/infrastructure/queue"
	"github.com/rpdbs/research-databank/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, log, err := bootstrap(ctx)
		if err != nil {
			return err
		}

		if cfg.JWTSecret == "" {
			cfg.JWTSecret, err = ephemeralSecret()
			if err != nil {
				return err
			}
			log.Warn().Msg("JWT_SECRET not set, using an ephemeral secret; tokens will not survive a restart")
		}

		st, err := openStores(ctx, cfg, log)
		if err != nil {
			return err
		}

		rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			_ = st.close(context.Background())
			return err
		}

		if _, err := service.SeedAccounts(ctx, st.accounts, cfg.SeedAccounts(), logger.Component("seed")); err != nil {
			log.Error().Err(err).Msg("seeding failed")
		}

		dispatcher := queue.NewAuditDispatcher(cfg.Audit.Workers, cfg.Audit.Buffer, st.audit, logger.Component("audit"))
		dispatcher.Start()

		e := api.NewRouter(api.Dependencies{
			Auth: service.NewAuthService(st.accounts, redisstore.NewSessionStore(rdb), service.AuthConfig{
				JWTSecret:       cfg.JWTSecret,
				TokenTTL:        cfg.TokenTTL,
				AllowPublicView: cfg.Auth.AllowPublicView,
			}, logger.Component("auth")),
			Projects:  service.NewProjectService(st.projects, st.accounts, dispatcher, logger.Component("projects")),
			Audit:     service.NewAuditService(st.audit),
			Sessions:  redisstore.NewSessionStore(rdb),
			JWTSecret: cfg.JWTSecret,
			Probes: map[string]handler.Pinger{
				st.name: st.ping,
				"redis": handler.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
			},
			Logger: logger.Component("http"),
		})

		serverErr := make(chan error, 1)
		go func() {
			log.Info().Str("port", cfg.Port).Str("driver", cfg.StoreDriver).Msg("server listening")
			if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
			close(serverErr)
		}()

		select {
		case <-ctx.Done():
			log.Info().Msg("shutting down")
		case err = <-serverErr:
			log.Error().Err(err).Msg("server stopped")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown")
		}
		if err := dispatcher.Close(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("audit queue not fully drained")
		}
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
		if err := st.close(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("store close")
		}

		return err
	},
}

func ephemeralSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
