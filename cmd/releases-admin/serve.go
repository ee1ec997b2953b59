package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newreleases/admin-console/api/controller/controller_release"
	"github.com/newreleases/admin-console/api/route"
	"github.com/newreleases/admin-console/bootstrap"
	"github.com/newreleases/admin-console/util/util_log"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.App(envFile)
			if err != nil {
				return err
			}
			defer app.Close()
			return serve(cmd.Context(), app)
		},
	}
}

func serve(ctx context.Context, app *bootstrap.Application) error {
	env := app.Env
	if !env.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = controller_release.MaxMultipartMemory
	route.Setup(env, env.Timeout(), route.Deps{
		DB:      app.Database(),
		Storage: app.Storage,
		Revoker: app.Revoker,
		Lock:    app.Lock,
	}, r)

	srv := &http.Server{
		Addr:              env.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		util_log.Info().Str("addr", env.ServerAddress).Str("env", env.AppEnv).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	util_log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
