package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"evalmodels/internal/config"
	"evalmodels/internal/httpapi"
	"evalmodels/internal/registry"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the registry over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Addr = addr
			}
			reg, err := a.loadRegistry()
			if err != nil {
				return err
			}
			srv := a.newHTTPServer(reg)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				a.log.Info().Str("addr", a.cfg.Addr).Int("models", reg.Len()).Msg("evalmodels listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			// Graceful shutdown (Ctrl+C / SIGTERM)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.log.Error().Err(err).Msg("graceful shutdown error")
				return err
			}
			a.log.Info().Msg("server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address, e.g. :8080 (defaults EVALMODELS_ADDR or :8080)")
	return cmd
}

// newHTTPServer configures the HTTP layer from the resolved config.
func (a *app) newHTTPServer(reg *registry.Registry) *http.Server {
	httpapi.SetLogger(a.log)
	httpapi.SetRequestLogLevel(requestLogLevel(a.cfg))
	httpapi.SetMaxBodyBytes(a.cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(a.cfg.CORSEnabled, a.cfg.CORSOrigins, nil, nil)
	return &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           httpapi.NewMux(reg),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// requestLogLevel maps the process log level onto per-request logging.
func requestLogLevel(cfg config.Config) string {
	switch cfg.LogLevel {
	case "debug", "trace":
		return "debug"
	case "warn", "error", "fatal", "panic":
		return "error"
	case "disabled":
		return "off"
	default:
		return "info"
	}
}
