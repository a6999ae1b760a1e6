package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MartinianoLopez/comparador-clientes/internal/server"
	"github.com/MartinianoLopez/comparador-clientes/internal/util"
)

func newServeCommand(a *app) *cobra.Command {
	var (
		port      int
		devMode   bool
		noBrowser bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Inicia la página local de comparación",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			// config.toml 优先；仅当未显式配置 port 时命令行生效
			if port > 0 && !a.info.PortSpecified {
				cfg.Server.Port = port
			}
			if devMode {
				cfg.Server.DevMode = true
			}

			srv, err := server.NewServer(cfg)
			if err != nil {
				return err
			}

			addr := fmt.Sprintf(":%d", cfg.Server.Port)
			url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				util.Log.WithField("addr", addr).Info("server starting")
				errCh <- srv.Run(addr)
			}()

			if !cfg.Server.DevMode && !noBrowser {
				if err := util.OpenBrowserWithFallback(url); err != nil {
					util.Log.Warnf("could not open browser, visit %s manually", url)
				}
			} else {
				util.Log.Infof("visit %s", url)
			}

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			util.Log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "server port (only used when config.toml does not set one)")
	cmd.Flags().BoolVar(&devMode, "dev", false, "development mode")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "do not open the browser")
	return cmd
}
