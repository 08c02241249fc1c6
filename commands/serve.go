package commands

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"proptech-analytics/chat"
	"proptech-analytics/server"
	"proptech-analytics/services"
)

const reloadTimeout = time.Minute

func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			cmd.SetContext(ctx)

			rt := bootstrap(cmd, false)
			defer rt.Close()
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				rt.cfg.HTTPAddr = addr
			}

			if rt.cfg.RefreshSchedule != "" && rt.source != nil {
				refresher, err := services.NewRefresher(rt.app, rt.source, rt.cfg.RefreshSchedule, reloadTimeout, rt.logger)
				if err != nil {
					return err
				}
				refresher.Start()
				defer refresher.Stop()
				rt.logger.Info("[serve] Reloading datasets on schedule %q", rt.cfg.RefreshSchedule)
			}

			handler := server.NewHandler(rt.app, chat.NewDispatcher(rt.app, rt.logger), rt.cfg.ROIModelURL != "", rt.logger)
			router := server.NewRouter(handler, server.RouterOptions{
				AllowedOrigins: rt.cfg.CORSAllowedOrigins,
				RequestTimeout: rt.cfg.RequestTimeout,
			}, rt.logger)

			return server.New(rt.cfg.HTTPAddr, router, rt.logger).Run(ctx)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (overrides HTTP_ADDR)")
	return cmd
}
