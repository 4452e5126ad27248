package main

import (
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/roberthamel/optiprompt/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the prompt API over HTTP",
		Long:  longServe,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := a.registry()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if a.settings.LogLevel != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}
			a.logger.Debug("loaded templates", "count", registry.Len())
			return server.New(registry, a.logger).Run(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

var longServe = `
Serve the composer and scorer as a JSON API until interrupted.

Endpoints:
  GET  /healthz
  GET  /metrics
  GET  /v1/templates[?category=c]
  GET  /v1/templates/:id
  GET  /v1/techniques
  POST /v1/compose   {form, templateId, options} -> {prompt, tokens}
  POST /v1/evaluate  {form, templateId, options} -> metrics
  POST /v1/generate  {form, templateId, options} -> {prompt, tokens, metrics, optimizations}

Examples:
  op serve --addr 127.0.0.1:9000
`
