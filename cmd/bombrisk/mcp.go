package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/aretw0/bombrisk"
	"github.com/aretw0/bombrisk/pkg/adapters/mcp"
	"github.com/aretw0/bombrisk/pkg/adapters/memory"
	"github.com/aretw0/bombrisk/pkg/observability"
	"github.com/aretw0/bombrisk/pkg/session"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes widgets as MCP tools so agents can create, play and inspect tasks.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		treatments, err := treatmentLoader()
		if err != nil {
			return err
		}

		mgr := session.NewManager(memory.NewStore(),
			session.WithLogger(logger),
			session.WithWidgetOptions(widgetOptions(logger,
				bombrisk.WithLifecycleHooks(observability.LoggingHooks(logger)))...),
		)
		opts := []mcp.Option{mcp.WithLogger(logger)}
		if treatments != nil {
			opts = append(opts, mcp.WithTreatments(treatments))
		}
		srv := mcp.NewServer(mgr, opts...)

		switch transport := config.GetString("mcp.transport"); transport {
		case "stdio":
			logger.Info("starting MCP server (stdio)")
			return srv.ServeStdio()
		case "sse":
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			addr := config.GetString("mcp.addr")
			return srv.ServeSSE(ctx, addr, "http://localhost"+addr)
		default:
			return fmt.Errorf("unknown transport %q (use stdio or sse)", transport)
		}
	},
}

func init() {
	f := mcpCmd.Flags()
	f.String("transport", "stdio", "Transport: stdio or sse")
	f.String("addr", ":8081", "Listen address for the sse transport")
	_ = config.BindPFlag("mcp.transport", f.Lookup("transport"))
	_ = config.BindPFlag("mcp.addr", f.Lookup("addr"))
	rootCmd.AddCommand(mcpCmd)
}
