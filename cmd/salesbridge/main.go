// salesbridge — Salesforce MCP bridge
// Exposes Salesforce CRUD/SOQL operations as MCP tools, authenticated per
// request via forwarded headers.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matiasleandrokruk/salesbridge/internal/api"
	"github.com/matiasleandrokruk/salesbridge/internal/domain/salesforce"
	"github.com/matiasleandrokruk/salesbridge/internal/domain/tool"
	"github.com/matiasleandrokruk/salesbridge/internal/infra/config"
	"github.com/matiasleandrokruk/salesbridge/internal/server"
	"github.com/matiasleandrokruk/salesbridge/internal/version"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("salesbridge", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	showVersion := fs.Bool("version", false, "Show version information")
	showHelp := fs.Bool("help", false, "Show help")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(out, version.String()) //nolint:errcheck
		return 0
	}

	if *showHelp {
		printHelp(out)
		return 0
	}

	if err := serve(); err != nil {
		slog.Error("server exited", "error", err)
		return 1
	}
	return 0
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client := salesforce.NewRESTClient(cfg.APIVersion, cfg.HTTPTimeout)
	registry := tool.NewRegistry(client)
	router := api.NewRouter(tool.NewMCPServer(registry))

	serverCfg := server.DefaultConfig()
	serverCfg.Host = cfg.Host
	serverCfg.Port = cfg.Port
	srv := server.NewServer(router, serverCfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func printHelp(out io.Writer) {
	helpText := `salesbridge — Salesforce MCP bridge

Usage:
  salesbridge [options]

Options:
  --version    Show version information
  --help       Show this help message

Endpoints:
  GET  /health   Liveness probe
  /              MCP endpoint (streamable HTTP)

Per-request headers:
  x-forwarded-access-token
  x-forwarded-salesforce-instance-url

Environment:
  SALESBRIDGE_HOST              Bind host (default 0.0.0.0)
  SALESBRIDGE_PORT              Bind port (default 9000)
  SALESBRIDGE_SF_API_VERSION    Salesforce REST API version (default v59.0)
  SALESBRIDGE_SF_HTTP_TIMEOUT   Outbound request timeout (default 30s)
  SALESBRIDGE_CONFIG            Optional YAML config file`
	fmt.Fprintln(out, helpText) //nolint:errcheck
}
