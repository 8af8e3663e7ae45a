// Package main runs the surf browser automation server over MCP stdio.
// Clients start browser sessions, drive pages through locator-based
// tools, and tear sessions down; every tool reports a uniform result
// envelope.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/entrhq/surf/pkg/browser"
	"github.com/entrhq/surf/pkg/config"
	"github.com/entrhq/surf/pkg/logging"
	"github.com/entrhq/surf/pkg/server"
	"github.com/entrhq/surf/pkg/telemetry"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	if *showVersion {
		fmt.Printf("%s v%s\n", cfg.Server.Name, cfg.Server.Version)
		return
	}

	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("startup error: %v", err)
	}

	logger := logging.New(cfg.Logging)

	tracer, shutdownTracing, err := telemetry.Setup(cfg.Telemetry.Enabled, cfg.Server.Name, cfg.Server.Version)
	if err != nil {
		log.Fatalf("telemetry error: %v", err)
	}

	manager := browser.NewManager(browser.ManagerOptions{
		Registry:       browser.NewRegistry(cfg.Performance.MaxSessions),
		Logger:         logger,
		DefaultTimeout: cfg.Performance.DefaultTimeout(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Server.Name,
		Version: cfg.Server.Version,
	}, nil)
	server.New(cfg, manager, logger, tracer).Register(mcpServer)

	logger.Info("server starting",
		"name", cfg.Server.Name,
		"version", cfg.Server.Version,
		"max_sessions", cfg.Performance.MaxSessions)

	err = mcpServer.Run(ctx, &mcp.StdioTransport{})

	// Sessions hold real browser processes; always tear them down before
	// reporting how the transport ended.
	manager.ShutdownAll()
	if terr := shutdownTracing(context.Background()); terr != nil {
		logger.Warn("failed to flush traces", "error", terr)
	}

	if err != nil && ctx.Err() == nil {
		logger.Error("server terminated", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
