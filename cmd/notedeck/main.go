package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/notedeck/internal/api"
	"github.com/llehouerou/notedeck/internal/app"
	"github.com/llehouerou/notedeck/internal/client"
	"github.com/llehouerou/notedeck/internal/config"
	"github.com/llehouerou/notedeck/internal/keyboard/catalog"
	"github.com/llehouerou/notedeck/internal/log"
	"github.com/llehouerou/notedeck/internal/notify"
	"github.com/llehouerou/notedeck/internal/state"
	"github.com/llehouerou/notedeck/internal/store"
)

var version = "0.1.0-dev"

func main() {
	os.Exit(runCLI(os.Args[1:]))
}

func runCLI(args []string) int {
	if len(args) < 1 {
		return runTUI(nil)
	}

	switch args[0] {
	case "serve":
		return runServe(args[1:])
	case "tui":
		return runTUI(args[1:])
	case "version", "--version":
		return runVersion()
	case "help", "--help", "-h":
		printUsage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[0])
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Println(`notedeck - a terminal client for a hierarchical notes server

Usage:
  notedeck [tui] [--url URL]   open the terminal client (default)
  notedeck serve [--listen ADDR] [--db PATH]
  notedeck version

Configuration is read from ~/.config/notedeck/config.toml then ./config.toml.`)
}

func runVersion() int {
	v := version
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		v = info.Main.Version
	}
	fmt.Printf("notedeck %s\n", v)
	return 0
}

func loadConfig() (*config.Config, bool) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, false
	}
	return cfg, true
}

func runServe(args []string) int {
	cfg, ok := loadConfig()
	if !ok {
		return 1
	}

	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	listen := fs.String("listen", cfg.Server.Listen, "Address to listen on")
	dbPath := fs.String("db", cfg.Server.DBPath, "Path of the notes database")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	cfg.Server.Listen = *listen
	cfg.Server.DBPath = *dbPath

	logger := log.Setup(cfg.Log.Level, os.Stdout)

	path, err := cfg.Server.DatabasePath()
	if err != nil {
		logger.Error("cannot resolve database path", "error", err)
		return 1
	}
	st, err := store.Open(path)
	if err != nil {
		logger.Error("cannot open database", "path", path, "error", err)
		return 1
	}
	defer st.Close()

	actions, err := catalog.New(st, log.WithComponent("catalog"))
	if err != nil {
		logger.Error("cannot load keyboard actions", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := api.New(api.Config{Listen: cfg.Server.Listen, APIKey: cfg.Server.APIKey}, st, actions, log.WithComponent("api"))
	if err := srv.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server stopped", "error", err)
		return 1
	}
	logger.Info("server stopped")
	return 0
}

func runTUI(args []string) int {
	cfg, ok := loadConfig()
	if !ok {
		return 1
	}

	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	url := fs.String("url", cfg.Client.URL, "Notes server URL")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	logPath, err := cfg.Log.LogFilePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to resolve log file: %v\n", err)
		return 1
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		return 1
	}
	defer logFile.Close()
	logger := log.Setup(cfg.Log.Level, logFile)

	stateMgr, err := state.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open session state: %v\n", err)
		return 1
	}
	defer stateMgr.Close()

	backend := client.New(*url,
		client.WithAPIKey(cfg.Client.APIKey),
		client.WithHTTPClient(&http.Client{Timeout: cfg.Client.Timeout()}),
	)

	var reporter *notify.Reporter
	if cfg.Notify.Enabled {
		n, err := notify.New()
		if err != nil {
			logger.Warn("desktop notifications unavailable", "error", err)
		} else {
			reporter = notify.NewReporter(n, cfg.Notify.Timeout())
		}
	}

	m := app.New(app.Options{
		Backend:  backend,
		State:    stateMgr,
		Reporter: reporter,
		Logger:   log.WithComponent("app"),
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		return 1
	}
	if reporter != nil {
		_ = reporter.Dismiss()
	}
	return 0
}
