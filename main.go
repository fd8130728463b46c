package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/nstehr/myco/myco-core/agent"
	"github.com/nstehr/myco/myco-core/config"
	"github.com/nstehr/myco/myco-core/ipc"
	"github.com/nstehr/myco/myco-core/persistence/matchdb"
	"github.com/nstehr/myco/myco-core/rules"
)

const banner = `
███╗   ███╗██╗   ██╗ ██████╗ ██████╗
████╗ ████║╚██╗ ██╔╝██╔════╝██╔═══██╗
██╔████╔██║ ╚████╔╝ ██║     ██║   ██║
██║╚██╔╝██║  ╚██╔╝  ██║     ██║   ██║
██║ ╚═╝ ██║   ██║   ╚██████╗╚██████╔╝
╚═╝     ╚═╝   ╚═╝    ╚═════╝ ╚═════╝

Tiered Spore Colony Intelligence`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// run plays until ctx is cancelled or the harness goes away and returns the
// process exit code. Everything it opens is closed before it returns.
func run(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("myco", flag.ContinueOnError)
	url := fs.String("url", "ws://127.0.0.1:8765", "game harness websocket url")
	team := fs.String("team", "myco", "team name used when TOKEN is not set")
	configPath := fs.String("config", "", "YAML file overriding the default tuning")
	logLevel := fs.String("log-level", "info", "debug, info, warn or error")
	outputDir := fs.String("output", "", "directory for per-match telemetry (overrides config)")
	dbPath := fs.String("db", "", "SQLite match history path (overrides config)")
	seed := fs.Int64("seed", 0, "random seed for exploration sampling (0 = time based)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(*logLevel),
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "path", *configPath, "error", err)
		return 1
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}
	if *dbPath != "" {
		cfg.Output.DBPath = *dbPath
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	tiers, err := rules.CompileTiers(cfg.Tiers)
	if err != nil {
		slog.Error("invalid tier overrides", "error", err)
		return 1
	}
	engine, err := rules.NewEngine(cfg, tiers, rand.New(rand.NewSource(*seed)))
	if err != nil {
		slog.Error("failed to compile rules", "error", err)
		return 1
	}
	slog.Info("rule engine ready", "rules", engine.RuleNames(), "seed", *seed)

	history, err := matchdb.Open(cfg.Output.DBPath)
	if err != nil {
		slog.Error("failed to open match history", "path", cfg.Output.DBPath, "error", err)
		return 1
	}
	defer func() {
		if err := history.Close(); err != nil {
			slog.Warn("closing match history", "error", err)
		}
	}()

	if recent, err := history.Recent(5); err == nil && len(recent) > 0 {
		for _, m := range recent {
			slog.Info("previous match", "id", m.ID, "lastTick", m.LastTick, "maxSpores", m.MaxSpores, "meanDecisionUs", m.MeanDecisionMicros)
		}
	}

	slog.Info("connecting to harness", "url", *url)
	conn, err := ipc.Dial(ctx, *url, 10*time.Second)
	if err != nil {
		slog.Error("failed to connect", "url", *url, "error", err)
		return 1
	}

	a := agent.New(engine, history, cfg.Output.Dir)
	defer a.Close()
	conn.RegisterHandler(ipc.TypeTeamGameState, a.HandleGameState)

	token := os.Getenv("TOKEN")
	if err := conn.Register(token, *team); err != nil {
		slog.Error("failed to register", "error", err)
		_ = conn.Close()
		return 1
	}
	slog.Info("registered", "team", *team, "token", token != "")

	conn.ReadLoop(ctx)
	slog.Info("shutting down")
	return 0
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
