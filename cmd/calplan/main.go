package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alexanderramin/calplan/internal/cli"
	"github.com/alexanderramin/calplan/internal/db"
	"github.com/alexanderramin/calplan/internal/llm"
	"github.com/alexanderramin/calplan/internal/planning"
	"github.com/alexanderramin/calplan/internal/session"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment is used as is.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(os.Getenv("CALPLAN_LOG_LEVEL")),
	}))
	slog.SetDefault(logger)

	dbPath := os.Getenv("CALPLAN_DB")
	if dbPath == "" {
		dbPath = db.DefaultPath()
	}
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	cfg := llm.LoadConfig()
	var observer llm.Observer = llm.NoopObserver{}
	if cfg.LogCalls {
		observer = llm.NewLogObserver(logger)
	}
	client := llm.WithBreaker(llm.NewClient(cfg, observer), cfg, logger)

	contexts := planning.NewContextGenerator(client, logger)
	calendars := planning.NewCalendarGenerator(client, logger)
	store := session.NewSQLiteStoreFromDB(database)

	app := &cli.App{
		Planner:   planning.NewPlanner(contexts, calendars, store, logger),
		Contexts:  contexts,
		Calendars: calendars,
		Model:     client,
		Logger:    logger,
		Loc:       time.Local,
		HTTPAddr:  os.Getenv("CALPLAN_HTTP_ADDR"),
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
		},
	}
	return cli.Execute(context.Background(), app, os.Args[1:])
}

func logLevel(v string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
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
