package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/runger/omnibar/internal/config"
	"github.com/runger/omnibar/internal/logging"
	"github.com/runger/omnibar/internal/query"
	"github.com/runger/omnibar/internal/query/calc"
	"github.com/runger/omnibar/internal/query/rank"
	"github.com/runger/omnibar/internal/query/sources"
	"github.com/runger/omnibar/internal/sink"
	"github.com/runger/omnibar/internal/storage"
)

// engine bundles the wired query pipeline behind one handle the commands
// share.
type engine struct {
	Config     *config.Config
	Logger     *slog.Logger
	Store      *storage.Store
	Aggregator *query.Aggregator
	Executor   *query.Executor
}

// Close releases the snapshot database.
func (e *engine) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// buildEngine loads configuration, opens the snapshot and wires the
// sources, ranker, aggregator, executor and action sink together.
func buildEngine() (*engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger := logging.New(&logging.Config{
		Level: parseLevel(cfg.Log.Level),
		Debug: os.Getenv("OMNIBAR_DEBUG") == "1",
	})

	store, err := storage.Open(cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}

	limits := cfg.Search.Limits
	cache := sources.NewTTLCache(cfg.CacheTTL())

	bookmarks := store.Bookmarks()
	history := sources.NewHistory(store.History(), limits)
	tabs := sources.NewTabs(store.Tabs(), limits.Tabs)

	srcs := []query.Source{
		sources.NewBookmarks(bookmarks, limits.Bookmarks),
		sources.NewTags(store.Tags(), bookmarks, limits.Tags, cache),
		history,
		tabs,
		sources.NewDownloads(store.Downloads(), limits.Downloads),
		sources.NewSettings(sources.DefaultSettingsIndex()),
		sources.NewExtensions(store.Extensions(), limits.Extensions, cache),
	}

	aggregator := query.NewAggregator(query.AggregatorConfig{
		Evaluator:     calc.New(),
		Ranker:        rank.New(cfg.Search.Weights),
		Sources:       srcs,
		TabDefault:    tabs,
		RecentDefault: history,
		Bookmarks:     bookmarks,
		Logger:        logger,
	})

	actionSink := sink.New(sink.Config{
		Command:      cfg.Browser.Command,
		NewTabURL:    cfg.Browser.NewTabURL,
		NewWindowURL: cfg.Browser.NewWindowURL,
		Tabs:         store.Tabs(),
		Bookmarks:    bookmarks,
		Logger:       logger,
	})

	executor := query.NewExecutor(actionSink, bookmarks, cfg.Browser.SearchURL, logger)

	return &engine{
		Config:     cfg,
		Logger:     logger,
		Store:      store,
		Aggregator: aggregator,
		Executor:   executor,
	}, nil
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
