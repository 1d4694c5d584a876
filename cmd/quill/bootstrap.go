package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jacentio/quill/blog"
	"github.com/jacentio/quill/gateway"
	"github.com/jacentio/quill/internal/config"
)

// loadConfig reads the config file, if any, and applies flag overrides.
func (o *options) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return nil, err
		}
	}

	if o.logLevel != "" {
		cfg.LogLevel = config.LogLevel(o.logLevel)
	}
	if o.logFormat != "" {
		cfg.LogFormat = config.LogFormat(o.logFormat)
	}
	if o.seedFile != "" {
		cfg.SeedFile = o.seedFile
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// bootstrap builds the logger, the graph and the gateway handler, and
// imports the seed fixture when one is configured.
func (o *options) bootstrap(ctx context.Context) (*gateway.Handler, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg, o.stderr)
	slog.SetDefault(logger)

	graph := blog.New(cfg.Store.Config(), blog.WithLogger(logger))

	if cfg.SeedFile != "" {
		seed, err := blog.LoadSeed(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		if _, err := graph.Import(ctx, seed); err != nil {
			return nil, err
		}
	}

	logger.Info("quill ready",
		"users", len(graph.ListUsers(ctx, "")),
		"posts", len(graph.ListPosts(ctx, "")),
		"comments", len(graph.ListComments(ctx)),
		"seed_file", cfg.SeedFile,
	)
	return gateway.NewHandler(graph, logger), nil
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	hopts := &slog.HandlerOptions{Level: cfg.LogLevel.Slog()}
	if cfg.LogFormat == config.FormatJSON {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}
