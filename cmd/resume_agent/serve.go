package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the résumé matching workflow: uploads, job
descriptions, scoring, fit summaries, suggestions and their review. Without a
database URL records are kept in memory until the server stops.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default: server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.close()
	if servePort > 0 {
		rt.cfg.Server.Port = servePort
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := rt.modelClient(ctx, false)
	if err != nil {
		return err
	}
	defer closeClient(client)

	deps := pipeline.Deps{
		Extraction: rt.extractionModel(client),
		Pages: fetch.NewCachedFetcher(fetch.New(fetch.Options{
			Timeout:    rt.cfg.Extraction.FetchTimeout,
			UseBrowser: rt.cfg.Extraction.UseBrowser,
			Logger:     rt.logger,
		}), 0),
		Parsing:     rt.cfg.ParsingOptions(rt.logger),
		Suggestions: rt.cfg.SuggestionOptions(rt.logger),
		Logger:      rt.logger,
	}
	if client != nil {
		deps.Generator = client
		deps.Embedder = client
	}

	opts := server.Options{Config: rt.cfg.Server, Logger: rt.logger}
	if rt.cfg.Database.URL != "" {
		database, err := connectDatabase(ctx, rt.cfg.Database.URL, rt.cfg.Database.MaxConns)
		if err != nil {
			return err
		}
		defer database.Close()
		deps.Store = database
		opts.Health = database
	} else {
		rt.logger.Warn("no database configured, records are kept in memory only")
		deps.Store = pipeline.NewMemoryStore()
	}
	opts.Service = pipeline.NewService(deps)

	srv, err := server.New(opts)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	rt.logger.Info("starting API server",
		zap.String("addr", rt.cfg.Server.Addr()),
		zap.Bool("auth", rt.cfg.Server.JWTSecret != ""),
		zap.Bool("llm", client != nil))
	return srv.Start(ctx)
}

// connectDatabase migrates the schema and opens the pool
func connectDatabase(ctx context.Context, url string, maxConns int32) (*db.DB, error) {
	if err := db.Migrate(ctx, url); err != nil {
		return nil, err
	}
	return db.Connect(ctx, url, maxConns)
}
