package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"flourish/internal/config"
	"flourish/internal/history"
	"flourish/internal/lexicon"
	"flourish/internal/logging"
	"flourish/internal/ornament"
	"flourish/internal/server"
	"flourish/internal/store"
	"flourish/internal/voice"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logging.Init(cfg.Logging.Level, cfg.Logging.Format)

	// Resolve database path
	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return fmt.Errorf("resolve db path: %w", err)
		}
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	// Seed configured collocations; duplicates are no-ops.
	for _, phrase := range cfg.Lexicon.Phrases {
		if err := db.AddCollocation(phrase); err != nil {
			log.Warn().Err(err).Str("phrase", phrase).Msg("seed collocation failed")
		}
	}

	// History window: Redis when configured, in-process otherwise.
	var hist history.Store = history.NewMemory()
	if cfg.Redis.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		r, err := history.NewRedis(ctx, cfg.Redis.URL, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
		cancel()
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, using in-process history")
		} else {
			defer r.Close()
			hist = r
			log.Info().Msg("history: redis")
		}
	}

	eng := newEngine(cfg, db)

	srv := server.New(db, eng, hist, VersionString())
	addr := cfg.ListenAddr()

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info().Str("addr", addr).Str("db", dbPath).Msg("flourish serving")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
			os.Exit(1)
		}
	}()

	<-done
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return httpServer.Shutdown(ctx)
}

// newEngine builds the ornament engine from config, with the store as
// both lexicon and trace sink.
func newEngine(cfg config.Config, db *store.DB) *ornament.Engine {
	profile := voice.Fixed{Traits: voice.Style{
		Formality:   cfg.Voice.Formality,
		Warmth:      cfg.Voice.Warmth,
		Emoji:       cfg.Voice.Emoji,
		Conciseness: cfg.Voice.Conciseness,
	}}

	eng := ornament.New(profile, lexicon.NewStore(db))
	eng.SetThresholds(ornament.Thresholds{
		PastRelevance:   cfg.Thresholds.PastRelevance,
		CollocRelevance: cfg.Thresholds.CollocRelevance,
		ConfMin:         cfg.Thresholds.ConfMin,
		ChanceColloc:    cfg.Thresholds.ChanceColloc,
	})
	eng.SetConfidenceEstimator(voice.Static(cfg.Voice.Confidence))
	eng.SetTraceSink(db)
	return eng
}
