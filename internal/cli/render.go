package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"flourish/internal/config"
	"flourish/internal/lexicon"
	"flourish/internal/logging"
	"flourish/internal/ornament"
	"flourish/internal/store"
	"flourish/internal/voice"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one reply from a JSON payload on stdin",
	Long: `Reads a JSON payload from stdin and prints the ornamented reply.

Payload shape:
  {"text": "...", "last_message": "...", "key_moments": [...], "topics": [...],
   "user_style": {"prefers_long": true}, "rule": {"id": "...", "tactic": "..."}}`,
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logging.Init(cfg.Logging.Level, cfg.Logging.Format)

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	var req struct {
		Text        string   `json:"text"`
		LastMessage string   `json:"last_message"`
		KeyMoments  []string `json:"key_moments"`
		Topics      []string `json:"topics"`
		UserStyle   *struct {
			PrefersLong *bool `json:"prefers_long"`
		} `json:"user_style"`
		Rule *struct {
			ID     string `json:"id"`
			Tactic string `json:"tactic"`
			Uses   int    `json:"uses"`
		} `json:"rule"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("parse payload: %w", err)
	}

	eng, cleanup := oneShotEngine(cfg)
	defer cleanup()

	sem := ornament.Semantics{Text: req.Text}
	if req.Rule != nil && req.Rule.ID != "" {
		sem.Rule = &ornament.BasicRule{RuleID: req.Rule.ID, RuleTactic: req.Rule.Tactic, Uses: req.Rule.Uses}
	}

	rc := ornament.RenderContext{
		LastMessage: req.LastMessage,
		KeyMoments:  req.KeyMoments,
		Topics:      req.Topics,
	}
	if req.UserStyle != nil {
		rc.UserStyle.PrefersLong = req.UserStyle.PrefersLong
	}

	fmt.Println(eng.Render(sem, rc))
	return nil
}

// oneShotEngine builds an engine for a single render. It prefers the
// SQLite-backed lexicon and trace sink, degrading to an in-memory lexicon
// when the database cannot be opened.
func oneShotEngine(cfg config.Config) (*ornament.Engine, func()) {
	profile := voice.Fixed{Traits: voice.Style{
		Formality:   cfg.Voice.Formality,
		Warmth:      cfg.Voice.Warmth,
		Emoji:       cfg.Voice.Emoji,
		Conciseness: cfg.Voice.Conciseness,
	}}

	dbPath := cfg.Database.Path
	if dbPath == "" {
		if p, err := store.DefaultDBPath(); err == nil {
			dbPath = p
		}
	}

	var eng *ornament.Engine
	cleanup := func() {}
	if db, err := store.Open(dbPath); err == nil {
		for _, phrase := range cfg.Lexicon.Phrases {
			db.AddCollocation(phrase)
		}
		eng = ornament.New(profile, lexicon.NewStore(db))
		eng.SetTraceSink(db)
		cleanup = func() { db.Close() }
	} else {
		fmt.Fprintf(os.Stderr, "warning: database unavailable (%v), traces disabled\n", err)
		eng = ornament.New(profile, lexicon.NewMemory(cfg.Lexicon.Phrases))
	}

	eng.SetThresholds(ornament.Thresholds{
		PastRelevance:   cfg.Thresholds.PastRelevance,
		CollocRelevance: cfg.Thresholds.CollocRelevance,
		ConfMin:         cfg.Thresholds.ConfMin,
		ChanceColloc:    cfg.Thresholds.ChanceColloc,
	})
	eng.SetConfidenceEstimator(voice.Static(cfg.Voice.Confidence))
	return eng, cleanup
}
