package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"flourish/internal/config"
	"flourish/internal/store"
)

var tracesLimit int

var tracesCmd = &cobra.Command{
	Use:   "traces",
	Short: "List recent decision traces",
	RunE:  runTraces,
}

func init() {
	tracesCmd.Flags().IntVar(&tracesLimit, "limit", 20, "max traces to show")
}

func runTraces(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

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

	traces, err := db.RecentTraces(tracesLimit)
	if err != nil {
		return err
	}
	if len(traces) == 0 {
		fmt.Println("no decision traces recorded")
		return nil
	}

	for _, t := range traces {
		when := time.UnixMilli(t.CreatedAt).Format(time.RFC3339)
		tactic := t.Tactic
		if tactic == "" {
			tactic = "-"
		}
		fmt.Printf("%s  rule=%s  tactic=%s\n", when, t.RuleID, tactic)
	}
	return nil
}
