package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "flourish",
	Short: "Reply ornamentation engine for conversational agents",
	Long:  "Flourish decides whether a generated reply earns a secondary embellishment — a callback to a past moment or a favored turn of phrase — under relevance, confidence, budget, and anti-repetition gates.",
}

func Execute() error {
	// A .env alongside the binary is optional; absence is not an error.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(tracesCmd)
}
