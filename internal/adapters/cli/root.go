package cli

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/karimelsayed/ragkb/internal/bootstrap"
	"github.com/karimelsayed/ragkb/internal/config"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "ragkb",
	Short: "Local knowledge base with retrieval-augmented answers",
	Long: `ragkb ingests a directory of documents into a persistent vector index
and answers questions about them through a local Ollama instance.
Answers can be forced into Arabic with a bounded regeneration loop.`,
	SilenceUsage: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to YAML config file")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newApp(queryOnly bool) (*bootstrap.App, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, queryOnly)
}
