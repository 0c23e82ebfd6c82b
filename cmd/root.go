package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/config"
	"github.com/abhisek/lingua/internal/content"
	"github.com/abhisek/lingua/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lingua",
	Short: "AI English tutor for the terminal",
	Long: "Lingua: a terminal app that generates English lessons, quizzes and vocabulary\n" +
		"flashcards with an LLM, tailored to your CEFR level and topic.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// ExecuteContext runs the root command with ctx available to every
// subcommand through cmd.Context().
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides LINGUA_CONFIG env var)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LINGUA_DB env var)")

	addSessionFlags(rootCmd)

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().String("level", "", "CEFR level: A1, A2, B1, B2, C1 or C2")
	cmd.Flags().String("focus", "", "Focus area: grammar, vocabulary, idioms or phrasal-verbs")
	cmd.Flags().String("topic", "", "Optional topic, e.g. \"Travel\"")
}

// sessionFromFlags reads --level, --focus and --topic. Unset flags leave
// the field empty.
func sessionFromFlags(cmd *cobra.Command) (content.SessionConfig, error) {
	var sc content.SessionConfig

	if s, _ := cmd.Flags().GetString("level"); s != "" {
		level, err := content.ParseLevel(s)
		if err != nil {
			return sc, err
		}
		sc.Level = level
	}
	if s, _ := cmd.Flags().GetString("focus"); s != "" {
		focus, err := content.ParseFocus(s)
		if err != nil {
			return sc, err
		}
		sc.Focus = focus
	}
	sc.Topic, _ = cmd.Flags().GetString("topic")
	return sc, nil
}

// loadConfig loads configuration and applies the --db override.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Store.Path = p
	}
	return cfg, nil
}

// openStore loads configuration and opens the event database it names.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return openConfiguredStore(cfg)
}

func openConfiguredStore(cfg *config.Config) (*store.Store, error) {
	dbPath, err := cfg.Store.DBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
