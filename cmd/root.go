package cmd

import (
	"fmt"

	"github.com/abhisek/algoquiz/internal/bank"
	"github.com/abhisek/algoquiz/internal/config"
	"github.com/abhisek/algoquiz/internal/quiz"
	"github.com/abhisek/algoquiz/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "algoquiz",
	Short: "Adaptive data structures & algorithms quiz",
	Long:  "AlgoQuiz — terminal quiz on data structures and algorithms that adapts its difficulty to your answers.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, quiz.SettingsPatch{})
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides ALGOQUIZ_DB env var)")
	pf.String("bank", "", "YAML or JSON question bank file (default: built-in bank)")
	pf.String("export-dir", "", "Directory for history exports (default: current directory)")
	pf.String("config", "", "Config file (default: $XDG_CONFIG_HOME/algoquiz/config.yaml)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig merges flags, environment and config file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := config.New()
	flags := cmd.Flags()
	for key, flag := range map[string]string{
		config.KeyDB:        "db",
		config.KeyBank:      "bank",
		config.KeyExportDir: "export-dir",
	} {
		if f := flags.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind --%s: %w", flag, err)
			}
		}
	}
	file, _ := flags.GetString("config")
	return config.Load(v, file)
}

// resolveDBPath returns the configured database path, falling back to
// ALGOQUIZ_DB and then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens the store.
func openStore(cmd *cobra.Command) (*store.Store, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	return st, cfg, nil
}

// loadBank returns the configured question bank or the built-in one.
func loadBank(cfg *config.Config) ([]bank.Question, error) {
	if cfg.Bank == "" {
		return bank.Default(), nil
	}
	return bank.LoadFile(cfg.Bank)
}
