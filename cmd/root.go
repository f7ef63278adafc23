package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/sightread/internal/config"
	"github.com/abhisek/sightread/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "sightread",
	Short: "Treble clef sight-reading practice for kids",
	Long:  "Sightread is a terminal app where children learn to name notes on the treble staff.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SIGHTREAD_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/sightread/config.toml)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(parentCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the layered configuration, honoring --config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(config.LoadOptions{ConfigPath: path})
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then db.path from config, then SIGHTREAD_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DB.Path != "" {
		return cfg.DB.Path, store.EnsureDir(cfg.DB.Path)
	}
	return store.DefaultDBPath()
}
