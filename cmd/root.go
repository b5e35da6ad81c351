package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kvega/kayfabe/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "kayfabe",
	Short: "WWE trivia quiz powered by an LLM",
	Long:  "Kayfabe — terminal WWE trivia. Ten questions, twenty seconds each, no repeats.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides KAYFABE_DB env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then KAYFABE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
