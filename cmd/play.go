package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kvega/kayfabe/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp wires dependencies and launches the TUI. Shared by the root
// command and `play`.
func runApp(cmd *cobra.Command) error {
	logger := newLogger(true)

	d, err := buildDeps(cmd, logger)
	if err != nil {
		return err
	}
	defer d.Close()

	return app.Run(d.generator.Generate)
}

func init() {
	playCmd.SetContext(context.Background())
}
