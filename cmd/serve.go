package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kvega/kayfabe/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the quiz HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(false)

		cfg, err := server.LoadConfig()
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		d, err := buildDeps(cmd, logger)
		if err != nil {
			return err
		}
		defer d.Close()

		srv := server.New(cfg, logger, d.generator.Generate)
		if err := srv.Run(cmd.Context()); err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides KAYFABE_HTTP_ADDR)")
	serveCmd.SetContext(context.Background())
}
