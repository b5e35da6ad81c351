package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kvega/kayfabe/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe the stored question history",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := context.Background()
		n, err := st.Questions().Count(ctx)
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Println("Question history is already empty.")
			return nil
		}

		force, _ := cmd.Flags().GetBool("yes")
		if !force {
			fmt.Printf("Delete %d stored questions? [y/N] ", n)
			reader := bufio.NewReader(os.Stdin)
			line, _ := reader.ReadString('\n')
			if !strings.EqualFold(strings.TrimSpace(line), "y") {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := st.Questions().DeleteAll(ctx); err != nil {
			return err
		}
		fmt.Printf("Deleted %d questions.\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
