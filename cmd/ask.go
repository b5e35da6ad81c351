package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kvega/kayfabe/internal/quizgen"
)

// askCmd generates a single question and prints it. Useful for checking
// provider configuration and eyeballing question quality.
var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Generate one question and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(false)

		level, _ := cmd.Flags().GetString("difficulty")
		difficulty, err := quizgen.ParseDifficulty(level)
		if err != nil {
			return err
		}

		d, err := buildDeps(cmd, logger)
		if err != nil {
			return err
		}
		defer d.Close()

		q, err := d.generator.Generate(cmd.Context(), difficulty, nil)
		if err != nil {
			var parseErr *quizgen.ParseError
			if errors.As(err, &parseErr) {
				fmt.Println("The model did not return a usable question. Raw output:")
				fmt.Println(parseErr.Raw)
				return nil
			}
			return err
		}

		fmt.Printf("[%s] %s\n\n", q.Difficulty, q.Text)
		for _, opt := range q.Options {
			fmt.Println(" ", opt.String())
		}
		reveal, _ := cmd.Flags().GetBool("reveal")
		if reveal {
			fmt.Printf("\nAnswer: %s\n", q.CorrectFull)
		}
		return nil
	},
}

func init() {
	askCmd.Flags().StringP("difficulty", "l", "", "Difficulty: easy, medium, or hard (default medium)")
	askCmd.Flags().Bool("reveal", false, "Print the correct answer too")
	askCmd.SetContext(context.Background())
}
