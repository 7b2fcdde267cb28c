package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/greekquiz/internal/app"
	"github.com/abhisek/greekquiz/internal/session"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Start a practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, _ := cmd.Flags().GetString("mode")
		return runQuiz(cmd, mode)
	},
}

func init() {
	quizCmd.Flags().String("mode", "quiz", "Starting mode: quiz, vocab or review")
}

// runQuiz opens the store, switches to the requested mode and runs the
// interactive quiz on stdin/stdout.
func runQuiz(cmd *cobra.Command, modeName string) error {
	ctx := cmd.Context()

	var mode session.Mode
	if modeName != "" {
		m, err := session.ParseMode(modeName)
		if err != nil {
			return err
		}
		mode = m
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if mode != "" {
		if err := a.Controller.SetMode(ctx, mode); err != nil {
			return err
		}
	}
	return app.RunQuiz(ctx, a.Controller, os.Stdin, os.Stdout)
}
