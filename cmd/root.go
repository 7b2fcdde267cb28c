package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/abhisek/greekquiz/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "greekquiz",
	Short: "Greek alphabet and vocabulary flash cards",
	Long:  "GreekQuiz: adaptive flash-card trainer for the Greek alphabet and a grouped vocabulary.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuiz(cmd, "")
	},
	SilenceUsage: true,
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides GREEKQUIZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides GREEKQUIZ_CONFIG env var)")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(versionCmd)
}

// openApp wires the app from the --db and --config flags. Callers must
// Close the result.
func openApp(cmd *cobra.Command) (*app.App, error) {
	dbPath, _ := cmd.Flags().GetString("db")
	configPath, _ := cmd.Flags().GetString("config")
	return app.Open(cmd.Context(), app.Options{ConfigPath: configPath, DBPath: dbPath})
}
