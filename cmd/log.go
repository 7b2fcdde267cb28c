package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/greekquiz/internal/app"
	"github.com/abhisek/greekquiz/internal/catalog"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recently answered questions or session events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		item, _ := cmd.Flags().GetString("item")
		sessions, _ := cmd.Flags().GetBool("sessions")
		if limit < 1 {
			return fmt.Errorf("--limit must be positive")
		}
		if sessions && item != "" {
			return fmt.Errorf("use --sessions or --item, not both")
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		repo := a.Store.EventRepo()

		if sessions {
			events, err := repo.RecentSessionEvents(ctx, limit)
			if err != nil {
				return fmt.Errorf("recent session events: %w", err)
			}
			lipgloss.Println(app.RenderSessions(events))
			return nil
		}

		if item != "" {
			kind := catalog.KindWord
			if _, ok := a.Catalog.Letter(item); ok {
				kind = catalog.KindLetter
			}
			acc, n, err := repo.ItemAccuracy(ctx, string(kind), item)
			if err != nil {
				return fmt.Errorf("item accuracy: %w", err)
			}
			fmt.Printf("%s: %d logged answers, %.0f%% correct\n", item, n, acc*100)
			return nil
		}

		events, err := repo.RecentAnswers(ctx, limit)
		if err != nil {
			return fmt.Errorf("recent answers: %w", err)
		}
		lipgloss.Println(app.RenderAnswers(events))
		return nil
	},
}

func init() {
	logCmd.Flags().Int("limit", 20, "Number of entries to show")
	logCmd.Flags().Bool("sessions", false, "Show review starts, review ends, mode changes and resets")
	logCmd.Flags().String("item", "", "Show logged accuracy for one letter or word")
}
