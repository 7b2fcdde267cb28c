package cmd

import (
	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/greekquiz/internal/app"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show how the number of learned words changed over time",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		lipgloss.Println(app.RenderHistory(a.Controller.History()))
		return nil
	},
}
