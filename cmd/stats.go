package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/greekquiz/internal/app"
	"github.com/abhisek/greekquiz/internal/catalog"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		kindName, _ := cmd.Flags().GetString("items")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctl := a.Controller
		if kindName != "" {
			kind, ok := catalog.ParseKind(kindName)
			if !ok {
				return fmt.Errorf("unknown item kind %q (want letters or words)", kindName)
			}
			lipgloss.Println(app.RenderItems(ctl.ItemStats(kind)))
			return nil
		}

		lipgloss.Println(app.RenderOverview(ctl.Overview(), len(a.Catalog.Words())))
		lipgloss.Println()
		lipgloss.Println(app.RenderGroups(ctl.GroupProgress()))
		return nil
	},
}

func init() {
	statsCmd.Flags().String("items", "", "List per-item stats for letters or words")
}
