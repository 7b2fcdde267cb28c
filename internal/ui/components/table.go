package components

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/greekquiz/internal/ui/theme"
)

// Table renders rows under headers with the theme's border and cell styles.
func Table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.TableHeader
			}
			return theme.TableCell
		}).
		Headers(headers...).
		Rows(rows...)
	return t.String()
}
