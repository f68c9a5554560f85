package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Table renders rows under headers with a rounded border. Without colors the
// border and header are left unstyled so output stays plain text.
func Table(headers []string, rows [][]string, useColors bool) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow && useColors {
				return cellStyle.Inherit(StyleCyan)
			}
			return cellStyle
		})
	if useColors {
		t = t.BorderStyle(StyleGray)
	}
	return t.String()
}
