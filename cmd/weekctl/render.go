package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	currentStyle = cellStyle.Foreground(lipgloss.Color("#16a34a")).Bold(true)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a"))
)

// renderTable draws rows under headers. highlight marks one data row, or -1.
func renderTable(headers []string, rows [][]string, highlight int) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == highlight:
				return currentStyle
			default:
				return cellStyle
			}
		}).
		Render()
}
