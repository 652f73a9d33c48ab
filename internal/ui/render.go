package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/habitlog/internal/models"
)

// HabitList renders habit names as a numbered list.
func HabitList(habits []string) string {
	if len(habits) == 0 {
		return Muted("No habits tracked yet.")
	}

	var b strings.Builder
	b.WriteString(Title(fmt.Sprintf("Habits (%d)", len(habits))))
	for i, h := range habits {
		fmt.Fprintf(&b, "\n%3d. %s", i+1, h)
	}
	return b.String()
}

// HistoryTable renders the logs of one habit with a total row.
func HistoryTable(habit string, logs []models.HabitLog) string {
	if len(logs) == 0 {
		return Muted(fmt.Sprintf("No logs for %q.", habit))
	}

	total := 0
	rows := make([][]string, 0, len(logs)+1)
	for _, l := range logs {
		rows = append(rows, []string{l.Date, strconv.Itoa(l.Amount)})
		total += l.Amount
	}
	rows = append(rows, []string{"total", strconv.Itoa(total)})
	totalRow := len(rows) - 1

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("Date", "Amount").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == totalRow:
				return headerStyle.Bold(false)
			case col == 1:
				return cellStyle.Align(lipgloss.Right)
			default:
				return cellStyle
			}
		})

	return Title(habit) + "\n" + t.String()
}

// LogLine renders a single log entry.
func LogLine(l models.HabitLog) string {
	return fmt.Sprintf("%s  %s  %d", l.HabitName, l.Date, l.Amount)
}
