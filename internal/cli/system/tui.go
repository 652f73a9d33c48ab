package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	m := tui.NewModel(ctx.Tracker, tui.WithBeforeDelete(ctx.PerformAutomaticBackup))
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	if fm, ok := final.(tui.Model); ok {
		return fm.Err()
	}
	return nil
}
