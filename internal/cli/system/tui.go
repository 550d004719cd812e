package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/mindtrack/internal/cli"
	"github.com/julianstephens/mindtrack/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	if _, err := ctx.Today(); err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	model := tui.NewModel(ctx.Store, userID, tui.Options{
		Today:      ctx.Today,
		Now:        ctx.Now,
		AfterWrite: ctx.PerformAutomaticBackup,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited with error: %w", err)
	}
	return nil
}
