package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amslee/postcal/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.loadStore(); err != nil {
		return err
	}

	set, sel := ctx.Feeds()
	policy, err := ctx.Config.Platform()
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(ctx.Store, set, sel, policy), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
