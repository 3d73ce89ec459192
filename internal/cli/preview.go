package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/sundial/internal/tui"
)

var runProgramFunc = func(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

type PreviewCmd struct {
	At string `help:"Start the preview at this time instead of now (HH:MM[:SS] today, or RFC 3339)."`
}

func (c *PreviewCmd) Run(ctx *Context) error {
	start, err := ParseAt(c.At, ctx.Now())
	if err != nil {
		return err
	}

	sun, source, err := ctx.ResolveSunTimes(context.Background())
	if err != nil {
		return err
	}

	return runProgramFunc(tui.NewModel(sun, ctx.Config.Screen, source, start))
}
