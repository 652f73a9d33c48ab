package system

import (
	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/menu"
)

type MenuCmd struct{}

func (c *MenuCmd) Run(ctx *cli.Context) error {
	prompter := ctx.Prompter
	if prompter == nil {
		prompter = &menu.HuhPrompter{}
	}
	return menu.New(ctx.Tracker, prompter, ctx.Out,
		menu.WithBeforeDelete(ctx.PerformAutomaticBackup),
	).Run()
}
