package logs

import (
	"fmt"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/tracker"
	"github.com/julianstephens/habitlog/internal/ui"
)

type LogCmd struct {
	Today  LogTodayCmd  `cmd:"" help:"Record today's amount, overwriting an earlier entry for today."`
	Set    LogSetCmd    `cmd:"" help:"Record an amount for a given day, overwriting an earlier entry."`
	Update LogUpdateCmd `cmd:"" help:"Change the amount of an existing log."`
	Delete LogDeleteCmd `cmd:"" help:"Delete the log of a day. Missing logs are ignored."`
	Show   LogShowCmd   `cmd:"" help:"Show the log of a day."`
}

type LogTodayCmd struct {
	Name   string `arg:"" help:"Habit name. Unknown habits are created."`
	Amount int    `arg:"" help:"Amount to record."`
}

func (c *LogTodayCmd) Run(ctx *cli.Context) error {
	res, err := ctx.Tracker.LogToday(c.Name, c.Amount)
	if err != nil {
		return err
	}
	printResult(ctx, res)
	return nil
}

type LogSetCmd struct {
	Name   string `arg:"" help:"Habit name. Unknown habits are created."`
	Amount int    `arg:"" help:"Amount to record."`
	Date   string `required:"" help:"Day to record (YYYY-MM-DD)."`
}

func (c *LogSetCmd) Run(ctx *cli.Context) error {
	res, err := ctx.Tracker.LogOn(c.Name, c.Date, c.Amount)
	if err != nil {
		return err
	}
	printResult(ctx, res)
	return nil
}

func printResult(ctx *cli.Context, res tracker.LogResult) {
	if res.HabitCreated {
		ctx.Println(ui.Success(fmt.Sprintf("Started tracking %q", res.Log.HabitName)))
	}
	verb := "Logged"
	if res.Updated {
		verb = "Updated"
	}
	ctx.Println(ui.Success(fmt.Sprintf("%s %d for %q on %s", verb, res.Log.Amount, res.Log.HabitName, res.Log.Date)))
}

type LogUpdateCmd struct {
	Name   string `arg:"" help:"Habit name."`
	Date   string `arg:"" help:"Day of the log (YYYY-MM-DD)."`
	Amount int    `arg:"" help:"New amount."`
}

func (c *LogUpdateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Tracker.UpdateLog(c.Name, c.Date, c.Amount); err != nil {
		return err
	}
	ctx.Println(ui.Success(fmt.Sprintf("Updated %q on %s to %d", c.Name, c.Date, c.Amount)))
	return nil
}

type LogDeleteCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `arg:"" help:"Day of the log (YYYY-MM-DD)."`
}

func (c *LogDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Tracker.DeleteLog(c.Name, c.Date); err != nil {
		return err
	}
	ctx.Println(ui.Success(fmt.Sprintf("Deleted log for %q on %s", c.Name, c.Date)))
	return nil
}

type LogShowCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `arg:"" optional:"" help:"Day to show (YYYY-MM-DD). Defaults to today."`
}

func (c *LogShowCmd) Run(ctx *cli.Context) error {
	date := c.Date
	if date == "" {
		date = ctx.Tracker.Today()
	}

	log, ok, err := ctx.Tracker.GetLog(c.Name, date)
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println(ui.Muted(fmt.Sprintf("Nothing logged for %q on %s.", c.Name, date)))
		return nil
	}
	ctx.Println(ui.LogLine(log))
	return nil
}
