package habits

import (
	"fmt"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/ui"
)

type HabitCmd struct {
	Add     HabitAddCmd     `cmd:"" help:"Start tracking a habit."`
	List    HabitListCmd    `cmd:"" help:"List tracked habits."`
	Delete  HabitDeleteCmd  `cmd:"" help:"Delete a habit together with all of its logs."`
	History HabitHistoryCmd `cmd:"" help:"Show every logged amount of a habit."`
}

type HabitAddCmd struct {
	Name string `arg:"" help:"Habit name (1-100 characters)."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Tracker.AddHabit(c.Name); err != nil {
		return err
	}
	ctx.Println(ui.Success(fmt.Sprintf("Added habit %q", c.Name)))
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Tracker.ListHabits()
	if err != nil {
		return err
	}
	ctx.Println(ui.HabitList(habits))
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit to delete."`
	Yes  bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	exists, err := ctx.Tracker.HabitExists(c.Name)
	if err != nil {
		return err
	}
	if !exists {
		return &storage.HabitError{Habit: c.Name, Err: storage.ErrHabitNotFound}
	}

	logs, err := ctx.Tracker.ViewHistory(c.Name)
	if err != nil {
		return err
	}

	ok, err := ctx.Confirm(fmt.Sprintf("Delete %q and its %d log(s)?", c.Name, len(logs)), c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println(ui.Muted("Nothing deleted."))
		return nil
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Tracker.RemoveHabitCompletely(c.Name); err != nil {
		return err
	}
	ctx.Println(ui.Success(fmt.Sprintf("Deleted habit %q and %d log(s)", c.Name, len(logs))))
	return nil
}

type HabitHistoryCmd struct {
	Name string `arg:"" help:"Habit to show."`
}

func (c *HabitHistoryCmd) Run(ctx *cli.Context) error {
	exists, err := ctx.Tracker.HabitExists(c.Name)
	if err != nil {
		return err
	}
	if !exists {
		return &storage.HabitError{Habit: c.Name, Err: storage.ErrHabitNotFound}
	}

	logs, err := ctx.Tracker.ViewHistory(c.Name)
	if err != nil {
		return err
	}
	ctx.Println(ui.HistoryTable(c.Name, logs))
	return nil
}
