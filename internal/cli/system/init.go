package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Delete an existing SQLite database before initialization."`
	Source string `help:"Database path, connection string or 'keyring' to copy habits and logs from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized habitlog storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx); err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		ctx.Println("Copy completed successfully!")
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return fmt.Errorf("--force is only supported for SQLite databases")
	}

	dbPath := ctx.Store.GetConfigPath()
	if c.Source != "" {
		absDB, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDB
		}
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		ctx.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

// copyData copies every habit and log from the source store in one
// transaction on the destination.
func (c *InitCmd) copyData(ctx *cli.Context) error {
	source, err := cli.OpenStore(c.Source)
	if err != nil {
		return err
	}
	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	habits, err := source.ListHabits()
	if err != nil {
		return fmt.Errorf("failed to get habits from source: %w", err)
	}
	logs, err := source.ListAllLogs()
	if err != nil {
		return fmt.Errorf("failed to get logs from source: %w", err)
	}

	err = ctx.Store.WithTx(func(tx storage.HabitStore) error {
		for _, h := range habits {
			if err := tx.AddHabit(h); err != nil {
				return fmt.Errorf("failed to add habit %q: %w", h, err)
			}
		}
		for _, l := range logs {
			if err := tx.InsertLog(l); err != nil {
				return fmt.Errorf("failed to add log of %q on %s: %w", l.HabitName, l.Date, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	ctx.Printf("  Copied %d habits\n", len(habits))
	ctx.Printf("  Copied %d logs\n", len(logs))
	return nil
}
