package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/storage/sqlite"
	"github.com/julianstephens/habitlog/internal/utils"
	"github.com/julianstephens/habitlog/internal/validation"
)

type DoctorCmd struct{}

// warning marks a check whose failure is reported but does not fail the run.
type warning struct{ error }

type check struct {
	name    string
	needsDB bool
	run     func(*cli.Context) error
}

var checks = []check{
	{"Schema", true, checkSchema},
	{"SQLite integrity", true, checkSQLiteIntegrity},
	{"Log data", true, checkLogData},
	{"Backups present", false, checkBackupsPresent},
	{"Clock/timezone", false, checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false

	dbReachable := true
	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		ctx.Printf("✓ Database reachable: OK (%s)\n", ctx.Store.GetConfigPath())
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		var w warning
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case errors.As(err, &w):
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", w.error)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.ListHabits(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchema(ctx *cli.Context) error {
	return ctx.Store.EnsureSchema()
}

func checkSQLiteIntegrity(ctx *cli.Context) error {
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil // PostgreSQL enforces this itself
	}

	db := store.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	var result string
	if err := db.QueryRow("PRAGMA integrity_check").Scan(&result); err != nil {
		return fmt.Errorf("failed to run integrity check: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("integrity check reported: %s", result)
	}

	rows, err := db.Query("PRAGMA foreign_key_check")
	if err != nil {
		return fmt.Errorf("failed to run foreign key check: %w", err)
	}
	defer rows.Close()

	violations := 0
	for rows.Next() {
		violations++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if violations > 0 {
		return fmt.Errorf("found %d log(s) referencing missing habits", violations)
	}
	return nil
}

func checkLogData(ctx *cli.Context) error {
	habits, err := ctx.Store.ListHabits()
	if err != nil {
		return fmt.Errorf("failed to list habits: %w", err)
	}
	known := make(map[string]bool, len(habits))
	for _, h := range habits {
		if err := validation.ValidateHabitName(h); err != nil {
			return err
		}
		known[h] = true
	}

	logs, err := ctx.Store.ListAllLogs()
	if err != nil {
		return fmt.Errorf("failed to list logs: %w", err)
	}
	for _, l := range logs {
		if !known[l.HabitName] {
			return fmt.Errorf("log on %s references missing habit %q", l.Date, l.HabitName)
		}
		date, err := validation.ParseDate(l.Date)
		if err != nil || date != l.Date {
			return fmt.Errorf("log of %q has malformed date %q", l.HabitName, l.Date)
		}
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if errors.Is(err, cli.ErrBackupsUnsupported) {
		return nil
	}
	if err != nil {
		return err
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return warning{errors.New("no backups found - consider creating one with 'habitlog backup create'")}
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if _, err := utils.LoadLocation(ctx.Config.Timezone); err != nil {
		return fmt.Errorf("timezone %q cannot be loaded: %w", ctx.Config.Timezone, err)
	}
	return nil
}
