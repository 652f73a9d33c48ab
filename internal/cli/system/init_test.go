package system

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/config"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage/sqlite"
)

func newInitContext(t *testing.T, dbPath string) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(dbPath)
	t.Cleanup(func() { store.Close() })

	cfg := &config.Config{Database: dbPath, Timezone: "UTC", Backup: config.Backup{Keep: 3}}
	ctx := cli.NewContext(store, cfg, nil)
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

func TestInitCmd_CreatesDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "habitlog.db")
	ctx, out := newInitContext(t, dbPath)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("database file not created: %v", err)
	}
	if !strings.Contains(out.String(), dbPath) {
		t.Errorf("expected path in output, got: %s", out.String())
	}
}

func TestInitCmd_IsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "habitlog.db")
	ctx, _ := newInitContext(t, dbPath)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if err := ctx.Store.AddHabit("Reading"); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("second init failed: %v", err)
	}

	exists, err := ctx.Store.HabitExists("Reading")
	if err != nil {
		t.Fatalf("HabitExists failed: %v", err)
	}
	if !exists {
		t.Error("re-running init without --force must keep existing data")
	}
}

func TestInitCmd_Force(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "habitlog.db")
	ctx, out := newInitContext(t, dbPath)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if err := ctx.Store.AddHabit("Reading"); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}
	if !strings.Contains(out.String(), "Deleted existing database") {
		t.Errorf("expected deletion notice, got: %s", out.String())
	}

	habits, err := ctx.Store.ListHabits()
	if err != nil {
		t.Fatalf("ListHabits failed: %v", err)
	}
	if len(habits) != 0 {
		t.Errorf("expected empty database after --force, got %v", habits)
	}
}

func TestInitCmd_ForceRejectsSameSource(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "habitlog.db")
	ctx, _ := newInitContext(t, dbPath)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	err := (&InitCmd{Force: true, Source: dbPath}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "same") {
		t.Fatalf("expected same-source error, got %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("database must survive a rejected --force: %v", err)
	}
}

func TestInitCmd_CopiesFromSource(t *testing.T) {
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "source.db")

	source := sqlite.NewStore(sourcePath)
	if err := source.Init(); err != nil {
		t.Fatalf("failed to init source: %v", err)
	}
	for _, h := range []string{"Reading", "Push-ups"} {
		if err := source.AddHabit(h); err != nil {
			t.Fatalf("failed to add habit: %v", err)
		}
	}
	logs := []models.HabitLog{
		{HabitName: "Reading", Date: "2024-03-09", Amount: 15},
		{HabitName: "Reading", Date: "2024-03-10", Amount: 30},
		{HabitName: "Push-ups", Date: "2024-03-10", Amount: -5},
	}
	for _, l := range logs {
		if err := source.InsertLog(l); err != nil {
			t.Fatalf("failed to insert log: %v", err)
		}
	}
	source.Close()

	ctx, out := newInitContext(t, filepath.Join(dir, "dest.db"))
	if err := (&InitCmd{Source: sourcePath}).Run(ctx); err != nil {
		t.Fatalf("init --source failed: %v", err)
	}
	if !strings.Contains(out.String(), "Copied 2 habits") || !strings.Contains(out.String(), "Copied 3 logs") {
		t.Errorf("unexpected output: %s", out.String())
	}

	got, err := ctx.Store.ListLogs("Reading")
	if err != nil {
		t.Fatalf("ListLogs failed: %v", err)
	}
	if len(got) != 2 || got[1].Amount != 30 {
		t.Errorf("unexpected copied logs: %+v", got)
	}
	log, ok, err := ctx.Store.GetLog("Push-ups", "2024-03-10")
	if err != nil || !ok || log.Amount != -5 {
		t.Errorf("GetLog = %+v, %v, %v", log, ok, err)
	}
}

func TestInitCmd_CopyIntoNonEmptyRollsBack(t *testing.T) {
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "source.db")

	source := sqlite.NewStore(sourcePath)
	if err := source.Init(); err != nil {
		t.Fatalf("failed to init source: %v", err)
	}
	for _, h := range []string{"Meditation", "Reading"} {
		if err := source.AddHabit(h); err != nil {
			t.Fatalf("failed to add habit: %v", err)
		}
	}
	source.Close()

	ctx, _ := newInitContext(t, filepath.Join(dir, "dest.db"))
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if err := ctx.Store.AddHabit("Reading"); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	if err := (&InitCmd{Source: sourcePath}).Run(ctx); err == nil {
		t.Fatal("expected duplicate habit to fail the copy")
	}
	exists, err := ctx.Store.HabitExists("Meditation")
	if err != nil {
		t.Fatalf("HabitExists failed: %v", err)
	}
	if exists {
		t.Error("partial copy must be rolled back")
	}
}
