package habits

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/config"
	"github.com/julianstephens/habitlog/internal/menu"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/storage/sqlite"
)

type confirmPrompter struct {
	answer bool
	asked  int
}

func (p *confirmPrompter) Choose(string, []menu.Choice) (int, error)       { return menu.Exit, nil }
func (p *confirmPrompter) Text(string, func(string) error) (string, error) { return "", nil }
func (p *confirmPrompter) Confirm(string) (bool, error) {
	p.asked++
	return p.answer, nil
}

func setupTestDB(t *testing.T, prompter menu.Prompter) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "habitlog.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := &config.Config{
		Database: dbPath,
		Timezone: "UTC",
		Backup:   config.Backup{Enabled: true, Keep: 3},
	}
	ctx := cli.NewContext(store, cfg, prompter)
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

func TestHabitAddAndList(t *testing.T) {
	ctx, out := setupTestDB(t, nil)

	for _, name := range []string{"Push-ups", "Reading"} {
		if err := (&HabitAddCmd{Name: name}).Run(ctx); err != nil {
			t.Fatalf("add %s failed: %v", name, err)
		}
	}

	err := (&HabitAddCmd{Name: "Push-ups"}).Run(ctx)
	if !errors.Is(err, storage.ErrDuplicateHabit) {
		t.Errorf("duplicate add error = %v, want %v", err, storage.ErrDuplicateHabit)
	}

	out.Reset()
	if err := (&HabitListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if got := out.String(); !strings.Contains(got, "1. Push-ups") || !strings.Contains(got, "2. Reading") {
		t.Errorf("unexpected list output:\n%s", got)
	}
}

func TestHabitAddRejectsEmptyName(t *testing.T) {
	ctx, _ := setupTestDB(t, nil)

	if err := (&HabitAddCmd{Name: ""}).Run(ctx); err == nil {
		t.Error("expected an error for an empty habit name")
	}
}

func TestHabitDelete(t *testing.T) {
	prompter := &confirmPrompter{answer: false}
	ctx, out := setupTestDB(t, prompter)

	if _, err := ctx.Tracker.LogOn("Push-ups", "2024-03-09", 20); err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.Tracker.LogOn("Push-ups", "2024-03-10", 25); err != nil {
		t.Fatal(err)
	}

	// Declined.
	if err := (&HabitDeleteCmd{Name: "Push-ups"}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if prompter.asked != 1 {
		t.Errorf("expected one confirmation, got %d", prompter.asked)
	}
	if exists, _ := ctx.Tracker.HabitExists("Push-ups"); !exists {
		t.Fatal("habit deleted although confirmation was declined")
	}

	// Confirmed by flag.
	if err := (&HabitDeleteCmd{Name: "Push-ups", Yes: true}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if prompter.asked != 1 {
		t.Errorf("--yes should skip the prompt")
	}
	if !strings.Contains(out.String(), "and 2 log(s)") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	logs, err := ctx.Tracker.ViewHistory("Push-ups")
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 0 {
		t.Errorf("expected logs to be deleted, got %d", len(logs))
	}

	// An automatic backup was taken before the delete.
	mgr, err := ctx.BackupManager()
	if err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(mgr.GetBackupDir())
	if err != nil || len(entries) != 1 {
		t.Errorf("expected one automatic backup, got %d (err=%v)", len(entries), err)
	}
}

func TestHabitDeleteUnknown(t *testing.T) {
	ctx, _ := setupTestDB(t, nil)

	err := (&HabitDeleteCmd{Name: "Unknown", Yes: true}).Run(ctx)
	if !errors.Is(err, storage.ErrHabitNotFound) {
		t.Errorf("error = %v, want %v", err, storage.ErrHabitNotFound)
	}
}

func TestHabitDeleteNeedsConfirmation(t *testing.T) {
	ctx, _ := setupTestDB(t, nil)
	if err := ctx.Tracker.AddHabit("Push-ups"); err != nil {
		t.Fatal(err)
	}

	if err := (&HabitDeleteCmd{Name: "Push-ups"}).Run(ctx); err == nil {
		t.Error("expected an error without a prompter or --yes")
	}
}

func TestHabitHistory(t *testing.T) {
	ctx, out := setupTestDB(t, nil)

	err := (&HabitHistoryCmd{Name: "Push-ups"}).Run(ctx)
	if !errors.Is(err, storage.ErrHabitNotFound) {
		t.Errorf("error = %v, want %v", err, storage.ErrHabitNotFound)
	}

	if err := ctx.Tracker.AddHabit("Push-ups"); err != nil {
		t.Fatal(err)
	}
	if err := (&HabitHistoryCmd{Name: "Push-ups"}).Run(ctx); err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out.String(), "No logs") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	if _, err := ctx.Tracker.LogOn("Push-ups", "2024-03-10", 35); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := (&HabitHistoryCmd{Name: "Push-ups"}).Run(ctx); err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out.String(), "2024-03-10") || !strings.Contains(out.String(), "35") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}
