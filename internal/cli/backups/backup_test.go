package backups

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/config"
	"github.com/julianstephens/habitlog/internal/storage/postgres"
	"github.com/julianstephens/habitlog/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "habitlog.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := &config.Config{Database: dbPath, Timezone: "UTC", Backup: config.Backup{Enabled: true, Keep: 5}}
	ctx := cli.NewContext(store, cfg, nil)
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "1 total, keeping most recent 5") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestBackupRestoreByName(t *testing.T) {
	ctx, _ := setupTestDB(t)

	if err := ctx.Tracker.AddHabit("Push-ups"); err != nil {
		t.Fatal(err)
	}
	mgr, err := ctx.BackupManager()
	if err != nil {
		t.Fatal(err)
	}
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	if err := ctx.Tracker.AddHabit("Reading"); err != nil {
		t.Fatal(err)
	}

	cmd := &BackupRestoreCmd{BackupFile: filepath.Base(backupPath), Yes: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	habits, err := ctx.Tracker.ListHabits()
	if err != nil {
		t.Fatalf("store unusable after restore: %v", err)
	}
	if len(habits) != 1 || habits[0] != "Push-ups" {
		t.Errorf("habits after restore = %v, want [Push-ups]", habits)
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _ := setupTestDB(t)

	if err := (&BackupRestoreCmd{BackupFile: "habitlog-19990101-000000.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected an error for a missing backup")
	}
}

func TestBackupUnsupportedForPostgres(t *testing.T) {
	cfg := &config.Config{Database: "postgres://habits@localhost/habitlog", Timezone: "UTC", Backup: config.Backup{Keep: 5}}
	ctx := cli.NewContext(postgres.New(cfg.Database), cfg, nil)

	if err := (&BackupCreateCmd{}).Run(ctx); !errors.Is(err, cli.ErrBackupsUnsupported) {
		t.Errorf("error = %v, want %v", err, cli.ErrBackupsUnsupported)
	}
}
