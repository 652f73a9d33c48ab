package system

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/habitlog/internal/backup"
	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/config"
	"github.com/julianstephens/habitlog/internal/models"
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

	cfg := &config.Config{
		Database: dbPath,
		Timezone: "UTC",
		Backup:   config.Backup{Enabled: true, Keep: 3},
	}
	ctx := cli.NewContext(store, cfg, nil)
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

func TestDoctorCmd_HealthyDB(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := ctx.Store.AddHabit("Reading"); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}
	if err := ctx.Store.InsertLog(models.HabitLog{HabitName: "Reading", Date: "2024-03-10", Amount: 20}); err != nil {
		t.Fatalf("failed to insert log: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor command failed on healthy database: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "✓ Log data: OK") {
		t.Errorf("expected log data check to pass, got:\n%s", out.String())
	}
}

func TestDoctorCmd_MissingBackups(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor command should not fail on missing backups: %v", err)
	}
	if !strings.Contains(out.String(), "⚠ Backups present: WARNING") {
		t.Errorf("expected backup warning, got:\n%s", out.String())
	}
}

func TestDoctorCmd_WithBackups(t *testing.T) {
	ctx, out := setupTestDB(t)

	mgr := backup.NewManager(ctx.Store.GetConfigPath(), 3)
	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor command failed with backups present: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backups present: OK") {
		t.Errorf("expected backup check to pass, got:\n%s", out.String())
	}
}

func TestDoctorCmd_UnreachableDB(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "missing.db"))
	cfg := &config.Config{Timezone: "UTC", Backup: config.Backup{Keep: 3}}
	ctx := cli.NewContext(store, cfg, nil)
	out := &bytes.Buffer{}
	ctx.Out = out

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("expected doctor to fail when the database does not exist")
	}
	if !strings.Contains(out.String(), "⊘ Schema: SKIPPED") {
		t.Errorf("expected schema check to be skipped, got:\n%s", out.String())
	}
}

func TestDoctorCmd_BadTimezone(t *testing.T) {
	ctx, out := setupTestDB(t)
	ctx.Config.Timezone = "Not/AZone"

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("expected doctor to fail on an unknown timezone")
	}
	if !strings.Contains(out.String(), "❌ Clock/timezone: FAIL") {
		t.Errorf("expected timezone failure, got:\n%s", out.String())
	}
}
