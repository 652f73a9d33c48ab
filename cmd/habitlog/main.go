package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/cli/backups"
	"github.com/julianstephens/habitlog/internal/cli/habits"
	"github.com/julianstephens/habitlog/internal/cli/logs"
	"github.com/julianstephens/habitlog/internal/cli/system"
	"github.com/julianstephens/habitlog/internal/config"
	"github.com/julianstephens/habitlog/internal/constants"
	apperrors "github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/menu"
)

var CLI struct {
	Version    kong.VersionFlag
	Config     string `help:"Path to the YAML config file." type:"string" default:"${config_file}"`
	DB         string `name:"db" help:"SQLite path, PostgreSQL connection string or 'keyring'. Credentials must NOT be embedded in the connection string." type:"string"`
	Debug      bool   `help:"Enable debug logging to stderr."`
	Accessible bool   `help:"Use plain-text prompts instead of interactive forms." env:"ACCESSIBLE"`

	Menu    system.MenuCmd    `cmd:"" help:"Open the interactive habit menu." default:"1"`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the full-screen habit browser."`
	Init    system.InitCmd    `cmd:"" help:"Initialize habitlog storage."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Habit   habits.HabitCmd   `cmd:"" help:"Manage habits."`
	Log     logs.LogCmd       `cmd:"" help:"Record and edit daily amounts."`
	Backup  backups.BackupCmd `cmd:"" help:"Manage database backups."`
	Keyring system.KeyringCmd `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Track daily habits and the amount done each day"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_file": constants.DefaultConfigFile,
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		apperrors.Fatalf("cannot load config %s: %v", CLI.Config, err)
	}
	if CLI.DB != "" {
		if err := cfg.SetDatabase(CLI.DB); err != nil {
			apperrors.Fatalf("invalid --db value: %v", err)
		}
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		Level:     cfg.LogLevel,
		ConfigDir: cfg.Dir(),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	prompter := &menu.HuhPrompter{Accessible: CLI.Accessible}
	command := ctx.Command()

	// Keyring commands manage the credentials the store would need.
	if strings.HasPrefix(command, "keyring") {
		appCtx := cli.NewContext(nil, cfg, prompter)
		apperrors.Fatal(ctx.Run(appCtx))
		return
	}

	store, err := cli.OpenStore(cfg.Database)
	if err != nil {
		apperrors.Fatal(err)
	}

	// Init creates the store itself.
	if !strings.HasPrefix(command, "init") {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	appCtx := cli.NewContext(store, cfg, prompter)
	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close store", "error", closeErr)
	}
	apperrors.Fatal(err)
}
