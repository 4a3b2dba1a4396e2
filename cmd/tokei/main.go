package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/tokei/internal/cli"
	"github.com/julianstephens/tokei/internal/config"
	"github.com/julianstephens/tokei/internal/constants"
	apperrors "github.com/julianstephens/tokei/internal/errors"
	"github.com/julianstephens/tokei/internal/keyring"
	"github.com/julianstephens/tokei/internal/logger"
	"github.com/julianstephens/tokei/internal/storage"
	"github.com/julianstephens/tokei/internal/storage/postgres"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"${config_path}"`
	DB      string `name:"db" help:"Database path, diskv directory or PostgreSQL connection string. PostgreSQL passwords must come from the keyring, the environment or .pgpass."`
	Backend string `help:"Storage backend (auto, sqlite, postgres, json, diskv)." enum:"auto,sqlite,postgres,json,diskv" default:"auto"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init    cli.InitCmd    `cmd:"" help:"Initialize tokei storage."`
	Tui     cli.TuiCmd     `cmd:"" help:"Launch the interactive dial." default:"1"`
	Day     cli.DayCmd     `cmd:"" help:"Show the schedule for a day."`
	Add     cli.AddCmd     `cmd:"" help:"Add an interval."`
	Edit    cli.EditCmd    `cmd:"" help:"Edit an interval."`
	Delete  cli.DeleteCmd  `cmd:"" help:"Delete an interval."`
	Gaps    cli.GapsCmd    `cmd:"" help:"List free time."`
	Analyze cli.AnalyzeCmd `cmd:"" help:"Ask for a written analysis of a day."`
	Export  cli.ExportCmd  `cmd:"" help:"Export a day as iCalendar."`
	Import  cli.ImportCmd  `cmd:"" help:"Import iCalendar events into a day."`
	Backup  struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		SetAPIKey        cli.KeyringSetAPIKeyCmd        `cmd:"" name:"set-api-key" help:"Store the analysis API key."`
		DeleteAPIKey     cli.KeyringDeleteAPIKeyCmd     `cmd:"" name:"delete-api-key" help:"Remove the analysis API key."`
		SetConnection    cli.KeyringSetConnectionCmd    `cmd:"" name:"set-connection" help:"Store the PostgreSQL connection string."`
		DeleteConnection cli.KeyringDeleteConnectionCmd `cmd:"" name:"delete-connection" help:"Remove the PostgreSQL connection string."`
		Status           cli.KeyringStatusCmd           `cmd:"" help:"Show keyring status."`
	} `cmd:"" help:"Manage secrets in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("24-hour dial day planner"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	configDir := filepath.Dir(CLI.Config)
	if err := config.LoadEnv(configDir); err != nil {
		apperrors.Fatal(err)
	}
	cfg.ApplyEnv()

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		apperrors.Fatal(err)
	}

	loc, err := cfg.Location()
	if err != nil {
		apperrors.Fatal(err)
	}

	appCtx := &cli.Context{
		Config:   cfg,
		Location: loc,
	}

	// Keyring commands manage secrets and never touch storage.
	command := ctx.Command()
	if !strings.HasPrefix(command, "keyring") {
		backend, target, store, err := openStore(cfg)
		if err != nil {
			apperrors.Fatal(err)
		}
		// Init creates the storage itself; everything else needs it loaded.
		if command != "init" {
			if err := store.Load(); err != nil {
				apperrors.Fatal(err)
			}
		}
		appCtx.Store, appCtx.Backend, appCtx.Target = store, backend, target
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCtx.Ctx = sigCtx

	err = ctx.Run(appCtx)
	if appCtx.Store != nil {
		if closeErr := appCtx.Store.Close(); closeErr != nil {
			logger.Warn("failed to close storage", "error", closeErr)
		}
	}
	apperrors.Fatal(err)
}

// openStore picks the storage target: the --db flag or TOKEI_DB, then the
// config file, then the default database. A postgres backend with no
// target falls back to the connection string kept in the keyring, which is
// the one place a password is allowed.
func openStore(cfg *config.Config) (storage.Backend, string, storage.Provider, error) {
	backend := storage.Backend(CLI.Backend)
	if backend == storage.BackendAuto && cfg.Storage.Backend != "" {
		backend = storage.Backend(cfg.Storage.Backend)
	}

	target := CLI.DB
	if target == "" {
		target = cfg.Storage.Path
	}

	if target == "" && backend == storage.BackendPostgres {
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return "", "", nil, errors.New("no PostgreSQL connection configured; run 'tokei keyring set-connection'")
			}
			return "", "", nil, err
		}
		logger.Debug("using keyring connection string")
		return backend, connStr, postgres.New(connStr), nil
	}

	if target == "" {
		target = constants.DefaultDBPath
	}
	if !storage.IsPostgresURL(target) {
		expanded, err := config.ExpandPath(target)
		if err != nil {
			return "", "", nil, err
		}
		target = expanded
	}

	store, err := storage.New(backend, target)
	if err != nil {
		return "", "", nil, err
	}
	return storage.Resolve(backend, target), target, store, nil
}
