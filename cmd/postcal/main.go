package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/amslee/postcal/internal/cli"
	"github.com/amslee/postcal/internal/config"
	"github.com/amslee/postcal/internal/logger"
	"github.com/amslee/postcal/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path (overrides POSTCAL_STORE)." type:"path"`
	Debug   bool   `help:"Enable debug logging."`

	Init         cli.InitCmd         `cmd:"" help:"Initialize postcal storage."`
	Tui          cli.TuiCmd          `cmd:"" help:"Launch the interactive calendar." default:"1"`
	Add          cli.AddCmd          `cmd:"" help:"Schedule a post."`
	Edit         cli.EditCmd         `cmd:"" help:"Edit a scheduled post."`
	Delete       cli.DeleteCmd       `cmd:"" help:"Delete a scheduled post."`
	Move         cli.MoveCmd         `cmd:"" help:"Move a post to another date."`
	Day          cli.DayCmd          `cmd:"" help:"Show one day."`
	Week         cli.WeekCmd         `cmd:"" help:"Show one week."`
	Month        cli.MonthCmd        `cmd:"" help:"Show one month."`
	Autopopulate cli.AutoPopulateCmd `cmd:"" help:"Auto-distribute posts across a month."`
	Reset        cli.ResetCmd        `cmd:"" help:"Clear every scheduled post."`
	Export       cli.ExportCmd       `cmd:"" help:"Export the calendar as ICS."`
	Backup       cli.BackupCmd       `cmd:"" help:"Snapshot, list, or restore store backups."`
	Migrate      cli.MigrateCmd      `cmd:"" help:"Copy the store to another backend."`
	Serve        cli.ServeCmd        `cmd:"" help:"Serve the calendar API over HTTP."`
	Doctor       cli.DoctorCmd       `cmd:"" help:"Run diagnostics."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("postcal"),
		kong.Description("Content-planning calendar for scheduled social posts"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.3.0"},
	)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if CLI.Config != "" {
		cfg.StorePath = CLI.Config
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.ConfigDir()}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(cfg.StorePath, ".json") {
		store = storage.NewJSONStore(cfg.StorePath)
	} else {
		store = storage.NewSQLiteStore(cfg.StorePath)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store:  store,
		Config: cfg,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
