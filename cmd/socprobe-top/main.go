package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"socprobe/internal/config"
	"socprobe/internal/logger"
	"socprobe/internal/telemetry"
	"socprobe/internal/tui"
)

func main() {
	cfg := config.Load()
	cfg.LogLevel = "error"

	flags := pflag.NewFlagSet("socprobe-top", pflag.ExitOnError)
	flags.DurationVarP(&cfg.Interval, "interval", "i", cfg.Interval, "refresh interval")
	flags.StringVar(&cfg.SysfsRoot, "root", cfg.SysfsRoot, "filesystem root holding /sys and /proc")
	flags.StringVar(&cfg.CatalogFile, "catalog", cfg.CatalogFile, "YAML file overriding path candidates")
	flags.Parse(os.Args[1:])

	svc, err := telemetry.NewService(cfg, logger.New(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "socprobe-top: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(svc, cfg.Interval); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
