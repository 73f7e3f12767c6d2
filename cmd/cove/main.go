package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/vburojevic/cove/internal/cli"
	"github.com/vburojevic/cove/internal/config"
)

func main() {
	// Load configuration from files/environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
		cfg.EventsDir = config.ExpandHome(cfg.EventsDir)
		cfg.SettingsPath = config.ExpandHome(cfg.SettingsPath)
		cfg.LogFile = config.ExpandHome(cfg.LogFile)
	}

	var c cli.CLI

	// Config values become flag defaults; explicit flags still win
	ctx := kong.Parse(&c,
		kong.Name("cove"),
		kong.Description("cove: run several assistant sessions side by side in tmux and see which ones need you"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		cli.Vars(cfg),
	)

	globals := cli.NewGlobalsWithConfig(&c, cfg)
	err = ctx.Run(globals)
	if err != nil {
		// CommandErrors were already reported in the requested format
		var cmdErr *cli.CommandError
		if !errors.As(err, &cmdErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
