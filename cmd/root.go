package cmd

import (
	"fmt"
	"os"

	"switchshop/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "switchshop",
	Short: "Self-hosted game shop server",
	Long: `Switchshop serves a local game library to sideload clients.
It keeps a live catalog of game images, enriches it from the title
database, and exposes it over the Tinfoil shop protocol, a DBI-style
directory listing, and WebDAV.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format at debug level gives readable timestamps for
		// a CLI tool.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
