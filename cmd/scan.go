package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"switchshop/core/catalog"
	"switchshop/core/config"
	"switchshop/core/events"
	"switchshop/core/logger"
	"switchshop/core/metadata"
	"switchshop/core/reconcile"

	"github.com/spf13/cobra"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the games directory once and print the catalog",
	Long: `Walks the games directory, builds the catalog against the local
title database, and prints it as JSON. No server is started.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return err
		}
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		bus := events.NewBus()
		cat := catalog.NewStore(bus)
		meta := metadata.NewStore(cfg.Metadata, cfg.Library.DataDir, logg)
		meta.Load()

		engine := reconcile.New(cat, meta, bus, logg, cfg.Library)
		engine.Scan()

		out, err := json.MarshalIndent(cat.Snapshot(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(scanCmd)
}
