package cmd

import (
	"context"
	"log"

	"switchshop/core/config"
	"switchshop/core/logger"
	"switchshop/core/metadata"

	"github.com/spf13/cobra"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the title databases from the remote source",
	Long: `Downloads fresh versions.json and regional title database documents
into the data directory. Remote failures for one document do not
abort the other; only local filesystem failures fail the command.`,
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

		meta := metadata.NewStore(cfg.Metadata, cfg.Library.DataDir, logg)
		return meta.Sync(context.Background())
	},
}

func init() {
	RootCmd.AddCommand(syncCmd)
}
