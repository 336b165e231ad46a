package metadata

// Config holds configuration for the title metadata store.
type Config struct {
	// Region selects the regional title database document.
	Region string `mapstructure:"region" default:"US"`
	// Language selects the language of the title database document.
	Language string `mapstructure:"language" default:"en"`
	// BaseURL is the remote source for titledb documents.
	BaseURL string `mapstructure:"base_url" default:"https://raw.githubusercontent.com/blawar/titledb/master"`
	// SyncIntervalHours is the period of the background sync cycle.
	SyncIntervalHours int `mapstructure:"sync_interval_hours" default:"24"`
}
