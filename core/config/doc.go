// Package config provides configuration management for Switchshop.
//
// It utilizes Viper for loading configuration from environment
// variables and an optional .env file, with defaults taken from the
// struct tags of the partial configurations.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP port and WebDAV settings
//   - Library: games and data directory roots
//   - Metadata: titledb region, language, and remote source
//   - Shop: shop index presentation (encryption flag)
//   - Log: logging level and format
//
// Environment variables map onto nested keys with underscores, e.g.
// SERVER_PORT, LIBRARY_GAMES_DIR, METADATA_REGION, SHOP_ENCRYPT.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
