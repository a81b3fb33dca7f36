// Package config provides configuration management for inventory-sync.
//
// It utilizes Viper for loading configuration from environment variables,
// the .env file and an optional config.yaml.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: target inventory database (mysql or sqlite)
//   - Storage: S3/MinIO credentials, bucket and prefixes
//   - Log: Logging level and format
//   - Device42: source host, credentials and source mode (api or export)
//   - Sync: mapping heuristics (defaults, facility and role prefixes, hostname mapping, DNS)
//   - Reconcile: delete_on_sync and the per-operation timeout
//
// Every key maps to an environment variable by upper-casing it and replacing dots
// with underscores, e.g. sync.defaults.site_status is SYNC_DEFAULTS_SITE_STATUS.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Sync.FacilityPrepend)
package config
