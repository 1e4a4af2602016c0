// Package config handles loading and parsing portal's configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/portal/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. Apply PORTAL_* environment overrides on top of whatever was loaded
//
// # Default Values
//
//   - Config file: ~/.config/portal/config.toml
//   - Catalog endpoint: https://rickandmortyapi.com/api
//   - Data directory: ~/.local/share/portal
//   - Slice store: <data_dir>/portal.db
//   - Log directory: <data_dir>/logs
//   - Request timeout: 10 seconds
//   - Request rate: 4 per second
//
// # TOML Format
//
// Example config.toml:
//
//	base_url = "https://rickandmortyapi.com/api"
//	data_dir = "~/.local/share/portal"
//	request_timeout_seconds = 10
//	rate_per_second = 4.0
//	log_level = "info"
//
// All fields are optional. Tilde expansion is performed automatically.
//
// # Environment Overrides
//
// Every field has a PORTAL_-prefixed environment variable that wins over
// the file: PORTAL_BASE_URL, PORTAL_DATA_DIR, PORTAL_TIMEOUT_SECONDS,
// PORTAL_RATE_PER_SECOND, PORTAL_LOG_LEVEL.
//
// # Error Handling
//
// Load returns errors for path expansion failures, file read errors
// (except os.ErrNotExist, which triggers defaults), and TOML parsing
// errors. A missing config file is NOT an error; portal works
// out-of-the-box with no configuration at all.
package config
