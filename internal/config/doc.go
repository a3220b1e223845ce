// Package config loads vitrine's storefront and local-storage settings.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. A .env file in the working directory is loaded into the environment
//  2. If a path is explicitly provided, use it
//  3. Otherwise, use ~/.config/vitrine/config.toml (default)
//  4. If the config file doesn't exist, fall back to hardcoded defaults
//  5. VITRINE_* environment variables override whatever the file said
//
// # TOML Format
//
//	shop_domain = "demo.myshopify.com"
//	api_version = "2023-07"
//	storefront_token = "public-token"
//	data_dir = "~/.local/share/vitrine"
//	request_timeout_seconds = 10
//	page_size = 20
//	log_level = "info"
//	log_format = "json"
//
// Every field is optional. endpoint, when set, replaces the URL derived from
// shop_domain and api_version, which is how the mock storefront is reached:
//
//	endpoint = "http://127.0.0.1:8787/api/2023-07/graphql.json"
//
// # Derived Paths
//
//   - Favorites database: <data_dir>/favorites.db
//   - Log file: <data_dir>/vitrine.log
//
// Missing config files are NOT an error. Without a shop domain or endpoint,
// Endpoint reports an error and the app refuses to start.
package config
