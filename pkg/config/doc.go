// Package config provides configuration loading, validation, and hot reload
// for the relay.
//
// Configuration comes from three layers, lowest precedence first: built-in
// defaults, an optional YAML file, and environment variables. The well-known
// variable names the original deployment used (PORT, LASTFM_API_KEY,
// DEFAULT_LASTFM_USERNAME, DISCORD_BOT_TOKEN, DISCORD_USER_ID) are honored
// alongside the RELAY_-prefixed names.
//
// A process-wide singleton holds the active configuration; handlers read it
// through GetConfig on every request so a hot reload (see FileWatcher) takes
// effect without a restart.
package config
