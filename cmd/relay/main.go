// Relay is the API proxy behind tame.wtf: a small HTTP server that fronts
// the LastFM and Discord APIs for the portfolio site, keeping credentials
// server-side and shielding the upstreams with rate limiting and timeouts.
//
// Usage:
//
//	# Start with defaults (credentials from environment variables)
//	relay run
//
//	# Start with a configuration file
//	relay run --config /etc/relay/config.yaml
//
//	# Validate a configuration file without starting
//	relay validate --config /etc/relay/config.yaml
//
//	# Show version information
//	relay version
package main

func main() {
	Execute()
}
