// Package cli provides command-line utilities for the relay command:
// typed command errors and signal handling helpers for graceful shutdown.
package cli
