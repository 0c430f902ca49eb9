// Package handlers contains the HTTP handlers for the relay's endpoints:
// the LastFM and Discord proxies, the root banner, the directory-carrying
// 404 fallback, and the health and readiness probes.
//
// The proxy handlers read upstream credentials from the live configuration
// on every request rather than capturing them at construction. A relay
// booted without credentials answers each affected request with a 500 and
// a symbolic code, and starts serving normally as soon as a configuration
// reload supplies them.
package handlers
