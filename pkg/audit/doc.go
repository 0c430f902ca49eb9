// Package audit records completed requests for later inspection.
//
// Two backends implement the Store interface: a bounded in-memory store
// (the default) and a durable SQLite store. Request query strings are never
// recorded because the LastFM API key travels in them. A cron-scheduled
// Pruner enforces the retention period.
package audit
