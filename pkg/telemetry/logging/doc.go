// Package logging provides structured logging for the relay on top of
// log/slog, with optional redaction of upstream credentials (the LastFM API
// key travels in query strings and the Discord bot token in Authorization
// headers, both of which surface in logged URLs and errors).
package logging
