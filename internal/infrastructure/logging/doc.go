// Package logging provides structured logging for taskdeck built on log/slog.
//
// All log output is structured (JSON in production, text for development)
// with service and version attached as default fields. Handlers are safe for
// concurrent use.
package logging
