// Package logger builds *slog.Logger values and defines the attribute helpers
// used for structured logging throughout the app.
//
//	log := logger.New(logger.WithProduction("rango")) // JSON, info, stdout
//	log := logger.New(logger.WithDevelopment("rango")) // text, debug
//
// Helpers such as Error, RequestID and ClientID yield an empty attribute for a
// nil or empty value, which slog skips:
//
//	log.WarnContext(ctx, "handshake failed", logger.Component("identity"), logger.Error(err))
//
// Discard returns a logger that writes nothing. Constructors use it as their
// default so a nil logger is never dereferenced.
package logger
