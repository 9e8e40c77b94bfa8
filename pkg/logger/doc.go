// Package logger builds the application's structured logger.
//
// Logs are written as JSON (or text) through log/slog. Context extractors add
// request-scoped attributes such as the request ID to every record, and an
// optional Sentry handler receives warnings and errors when SENTRY_DSN is set.
//
//	log := logger.New(logger.Config{Level: "debug"}, requestIDExtractor)
//	log.InfoContext(ctx, "user signed in", slog.String("user_id", id))
//
// Libraries in this module accept a *slog.Logger and default to [NewNope].
package logger
