// Package logging wraps log/slog construction for the relay.
//
// Components accept a *slog.Logger in their constructors and log structured
// key/value pairs:
//
//	logger := logging.New(logging.Config{Level: logging.LevelInfo})
//	logger.Info("matched", "content", payload)
//
// Use Nop() where a logger is required but output is unwanted, typically in
// tests.
package logging
