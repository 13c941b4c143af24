// Package logging configures structured logging on top of log/slog.
//
// New returns a *slog.Logger in JSON or text format. Records logged with a
// context pick up the document path, operation ID and command name stored
// in it:
//
//	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging))
//	ctx = logging.WithDocument(ctx, "sales.yaml")
//	logger.InfoContext(ctx, "design loaded", "elements", n)
//
// Components tag their output with logging.Component(logger, "edit").
package logging
