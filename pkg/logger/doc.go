// Package logger builds *slog.Logger instances from functional options.
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "chromeua"),
//	    logger.WithLevelName("debug"),
//	)
//	log.Info("registry updated", logger.Revision(rev), logger.Count("agents", n))
//
// Output is JSON unless the text format is selected, either directly with
// WithFormat(FormatText) or through development defaults in WithEnvironment.
// NewNop returns a logger that discards everything; libraries use it when the
// caller does not provide one.
//
// Attribute helpers in attr.go keep key names consistent. Error returns an
// empty attribute for a nil error, so it can be passed unconditionally.
package logger
