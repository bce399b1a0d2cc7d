// Package log builds the [log/slog] handlers used for diagnostics about
// the logging context itself: viewers added and removed, surfaces that fail
// to open, stylesheets that fail to load.
//
// Diagnostics are separate from the messages routed to viewers. Pass the
// resulting logger to [go.jacobcolvin.com/logview/logger.WithLogger]:
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//
//	handler, err := cfg.NewHandler(os.Stderr)
//	if err != nil {
//		return err
//	}
//
//	lc := logger.New(logger.WithLogger(slog.New(handler)))
//
// [FormatJSON] and [FormatLogfmt] use the standard library handlers.
// [FormatText] uses [charm.land/log/v2].
package log
