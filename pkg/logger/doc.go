// Package logger builds log/slog loggers for the utilkit packages and binary.
//
// New applies functional options over a JSON, info level default:
//
//	log := logger.New(
//		logger.WithEnvironment("development", "utilkit"),
//		logger.WithContextValue("request_id", requestIDKey{}),
//	)
//
// FromConfig turns the LOG_LEVEL, LOG_FORMAT and APP_ENV settings of Config
// into options. Context extractors run on every log call, so request scoped
// values show up without threading a derived logger through the call chain.
// ContextWithAttrs attaches attributes to a context directly:
//
//	ctx = logger.ContextWithAttrs(ctx, logger.Event("user.created"))
//	log.InfoContext(ctx, "listener done") // carries event=user.created
//
// The attribute helpers (Error, Key, Path, Field, Rule, ...) keep attribute
// names consistent across packages.
package logger
