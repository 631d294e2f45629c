// Package logger builds *slog.Logger instances for the form-data server and
// its libraries.
//
// New applies a list of Option values on top of production defaults (JSON,
// INFO, stdout) and wraps the chosen slog handler with a LogHandlerDecorator
// that pulls request-scoped values, such as the request id, out of the
// context on every record.
//
// The attribute helpers in attr.go keep key names consistent between the
// parser, the storage backends and the HTTP layer:
//
//	log.DebugContext(ctx, "part parsed",
//		logger.Field(name),
//		logger.Filename(filename),
//		logger.Bytes(len(content)),
//	)
//
// Discard returns a logger that drops everything; libraries use it when the
// caller did not supply one.
package logger
