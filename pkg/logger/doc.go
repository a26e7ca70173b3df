// Package logger builds the service's slog.Logger.
//
// The handler is wrapped in a decorator that runs ContextExtractor functions
// on every record, which is how the request id, the resolved tenant and the
// authenticated user end up on log lines without being passed around:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "shopadmin"),
//		logger.WithContextExtractors(
//			requestid.LoggerExtractor,
//			tenant.LoggerExtractor(),
//			tenant.UserLoggerExtractor(),
//		),
//	)
package logger
