// Package logger builds *slog.Logger instances for inputguard services and
// defines the attribute helpers used when reporting sanitizer events.
//
// New assembles a handler from functional options:
//
//   - WithDevelopment / WithStaging / WithProduction / WithEnvironment presets.
//   - WithFormat / WithTextFormatter / WithJSONFormatter output format.
//   - WithLevel, WithOutput, WithAttr, WithHandlerOptions.
//   - WithContextExtractors / WithContextValue to copy request-scoped values
//     (for example the request id) into every record.
//
// # Security level
//
// Detected attack signatures are logged at LevelSecurity, which sits between
// WARN and ERROR and is rendered as "SECURITY" by every logger created with New:
//
//	log.Log(ctx, logger.LevelSecurity, "xss pattern detected",
//	    logger.Input(raw),
//	    logger.Pattern(p),
//	)
//
// Input truncates untrusted values before they are written, so a large
// payload cannot inflate log volume.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.AppEnv, "inputguard"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
package logger
