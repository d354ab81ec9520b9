// Package utils exposes reusable helpers consumed by the srcaudit commands.
//
// It houses ConfigurationLoader and LoggerFactory abstractions that integrate
// Viper, environment variables, and zap logging for the CLI, together with the
// FlushingWriter used for report output and CommandContextAccessor for values
// shared through cobra command contexts.
package utils
