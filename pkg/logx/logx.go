package logx

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Level mirrors zerolog's levels so callers don't import zerolog directly.
type Level = zerolog.Level

const (
	LevelDebug = zerolog.DebugLevel
	LevelInfo  = zerolog.InfoLevel
	LevelWarn  = zerolog.WarnLevel
	LevelError = zerolog.ErrorLevel
)

var logger = zerolog.New(zerolog.ConsoleWriter{
	Out:        os.Stdout,
	TimeFormat: time.RFC3339,
}).With().Timestamp().Logger()

// SetLevel sets the global minimum log level.
func SetLevel(level Level) {
	zerolog.SetGlobalLevel(level)
}

// UseJSON switches output from the console writer to plain JSON lines.
func UseJSON() {
	logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func Debug(msg string)                  { logger.Debug().Msg(msg) }
func Debugf(format string, args ...any) { logger.Debug().Msgf(format, args...) }
func Info(msg string)                   { logger.Info().Msg(msg) }
func Infof(format string, args ...any)  { logger.Info().Msgf(format, args...) }
func Warn(msg string)                   { logger.Warn().Msg(msg) }
func Warnf(format string, args ...any)  { logger.Warn().Msgf(format, args...) }
func Error(msg string)                  { logger.Error().Msg(msg) }
func Errorf(format string, args ...any) { logger.Error().Msgf(format, args...) }
func Fatal(msg string)                  { logger.Fatal().Msg(msg) }
func Fatalf(format string, args ...any) { logger.Fatal().Msgf(format, args...) }

// Errorw logs an error with a wrapped cause attached as a field.
func Errorw(msg string, err error) {
	logger.Error().Err(err).Msg(msg)
}

// With returns a zerolog sub-logger carrying a component field, for packages
// that log frequently enough to warrant their own context.
func With(component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}
