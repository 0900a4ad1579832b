package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel represents the log level
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
)

// Config represents logger configuration
type Config struct {
	// Level is the minimum level that will be written
	Level LogLevel
	// Pretty enables human-readable console output instead of JSON
	Pretty bool
	// Output is the output writer (defaults to os.Stdout)
	Output io.Writer
}

// Configure sets up the global zerolog logger with the provided config.
func Configure(config Config) {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	zerolog.TimeFieldFormat = time.RFC3339

	var level zerolog.Level
	switch config.Level {
	case DebugLevel:
		level = zerolog.DebugLevel
	case WarnLevel:
		level = zerolog.WarnLevel
	case ErrorLevel:
		level = zerolog.ErrorLevel
	case FatalLevel:
		level = zerolog.FatalLevel
	default:
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	output := config.Output
	if config.Pretty {
		output = zerolog.ConsoleWriter{Out: config.Output, TimeFormat: time.RFC3339}
	}

	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

// Debug starts a debug level log event on the global logger.
func Debug() *zerolog.Event {
	return log.Debug()
}

// Info starts an info level log event on the global logger.
func Info() *zerolog.Event {
	return log.Info()
}

// Warn starts a warn level log event on the global logger.
func Warn() *zerolog.Event {
	return log.Warn()
}

// Error starts an error level log event on the global logger.
func Error() *zerolog.Event {
	return log.Error()
}

// Fatal starts a fatal level log event on the global logger.
func Fatal() *zerolog.Event {
	return log.Fatal()
}
