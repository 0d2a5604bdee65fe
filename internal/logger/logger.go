package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the process-wide logger, replaced by Init
var Logger = log.Logger

// Config controls log level and output format
type Config struct {
	Level        string    `mapstructure:"level" yaml:"level"`                 // debug, info, warn, error
	Format       string    `mapstructure:"format" yaml:"format"`               // json or pretty
	TimeFormat   string    `mapstructure:"time_format" yaml:"time_format"`     // defaults to RFC3339
	ReportCaller bool      `mapstructure:"report_caller" yaml:"report_caller"` // add file:line
	Output       io.Writer `mapstructure:"-" yaml:"-"`                         // defaults to stdout
}

// Init builds a logger from config and installs it as the global logger
func Init(config Config) *zerolog.Logger {
	level, err := zerolog.ParseLevel(config.Level)
	if err != nil || config.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	out := config.Output
	if out == nil {
		out = os.Stdout
	}

	timeFormat := config.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}
	zerolog.TimeFieldFormat = timeFormat

	var output io.Writer = out
	if config.Format == "pretty" {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: timeFormat,
		}
	}

	ctx := zerolog.New(output).Level(level).With().Timestamp()
	if config.ReportCaller {
		ctx = ctx.Caller()
	}

	Logger = ctx.Logger()
	log.Logger = Logger
	return &Logger
}

// Debug starts a debug-level event
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// Info starts an info-level event
func Info() *zerolog.Event {
	return Logger.Info()
}

// Warn starts a warn-level event
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// Error starts an error-level event
func Error() *zerolog.Event {
	return Logger.Error()
}

// Fatal starts a fatal event; the process exits after it is sent
func Fatal() *zerolog.Event {
	return Logger.Fatal()
}

// Ctx returns the logger stored in ctx, or a disabled logger
func Ctx(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext stores the global logger in ctx
func WithContext(ctx context.Context) context.Context {
	return Logger.WithContext(ctx)
}
