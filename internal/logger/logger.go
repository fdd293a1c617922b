package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ContextKey is the type for context keys used by the logger
type ContextKey string

const (
	// LoggerKey is the context key for the logger instance
	LoggerKey ContextKey = "logger"
)

// New creates a console logger at the given level. Unknown levels fall back to info.
func New(level string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// NewWithWriter creates a JSON logger with a custom writer
func NewWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// ParseLevel converte o nível textual; vazio ou inválido vira info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// WithContext adds the logger to the context
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from the context or returns a default logger
func FromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(LoggerKey).(zerolog.Logger); ok {
		return logger
	}
	return New("info")
}

// Events adapta um zerolog.Logger para a interface de mensagens da aplicação.
type Events struct {
	Log zerolog.Logger
}

func (e Events) LogInfo(format string, a ...interface{}) {
	e.Log.Info().Msg(fmt.Sprintf(format, a...))
}

func (e Events) LogWarning(format string, a ...interface{}) {
	e.Log.Warn().Msg(fmt.Sprintf(format, a...))
}

func (e Events) LogError(format string, a ...interface{}) {
	e.Log.Error().Msg(fmt.Sprintf(format, a...))
}

func (e Events) LogSuccess(format string, a ...interface{}) {
	e.Log.Info().Bool("success", true).Msg(fmt.Sprintf(format, a...))
}
