package logger

import (
	"os"

	"github.com/rs/zerolog"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

func init() {
	// Warnings and errors only by default so command output stays clean.
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

// SetVerbose lowers the log level to debug.
func SetVerbose(verbose bool) {
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}

// DebugCF logs a debug message for a component with structured fields.
func DebugCF(component, msg string, fields map[string]any) {
	log.Debug().Str("component", component).Fields(fields).Msg(msg)
}

// InfoCF logs an info message for a component with structured fields.
func InfoCF(component, msg string, fields map[string]any) {
	log.Info().Str("component", component).Fields(fields).Msg(msg)
}

// WarnCF logs a warning for a component with structured fields.
func WarnCF(component, msg string, fields map[string]any) {
	log.Warn().Str("component", component).Fields(fields).Msg(msg)
}

// ErrorCF logs an error for a component with structured fields.
func ErrorCF(component, msg string, fields map[string]any) {
	log.Error().Str("component", component).Fields(fields).Msg(msg)
}
