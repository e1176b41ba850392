// Package logging writes log lines to a standard logger and forwards them to
// Rollbar when a token is configured.
package logging

import (
	"log"
	"strconv"

	"github.com/rollbar/rollbar-go"

	"familyaid/internal/models"
)

// Logger is the logging interface used across the server
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Options configures the Rollbar side of the logger
type Options struct {
	RollbarToken string
	Environment  string
	ServerHost   string
	CodeVersion  string
	Debug        bool
}

// RollbarLogger prints every entry to std and reports it to Rollbar
type RollbarLogger struct {
	std     *log.Logger
	debug   bool
	enabled bool
}

var _ Logger = (*RollbarLogger)(nil)

// New creates a logger. Without a token, Rollbar reporting is disabled.
func New(std *log.Logger, opts Options) *RollbarLogger {
	enabled := opts.RollbarToken != ""
	rollbar.SetEnabled(enabled)
	if enabled {
		rollbar.SetToken(opts.RollbarToken)
		rollbar.SetEnvironment(opts.Environment)
		rollbar.SetServerHost(opts.ServerHost)
		rollbar.SetCodeVersion(opts.CodeVersion)
	}
	return &RollbarLogger{std: std, debug: opts.Debug, enabled: enabled}
}

// Close flushes pending Rollbar items
func (l *RollbarLogger) Close() {
	if l.enabled {
		rollbar.Close()
	}
}

// expected args: error, map[string]any, *models.User
func (l *RollbarLogger) prepare(msg string, args []any) []any {
	var usrSet bool
	out := make([]any, 0, len(args)+1)
	out = append(out, msg)
	for _, arg := range args {
		if usr, ok := arg.(*models.User); ok {
			if !usrSet && usr != nil {
				rollbar.SetPerson(formatID(usr.ID), usr.Username, usr.Email)
				usrSet = true
			}
			continue
		}
		out = append(out, arg)
	}
	if !usrSet {
		rollbar.ClearPerson()
	}
	return out
}

func (l *RollbarLogger) print(level, msg string, args []any) {
	l.std.Printf("[%s] %s", level, msg)
	for _, arg := range args {
		if _, ok := arg.(*models.User); ok {
			continue
		}
		l.std.Printf("  %+v", arg)
	}
}

func (l *RollbarLogger) Debug(msg string, args ...any) {
	if !l.debug {
		return
	}
	l.print("DEBUG", msg, args)
}

func (l *RollbarLogger) Info(msg string, args ...any) {
	if l.enabled {
		rollbar.Info(l.prepare(msg, args)...)
	}
	l.print("INFO", msg, args)
}

func (l *RollbarLogger) Warn(msg string, args ...any) {
	if l.enabled {
		rollbar.Warning(l.prepare(msg, args)...)
	}
	l.print("WARN", msg, args)
}

func (l *RollbarLogger) Error(msg string, args ...any) {
	if l.enabled {
		rollbar.Error(l.prepare(msg, args)...)
	}
	l.print("ERROR", msg, args)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
