package storage

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

var _ badger.Logger = badgerLogger{}

// badgerLogger routes badger's printf style logs into slog.
// Badger is chatty at info level, so info is demoted to debug.
type badgerLogger struct {
	log *slog.Logger
}

func NewBadgerLogger(log *slog.Logger) badger.Logger {
	return badgerLogger{log: log.With("component", "badger")}
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error(line(format, args...))
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn(line(format, args...))
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug(line(format, args...))
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Debug(line(format, args...))
}

func line(format string, args ...interface{}) string {
	return strings.TrimSpace(fmt.Sprintf(format, args...))
}
