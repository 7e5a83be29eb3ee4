package storage

import (
	"context"
	"fmt"
	"log/slog"
	errs "webchat/errors"
	"webchat/infrastructure/storage/sqlite"
)

type Driver string

const (
	DriverBadger Driver = "badger"
	DriverSQLite Driver = "sqlite"
)

var _ IChatRepository = (*sqlite.Store)(nil)

type Options struct {
	Driver         Driver
	BadgerFilepath string
	SQLiteFilepath string
	ReadOnly       bool
}

// Open returns the repository selected by the driver.
// Read-only is only honoured by badger; sqlite opens normally.
func Open(ctx context.Context, log *slog.Logger, options Options) (IChatRepository, error) {
	switch options.Driver {
	case DriverBadger, "":
		return OpenBadger(options.BadgerFilepath, log, options.ReadOnly)
	case DriverSQLite:
		return sqlite.Open(ctx, options.SQLiteFilepath)
	default:
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownDriver, options.Driver)
	}
}
