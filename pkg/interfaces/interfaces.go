// Package interfaces holds the contracts hosts implement to plug their own
// logging and artifact storage into the generator.
package interfaces

import (
	"context"

	"github.com/goliatone/go-seogen/pkg/storage"
)

// Logger is the leveled logger every package logs through. Its method set
// matches github.com/goliatone/go-logger, so a glog logger satisfies it as is.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider hands out loggers by module name ("seogen.generator",
// "seogen.i18n", ...).
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is implemented by loggers that can carry fields such as
// run_id, page and language on every entry.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}

// StorageProvider receives generated pages, sitemap.xml and robots.txt.
type StorageProvider = storage.Provider

type (
	Rows        = storage.Rows
	Result      = storage.Result
	Transaction = storage.Transaction
)
