package storage

import "context"

// Operation names the generator issues against a Provider. Arguments are
// positional: ensure_dir(dir); write(path, io.Reader, size, category,
// content type, language, checksum, metadata); read(path), which yields at
// most one row holding the content; remove(prefix), where "" clears everything.
const (
	OpEnsureDir = "generator.ensure_dir"
	OpWrite     = "generator.write"
	OpRead      = "generator.read"
	OpRemove    = "generator.remove"
)

// Provider is an output backend addressed by operation name, keeping the
// query/exec shape so database backed stores can implement it unchanged.
type Provider interface {
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	Exec(ctx context.Context, query string, args ...any) (Result, error)
	Transaction(ctx context.Context, fn func(tx Transaction) error) error
}

// Rows iterates over the result of a read.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
}

// Result reports how many artifacts an operation touched.
type Result interface {
	RowsAffected() (int64, error)
	LastInsertId() (int64, error)
}

// Transaction groups the writes of one run.
type Transaction interface {
	Provider
	Commit() error
	Rollback() error
}
