package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-seogen/pkg/interfaces"
	"github.com/goliatone/go-seogen/pkg/storage"
)

// Operation names understood by the provider.
const (
	OpEnsureDir = storage.OpEnsureDir
	OpWrite     = storage.OpWrite
	OpRead      = storage.OpRead
	OpRemove    = storage.OpRemove
)

// ErrPathEscapesRoot is returned for paths resolving outside the storage root.
var ErrPathEscapesRoot = errors.New("filesystem: path escapes storage root")

const (
	dirMode  fs.FileMode = 0o755
	fileMode fs.FileMode = 0o644
)

// Storage is a storage provider writing generator artifacts below a root
// directory. Writes replace files whole through a temporary file and a
// rename, so readers never observe partial content.
type Storage struct {
	root string
}

var _ interfaces.StorageProvider = (*Storage)(nil)

// NewStorage returns a provider rooted at root.
func NewStorage(root string) *Storage {
	return &Storage{root: filepath.Clean(root)}
}

// Root returns the directory artifacts are written below.
func (s *Storage) Root() string {
	return s.root
}

func (s *Storage) Query(ctx context.Context, query string, args ...any) (interfaces.Rows, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if query != OpRead {
		return nil, fmt.Errorf("filesystem: unsupported query %q", query)
	}
	full, err := s.resolve(args)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if errors.Is(err, fs.ErrNotExist) {
		return &fileRows{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &fileRows{data: data, present: true}, nil
}

func (s *Storage) Exec(ctx context.Context, query string, args ...any) (interfaces.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := s.resolve(args)
	if err != nil {
		return nil, err
	}

	switch query {
	case OpEnsureDir:
		return emptyResult{}, os.MkdirAll(full, dirMode)
	case OpWrite:
		if len(args) < 2 {
			return nil, fmt.Errorf("filesystem: %s requires path and reader", OpWrite)
		}
		reader, ok := args[1].(io.Reader)
		if !ok || reader == nil {
			return nil, fmt.Errorf("filesystem: %s expects io.Reader content, got %T", OpWrite, args[1])
		}
		written, err := replaceFile(full, reader)
		if err != nil {
			return nil, err
		}
		return writeResult{bytes: written}, nil
	case OpRemove:
		if full == s.root {
			return emptyResult{}, removeContents(full)
		}
		err := os.RemoveAll(full)
		if errors.Is(err, fs.ErrNotExist) {
			return emptyResult{}, nil
		}
		return emptyResult{}, err
	default:
		return nil, fmt.Errorf("filesystem: unsupported operation %q", query)
	}
}

// Transaction runs fn directly; filesystem writes are individually atomic.
func (s *Storage) Transaction(ctx context.Context, fn func(tx interfaces.Transaction) error) error {
	if fn == nil {
		return nil
	}
	return fn(&transaction{storage: s})
}

// resolve maps the leading path argument to an absolute location below root.
func (s *Storage) resolve(args []any) (string, error) {
	if len(args) == 0 {
		return "", errors.New("filesystem: operation requires a path argument")
	}
	rel, ok := args[0].(string)
	if !ok {
		return "", fmt.Errorf("filesystem: path must be a string, got %T", args[0])
	}
	rel = filepath.ToSlash(strings.TrimSpace(rel))
	for _, segment := range strings.Split(rel, "/") {
		if segment == ".." {
			return "", fmt.Errorf("%w: %s", ErrPathEscapesRoot, rel)
		}
	}
	rel = path.Clean("/" + rel)
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" {
		return s.root, nil
	}
	return filepath.Join(s.root, filepath.FromSlash(rel)), nil
}

func replaceFile(full string, reader io.Reader) (int64, error) {
	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return 0, err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(full)+".*.tmp")
	if err != nil {
		return 0, err
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = os.Remove(tmpName)
	}

	written, err := io.Copy(tmp, reader)
	if err != nil {
		_ = tmp.Close()
		cleanup()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return 0, err
	}
	if err := os.Chmod(tmpName, fileMode); err != nil {
		cleanup()
		return 0, err
	}
	if err := os.Rename(tmpName, full); err != nil {
		cleanup()
		return 0, err
	}
	return written, nil
}

// removeContents empties dir but keeps it, so a configured output root
// survives a clean.
func removeContents(dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

type transaction struct {
	storage *Storage
}

func (tx *transaction) Query(ctx context.Context, query string, args ...any) (interfaces.Rows, error) {
	return tx.storage.Query(ctx, query, args...)
}

func (tx *transaction) Exec(ctx context.Context, query string, args ...any) (interfaces.Result, error) {
	return tx.storage.Exec(ctx, query, args...)
}

func (tx *transaction) Transaction(context.Context, func(interfaces.Transaction) error) error {
	return errors.New("filesystem: nested transactions not supported")
}

func (tx *transaction) Commit() error   { return nil }
func (tx *transaction) Rollback() error { return nil }

type emptyResult struct{}

func (emptyResult) RowsAffected() (int64, error) { return 0, nil }
func (emptyResult) LastInsertId() (int64, error) { return 0, nil }

type writeResult struct {
	bytes int64
}

func (r writeResult) RowsAffected() (int64, error) { return r.bytes, nil }
func (writeResult) LastInsertId() (int64, error)   { return 0, nil }

// fileRows yields a single row holding the file content, or none when the
// file does not exist.
type fileRows struct {
	data    []byte
	present bool
	read    bool
}

func (r *fileRows) Next() bool {
	if !r.present || r.read {
		return false
	}
	r.read = true
	return true
}

func (r *fileRows) Scan(dest ...any) error {
	if len(dest) == 0 {
		return errors.New("filesystem: scan requires destination")
	}
	target, ok := dest[0].(*[]byte)
	if !ok {
		return fmt.Errorf("filesystem: unsupported scan destination %T", dest[0])
	}
	*target = append((*target)[:0], r.data...)
	return nil
}

func (r *fileRows) Close() error { return nil }
