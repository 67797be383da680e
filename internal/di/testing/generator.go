package ditesting

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/goliatone/go-seogen/internal/di"
	"github.com/goliatone/go-seogen/internal/runtimeconfig"
	"github.com/goliatone/go-seogen/pkg/interfaces"
	"github.com/goliatone/go-seogen/pkg/storage"
)

// MemoryStorage is an interfaces.StorageProvider that keeps generated
// artifacts in a map and logs the operations it served.
type MemoryStorage struct {
	mu    sync.Mutex
	files map[string][]byte
	ops   []string
}

var _ interfaces.StorageProvider = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{files: map[string][]byte{}}
}

// NewGeneratorContainer builds a container whose generator writes into a
// fresh MemoryStorage.
func NewGeneratorContainer(cfg runtimeconfig.Config, opts ...di.Option) (*di.Container, *MemoryStorage, error) {
	mem := NewMemoryStorage()
	container, err := di.NewContainer(cfg, append([]di.Option{di.WithGeneratorStorage(mem)}, opts...)...)
	if err != nil {
		return nil, nil, err
	}
	return container, mem, nil
}

// Files returns the stored artifacts keyed by output path.
func (m *MemoryStorage) Files() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.files))
	for file, body := range m.files {
		out[file] = string(body)
	}
	return out
}

// Ops lists the storage operations received, in order.
func (m *MemoryStorage) Ops() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.ops...)
}

func (m *MemoryStorage) Exec(_ context.Context, op string, args ...any) (interfaces.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, op)

	switch op {
	case storage.OpWrite:
		return m.write(args)
	case storage.OpRemove:
		prefix := ""
		if len(args) > 0 {
			prefix, _ = args[0].(string)
		}
		prefix = strings.Trim(prefix, "/")
		for file := range m.files {
			if prefix == "" || file == prefix || strings.HasPrefix(file, prefix+"/") {
				delete(m.files, file)
			}
		}
	}
	return memoryResult(0), nil
}

func (m *MemoryStorage) write(args []any) (interfaces.Result, error) {
	if len(args) < 2 {
		return nil, errors.New("memory storage: write needs a path and a body")
	}
	file, _ := args[0].(string)
	body, ok := args[1].(io.Reader)
	if !ok {
		return nil, fmt.Errorf("memory storage: body is %T, not an io.Reader", args[1])
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	m.files[file] = data
	return memoryResult(len(data)), nil
}

func (m *MemoryStorage) Query(_ context.Context, op string, args ...any) (interfaces.Rows, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, op)

	rows := &memoryRows{}
	if op == storage.OpRead && len(args) > 0 {
		file, _ := args[0].(string)
		if data, ok := m.files[file]; ok {
			rows.pending = [][]byte{append([]byte(nil), data...)}
		}
	}
	return rows, nil
}

// Transaction runs fn against the same storage; there is no rollback.
func (m *MemoryStorage) Transaction(_ context.Context, fn func(tx interfaces.Transaction) error) error {
	if fn == nil {
		return nil
	}
	return fn(memoryTx{m})
}

type memoryRows struct {
	pending [][]byte
	current []byte
}

func (r *memoryRows) Next() bool {
	if len(r.pending) == 0 {
		return false
	}
	r.current, r.pending = r.pending[0], r.pending[1:]
	return true
}

func (r *memoryRows) Scan(dest ...any) error {
	if r.current == nil || len(dest) == 0 {
		return errors.New("memory storage: scan without a row")
	}
	target, ok := dest[0].(*[]byte)
	if !ok {
		return fmt.Errorf("memory storage: cannot scan into %T", dest[0])
	}
	*target = r.current
	return nil
}

func (r *memoryRows) Close() error { return nil }

type memoryResult int64

func (r memoryResult) RowsAffected() (int64, error) { return int64(r), nil }
func (memoryResult) LastInsertId() (int64, error)   { return 0, nil }

type memoryTx struct {
	*MemoryStorage
}

func (memoryTx) Commit() error   { return nil }
func (memoryTx) Rollback() error { return nil }
