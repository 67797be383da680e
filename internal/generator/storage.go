package generator

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/goliatone/go-seogen/pkg/interfaces"
	"github.com/goliatone/go-seogen/pkg/storage"
)

// artifactKind is sent to storage so backends can route pages, sitemap.xml
// and robots.txt differently.
type artifactKind string

const (
	kindPage    artifactKind = "page"
	kindSitemap artifactKind = "sitemap"
	kindRobots  artifactKind = "robots"
)

// artifact is one generated file, in the argument order of storage.OpWrite.
type artifact struct {
	Path        string
	Body        io.Reader
	Size        int64
	Kind        artifactKind
	ContentType string
	Language    string
	Checksum    string
	Metadata    map[string]string
}

func (a artifact) args() []any {
	meta := a.Metadata
	if meta == nil {
		meta = map[string]string{}
	}
	return []any{a.Path, a.Body, a.Size, string(a.Kind), a.ContentType, a.Language, a.Checksum, meta}
}

// artifactStore is the generator's view of an interfaces.StorageProvider.
type artifactStore interface {
	ensureDir(ctx context.Context, dir string) error
	put(ctx context.Context, a artifact) error
	get(ctx context.Context, file string) ([]byte, bool, error)
	remove(ctx context.Context, prefix string) error
}

// storeFor adapts provider. A nil provider discards writes and reads
// nothing, which keeps dry runs usable without storage.
func storeFor(provider interfaces.StorageProvider) artifactStore {
	if provider == nil {
		return discardStore{}
	}
	return providerStore{provider}
}

type providerStore struct {
	provider interfaces.StorageProvider
}

func (s providerStore) ensureDir(ctx context.Context, dir string) error {
	if dir = strings.TrimSpace(dir); dir == "" || dir == "." {
		return nil
	}
	_, err := s.provider.Exec(ctx, storage.OpEnsureDir, dir)
	return err
}

func (s providerStore) put(ctx context.Context, a artifact) error {
	switch {
	case strings.TrimSpace(a.Path) == "":
		return errors.New("generator: artifact has no path")
	case a.Body == nil:
		return errors.New("generator: artifact has no body")
	}
	_, err := s.provider.Exec(ctx, storage.OpWrite, a.args()...)
	return err
}

// get reports found=false when the provider returns no row for file.
func (s providerStore) get(ctx context.Context, file string) ([]byte, bool, error) {
	rows, err := s.provider.Query(ctx, storage.OpRead, file)
	if err != nil || rows == nil {
		return nil, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, false, nil
	}
	var body []byte
	if err := rows.Scan(&body); err != nil {
		return nil, false, err
	}
	return body, true, nil
}

func (s providerStore) remove(ctx context.Context, prefix string) error {
	_, err := s.provider.Exec(ctx, storage.OpRemove, prefix)
	return err
}

type discardStore struct{}

func (discardStore) ensureDir(context.Context, string) error           { return nil }
func (discardStore) put(context.Context, artifact) error               { return nil }
func (discardStore) get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (discardStore) remove(context.Context, string) error              { return nil }
