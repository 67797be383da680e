package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"path"
	"strings"
)

// Site-wide artifacts written at the root of the output directory.
const (
	sitemapFile = "sitemap.xml"
	robotsFile  = "robots.txt"
)

// outputLayout maps relative artifact paths below the output directory and
// remembers which parent directories already exist during a run.
type outputLayout struct {
	root    string
	store   artifactStore
	created map[string]bool
}

func newOutputLayout(root string, store artifactStore) *outputLayout {
	return &outputLayout{
		root:    strings.Trim(strings.TrimSpace(root), "/"),
		store:   store,
		created: map[string]bool{},
	}
}

func (l *outputLayout) path(rel string) string {
	rel = strings.TrimLeft(rel, "/")
	if l.root == "" {
		return rel
	}
	return path.Join(l.root, rel)
}

// write creates the parent directory of a.Path once per run, then stores a.
func (l *outputLayout) write(ctx context.Context, a artifact) error {
	if dir := path.Dir(a.Path); dir != "." && dir != "/" && !l.created[dir] {
		if err := l.store.ensureDir(ctx, dir); err != nil {
			return err
		}
		l.created[dir] = true
	}
	return l.store.put(ctx, a)
}

func checksum(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
