package generator

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spyStore struct {
	discardStore
	dirs   []string
	puts   map[string]string
	dirErr error
}

func (s *spyStore) ensureDir(_ context.Context, dir string) error {
	s.dirs = append(s.dirs, dir)
	return s.dirErr
}

func (s *spyStore) put(_ context.Context, a artifact) error {
	body, err := io.ReadAll(a.Body)
	if err != nil {
		return err
	}
	if s.puts == nil {
		s.puts = map[string]string{}
	}
	s.puts[a.Path] = string(body)
	return nil
}

func TestOutputLayoutPath(t *testing.T) {
	cases := []struct{ root, rel, want string }{
		{"dist", "index.html", "dist/index.html"},
		{" /dist/ ", "/fr/index.html", "dist/fr/index.html"},
		{"", "/sitemap.xml", "sitemap.xml"},
		{"build/site", "ja/practice.html", "build/site/ja/practice.html"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, newOutputLayout(tc.root, discardStore{}).path(tc.rel), "%q + %q", tc.root, tc.rel)
	}
}

func TestOutputLayoutCreatesEachDirOnce(t *testing.T) {
	store := &spyStore{}
	layout := newOutputLayout("dist", store)
	ctx := context.Background()

	for _, file := range []string{"fr/index.html", "fr/practice.html", "index.html", "ja/index.html"} {
		target := layout.path(file)
		require.NoError(t, layout.write(ctx, artifact{Path: target, Body: strings.NewReader(file)}))
	}

	assert.Equal(t, []string{"dist/fr", "dist", "dist/ja"}, store.dirs)
	assert.Equal(t, "fr/practice.html", store.puts["dist/fr/practice.html"])
}

func TestOutputLayoutStopsOnDirError(t *testing.T) {
	store := &spyStore{dirErr: errors.New("read-only")}
	layout := newOutputLayout("", store)

	err := layout.write(context.Background(), artifact{Path: "fr/index.html", Body: strings.NewReader("x")})
	require.ErrorContains(t, err, "read-only")
	assert.Empty(t, store.puts)

	require.NoError(t, layout.write(context.Background(), artifact{Path: "sitemap.xml", Body: strings.NewReader("x")}))
	assert.Equal(t, []string{"fr"}, store.dirs, "root-level files need no directory")
}

func TestChecksumIsHexSHA256(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", checksum(nil))
	assert.NotEqual(t, checksum([]byte("a")), checksum([]byte("b")))
}
