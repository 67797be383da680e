package i18n

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-seogen/internal/logging"
	"github.com/goliatone/go-seogen/pkg/interfaces"
)

// TextCodeBundleMalformed tags errors raised for unreadable bundle files.
const TextCodeBundleMalformed = "BUNDLE_MALFORMED"

// ErrBundleMalformed reports a bundle file that exists but cannot be used.
var ErrBundleMalformed = errors.New("i18n: malformed translation bundle")

const pageSEOKey = "pageSEO"

// Store loads one `{code}.json` bundle per language from a directory.
type Store struct {
	dir    string
	logger interfaces.Logger
	schema *jsonschema.Schema
}

// StoreOption customises a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for missing-bundle warnings.
func WithLogger(logger interfaces.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore constructs a store reading bundles from dir.
func NewStore(dir string, opts ...StoreOption) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("i18n: bundle directory cannot be empty")
	}
	schema, err := compileBundleSchema()
	if err != nil {
		return nil, err
	}
	store := &Store{
		dir:    dir,
		logger: logging.NoOp(),
		schema: schema,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	return store, nil
}

// PathFor returns the bundle file path for a language code.
func (s *Store) PathFor(code string) string {
	return filepath.Join(s.dir, code+".json")
}

// Load reads the bundle of every language in codes. A missing file logs a
// warning and yields an empty bundle; a malformed file aborts the load.
func (s *Store) Load(ctx context.Context, codes []string) (Bundles, error) {
	if s == nil {
		return nil, errors.New("i18n: store not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	logger := s.logger.WithContext(ctx)
	bundles := make(Bundles, len(codes))
	for _, code := range codes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, seen := bundles[code]; seen {
			continue
		}
		bundle, err := s.loadOne(code, logger)
		if err != nil {
			return nil, err
		}
		bundles[code] = bundle
	}
	return bundles, nil
}

func (s *Store) loadOne(code string, logger interfaces.Logger) (*Bundle, error) {
	path := s.PathFor(code)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("i18n.bundle.missing", "language", code, "path", path)
		bundle := EmptyBundle(code)
		bundle.Path = path
		bundle.Missing = true
		return bundle, nil
	}
	if err != nil {
		return nil, malformed(code, path, err, nil)
	}

	bundle, err := s.decode(code, path, data)
	if err != nil {
		return nil, err
	}
	logger.Debug("i18n.bundle.loaded",
		"language", code,
		"path", path,
		"strings", len(bundle.Strings),
		"pages", len(bundle.PageSEO),
	)
	return bundle, nil
}

func (s *Store) decode(code, path string, data []byte) (*Bundle, error) {
	var raw any
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&raw); err != nil {
		return nil, malformed(code, path, err, nil)
	}
	if decoder.More() {
		return nil, malformed(code, path, errors.New("trailing data after bundle object"), nil)
	}

	if err := s.schema.Validate(raw); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return nil, malformed(code, path, err, schemaIssues(validationErr))
		}
		return nil, malformed(code, path, err, nil)
	}

	// schema validation guarantees the shapes asserted below
	document := raw.(map[string]any)
	bundle := EmptyBundle(code)
	bundle.Path = path
	for key, value := range document {
		if key == pageSEOKey {
			continue
		}
		if text, ok := value.(string); ok {
			bundle.Strings[key] = text
		}
	}

	pages, _ := document[pageSEOKey].(map[string]any)
	for page, value := range pages {
		record, _ := value.(map[string]any)
		bundle.PageSEO[page] = SEOOverride{
			Title:         stringField(record, "title"),
			Description:   stringField(record, "description"),
			Keywords:      stringField(record, "keywords"),
			OGTitle:       stringField(record, "ogTitle"),
			OGDescription: stringField(record, "ogDescription"),
		}
	}
	return bundle, nil
}

func stringField(record map[string]any, key string) string {
	value, _ := record[key].(string)
	return value
}

func malformed(code, path string, cause error, issues []string) error {
	metadata := map[string]any{
		"language": code,
		"path":     path,
	}
	if len(issues) > 0 {
		metadata["issues"] = issues
	}
	return goerrors.Wrap(
		fmt.Errorf("%w: %w", ErrBundleMalformed, cause),
		goerrors.CategoryValidation,
		fmt.Sprintf("i18n: bundle %s is malformed", path),
	).WithTextCode(TextCodeBundleMalformed).WithMetadata(metadata)
}
