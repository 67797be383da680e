// Package generator exposes the static page generation API for hosts that wire
// their own storage or template source instead of going through seogen.New.
// Use NewService with Config and Dependencies to render language-pinned pages and sitemaps.
package generator

import (
	"github.com/goliatone/go-seogen/internal/adapters/filesystem"
	internal "github.com/goliatone/go-seogen/internal/generator"
	"github.com/goliatone/go-seogen/internal/htmlpatch"
	"github.com/goliatone/go-seogen/internal/i18n"
	"github.com/goliatone/go-seogen/internal/seo"
)

type (
	Service        = internal.Service
	Config         = internal.Config
	Page           = internal.Page
	BuildOptions   = internal.BuildOptions
	BuildResult    = internal.BuildResult
	UnitResult     = internal.UnitResult
	SkippedUnit    = internal.SkippedUnit
	Dependencies   = internal.Dependencies
	BundleLoader   = internal.BundleLoader
	SEOResolver    = internal.SEOResolver
	PagePatcher    = internal.PagePatcher
	TemplateSource = internal.TemplateSource
	DirTemplates   = internal.DirTemplates
	PageDefaults   = seo.Defaults
	TextKey        = htmlpatch.TextKey
)

var (
	ErrUnknownPage     = internal.ErrUnknownPage
	ErrUnknownLanguage = internal.ErrUnknownLanguage
	ErrNoPages         = internal.ErrNoPages
	ErrNoLanguages     = internal.ErrNoLanguages
)

// NewService wires a page generator with the supplied configuration and dependencies.
func NewService(cfg Config, deps Dependencies) Service {
	return internal.NewService(cfg, deps)
}

// NewBundleStore returns a loader reading `{code}.json` bundles from dir.
func NewBundleStore(dir string) (BundleLoader, error) {
	return i18n.NewStore(dir)
}

// NewResolver returns an SEO resolver over the per-page defaults table.
func NewResolver(defaults map[string]PageDefaults) SEOResolver {
	return seo.NewResolver(defaults)
}

// NewPatcher returns the HTML head patcher. An empty keys slice keeps the default text keys.
func NewPatcher(keys ...TextKey) PagePatcher {
	if len(keys) == 0 {
		return htmlpatch.NewPatcher()
	}
	return htmlpatch.NewPatcher(htmlpatch.WithTextKeys(keys))
}

// NewFilesystemStorage returns a storage provider writing artifacts below root.
func NewFilesystemStorage(root string) *filesystem.Storage {
	return filesystem.NewStorage(root)
}
