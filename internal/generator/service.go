package generator

import (
	"context"
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-seogen/internal/addressing"
	"github.com/goliatone/go-seogen/internal/htmlpatch"
	"github.com/goliatone/go-seogen/internal/i18n"
	"github.com/goliatone/go-seogen/internal/logging"
	"github.com/goliatone/go-seogen/internal/seo"
	"github.com/goliatone/go-seogen/internal/sitemap"
	"github.com/goliatone/go-seogen/pkg/interfaces"
)

var (
	errBundlesRequired   = errors.New("generator: bundle loader is required")
	errResolverRequired  = errors.New("generator: seo resolver is required")
	errTemplatesRequired = errors.New("generator: template source is required")
)

// Service describes the static page generator contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	BuildSitemap(ctx context.Context) error
	Clean(ctx context.Context) error
}

// Page is one logical page: its template file and the key used for SEO
// lookups (the file name without `.html` unless set).
type Page struct {
	File string
	Key  string
	Home bool
}

// PageKey returns the key used for SEO defaults and bundle overrides.
func (p Page) PageKey() string {
	if key := strings.TrimSpace(p.Key); key != "" {
		return key
	}
	return strings.TrimSuffix(path.Base(p.File), ".html")
}

// Config captures runtime behaviour toggles for the generator.
type Config struct {
	OutputDir         string
	Domain            string
	DefaultLanguage   string
	Languages         []string
	Pages             []Page
	GenerateSitemap   bool
	GenerateRobots    bool
	SitemapChangeFreq string
	SitemapLastMod    string
}

// BuildOptions narrows the scope of a generator run.
type BuildOptions struct {
	Languages []string
	Pages     []string
	DryRun    bool
}

// BundleLoader loads the translation bundles of a run.
type BundleLoader interface {
	Load(ctx context.Context, codes []string) (i18n.Bundles, error)
}

// SEOResolver resolves page metadata through the bundle fallback chain.
type SEOResolver interface {
	Validate(pageKeys []string) error
	Resolve(pageKey, language string, bundles i18n.Bundles) (seo.Resolved, error)
}

// PagePatcher renders a template for one unit.
type PagePatcher interface {
	Patch(template string, in htmlpatch.Input) (string, error)
}

// Dependencies lists the services required by the generator.
type Dependencies struct {
	Bundles   BundleLoader
	Resolver  SEOResolver
	Patcher   PagePatcher
	Templates TemplateSource
	Storage   interfaces.StorageProvider
	Logger    interfaces.Logger
}

// NewService wires a generator implementation with the provided configuration and dependencies.
func NewService(cfg Config, deps Dependencies) Service {
	if deps.Patcher == nil {
		deps.Patcher = htmlpatch.NewPatcher()
	}
	if deps.Logger == nil {
		deps.Logger = logging.NoOp()
	}
	return &service{
		cfg:  cfg,
		deps: deps,
		addr: addressing.New(cfg.Domain, cfg.DefaultLanguage, cfg.Languages),
		now:  time.Now,
	}
}

type service struct {
	cfg  Config
	deps Dependencies
	addr addressing.Addressing
	now  func() time.Time
}

// buildScope is the validated set of pages and languages a run covers.
type buildScope struct {
	pages     []Page
	languages []string
	partial   bool
}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.checkDependencies(); err != nil {
		return nil, err
	}

	start := s.now()
	scope, err := s.resolveScope(opts)
	if err != nil {
		return nil, err
	}
	if err := s.deps.Resolver.Validate(pageKeys(s.cfg.Pages)); err != nil {
		return nil, err
	}

	runID := uuid.New()
	ctx = logging.ContextWithFields(ctx, map[string]any{"run_id": runID.String()})
	bundles, err := s.deps.Bundles.Load(ctx, scope.languages)
	if err != nil {
		return nil, err
	}

	logger := logging.WithFields(s.deps.Logger, map[string]any{
		"run_id":  runID.String(),
		"dry_run": opts.DryRun,
	})
	logger.Info("generator.build.start", "pages", len(scope.pages), "languages", len(scope.languages))

	result := &BuildResult{
		RunID:     runID,
		Languages: append([]string(nil), scope.languages...),
		DryRun:    opts.DryRun,

		MissingBundles: bundles.Missing(),
	}
	for _, page := range scope.pages {
		result.Pages = append(result.Pages, page.File)
	}

	layout := newOutputLayout(s.cfg.OutputDir, storeFor(s.deps.Storage))

	for _, page := range scope.pages {
		if err := ctx.Err(); err != nil {
			result.Duration = s.now().Sub(start)
			return result, err
		}

		template, readErr := s.deps.Templates.Read(ctx, page.File)
		for _, language := range scope.languages {
			if err := ctx.Err(); err != nil {
				result.Duration = s.now().Sub(start)
				return result, err
			}
			output := layout.path(s.addr.OutputPath(page.File, language))
			unitLogger := logging.WithUnitContext(logger, page.File, language, output)

			if readErr != nil {
				s.skip(result, unitLogger, page, language, output, templateError(readErr, page.File))
				continue
			}
			unit, err := s.buildUnit(ctx, layout, bundles, page, language, output, template, opts.DryRun)
			if err != nil {
				s.skip(result, unitLogger, page, language, output, err)
				continue
			}
			unitLogger.Debug("generator.unit.rendered", "bytes", unit.Bytes, "changed", unit.Changed)
			result.Succeeded = append(result.Succeeded, unit)
		}
	}

	if !opts.DryRun {
		s.finishOutputs(ctx, layout, logger, scope, result)
	}

	result.Duration = s.now().Sub(start)
	logger.Info("generator.build.complete",
		"built", result.PagesBuilt(),
		"skipped", result.PagesSkipped(),
		"sitemap", result.Sitemap,
		"duration", result.Duration,
	)
	if len(result.Errors) > 0 {
		return result, errors.Join(result.Errors...)
	}
	return result, nil
}

func (s *service) buildUnit(
	ctx context.Context,
	layout *outputLayout,
	bundles i18n.Bundles,
	page Page,
	language string,
	output string,
	template string,
	dryRun bool,
) (UnitResult, error) {
	started := s.now()
	resolved, err := s.deps.Resolver.Resolve(page.PageKey(), language, bundles)
	if err != nil {
		return UnitResult{}, unitError(err, page.File, language)
	}
	html, err := s.deps.Patcher.Patch(template, htmlpatch.Input{
		SEO:      resolved,
		URLs:     s.addr.URLSet(page.File, language),
		Language: language,
		Bundle:   bundles.Get(language),
	})
	if err != nil {
		return UnitResult{}, unitError(err, page.File, language)
	}

	sum := checksum([]byte(html))
	unit := UnitResult{
		Page:     page.File,
		Language: language,
		Output:   output,
		Checksum: sum,
		Bytes:    len(html),
		Changed:  true,
	}
	if existing, found, err := layout.store.get(ctx, output); err == nil && found {
		unit.Changed = checksum(existing) != sum
	}

	if !dryRun {
		req := artifact{
			Path:        output,
			Body:        strings.NewReader(html),
			Size:        int64(len(html)),
			Language:    language,
			Kind:        kindPage,
			ContentType: "text/html; charset=utf-8",
			Checksum:    sum,
			Metadata: map[string]string{
				"page":     page.File,
				"page_key": page.PageKey(),
			},
		}
		if err := layout.write(ctx, req); err != nil {
			return UnitResult{}, writeError(err, output)
		}
	}
	unit.Duration = s.now().Sub(started)
	return unit, nil
}

func (s *service) skip(result *BuildResult, logger interfaces.Logger, page Page, language, output string, err error) {
	skipped := SkippedUnit{
		Page:     page.File,
		Language: language,
		Output:   output,
		Code:     reasonCode(err),
		Err:      err,
	}
	logger.Warn("generator.unit.skipped", "code", skipped.Code, "error", err)
	result.Skipped = append(result.Skipped, skipped)
}

// finishOutputs writes the sitemap and robots.txt after the page units.
// A partial run leaves the sitemap untouched so it keeps describing the
// whole site.
func (s *service) finishOutputs(
	ctx context.Context,
	layout *outputLayout,
	logger interfaces.Logger,
	scope buildScope,
	result *BuildResult,
) {
	if s.cfg.GenerateSitemap && !scope.partial {
		entries := sitemapEntries(scope, result.Succeeded)
		if len(entries) == 0 {
			logger.Warn("generator.sitemap.skipped", "reason", "no unit succeeded")
		} else {
			output, err := s.writeSitemap(ctx, layout, entries)
			if err != nil {
				logger.Error("generator.sitemap.failed", "error", err)
				result.Errors = append(result.Errors, err)
			} else {
				result.Sitemap = true
				result.SitemapPath = output
			}
		}
	}

	if s.cfg.GenerateRobots && !scope.partial {
		if err := s.writeRobots(ctx, layout); err != nil {
			logger.Error("generator.robots.failed", "error", err)
			result.Errors = append(result.Errors, err)
		} else {
			result.Robots = true
		}
	}
}

// sitemapEntries groups succeeded units by page, keeping page and language
// order from scope.
func sitemapEntries(scope buildScope, succeeded []UnitResult) []sitemap.Entry {
	built := make(map[string]map[string]bool, len(scope.pages))
	for _, unit := range succeeded {
		if built[unit.Page] == nil {
			built[unit.Page] = map[string]bool{}
		}
		built[unit.Page][unit.Language] = true
	}

	var entries []sitemap.Entry
	for _, page := range scope.pages {
		var languages []string
		for _, language := range scope.languages {
			if built[page.File][language] {
				languages = append(languages, language)
			}
		}
		if len(languages) > 0 {
			entries = append(entries, sitemap.Entry{Page: page.File, Languages: languages})
		}
	}
	return entries
}

func (s *service) sitemapOptions() sitemap.Options {
	return sitemap.Options{
		Addressing: s.addr,
		HomePage:   homePage(s.cfg.Pages),
		ChangeFreq: s.cfg.SitemapChangeFreq,
		LastMod:    s.cfg.SitemapLastMod,
	}
}

func (s *service) writeSitemap(ctx context.Context, layout *outputLayout, entries []sitemap.Entry) (string, error) {
	content := sitemap.Build(entries, s.sitemapOptions())
	target := layout.path(sitemapFile)
	req := artifact{
		Path:        target,
		Body:        strings.NewReader(content),
		Size:        int64(len(content)),
		Kind:        kindSitemap,
		ContentType: "application/xml",
		Checksum:    checksum([]byte(content)),
		Metadata: map[string]string{
			"records": fmt.Sprint(sitemap.Records(entries)),
		},
	}
	if err := layout.write(ctx, req); err != nil {
		return "", sitemapError(err, target)
	}
	return target, nil
}

func (s *service) writeRobots(ctx context.Context, layout *outputLayout) error {
	content := sitemap.Robots(s.addr.Domain, s.cfg.GenerateSitemap)
	target := layout.path(robotsFile)
	req := artifact{
		Path:        target,
		Body:        strings.NewReader(content),
		Size:        int64(len(content)),
		Kind:        kindRobots,
		ContentType: "text/plain; charset=utf-8",
		Checksum:    checksum([]byte(content)),
	}
	if err := layout.write(ctx, req); err != nil {
		return writeError(err, target)
	}
	return nil
}

// BuildSitemap rewrites sitemap.xml for the full page and language matrix
// without rendering pages. It does not read templates or inspect earlier
// output, so every configured page is listed in every configured language
// even when that unit failed or was never built. Use Build for a sitemap
// limited to units that rendered.
func (s *service) BuildSitemap(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	scope, err := s.resolveScope(BuildOptions{})
	if err != nil {
		return err
	}
	entries := make([]sitemap.Entry, 0, len(scope.pages))
	for _, page := range scope.pages {
		entries = append(entries, sitemap.Entry{Page: page.File, Languages: scope.languages})
	}
	output, err := s.writeSitemap(ctx, newOutputLayout(s.cfg.OutputDir, storeFor(s.deps.Storage)), entries)
	if err != nil {
		return err
	}
	s.deps.Logger.Info("generator.sitemap.written", "output", output, "records", sitemap.Records(entries))
	return nil
}

// Clean removes every generated artifact below the output directory.
func (s *service) Clean(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	target := strings.Trim(strings.TrimSpace(s.cfg.OutputDir), "/")
	if err := storeFor(s.deps.Storage).remove(ctx, target); err != nil {
		return fmt.Errorf("generator: clean %q: %w", target, err)
	}
	s.deps.Logger.Info("generator.clean.complete", "output", target)
	return nil
}

func (s *service) checkDependencies() error {
	switch {
	case s.deps.Bundles == nil:
		return errBundlesRequired
	case s.deps.Resolver == nil:
		return errResolverRequired
	case s.deps.Templates == nil:
		return errTemplatesRequired
	}
	return nil
}

// resolveScope applies BuildOptions filters to the configured pages and
// languages, keeping configuration order.
func (s *service) resolveScope(opts BuildOptions) (buildScope, error) {
	if len(s.cfg.Pages) == 0 {
		return buildScope{}, configError(ErrNoPages, nil)
	}
	if len(s.cfg.Languages) == 0 {
		return buildScope{}, configError(ErrNoLanguages, nil)
	}

	scope := buildScope{
		pages:     s.cfg.Pages,
		languages: s.cfg.Languages,
	}

	if len(opts.Pages) > 0 {
		requested := map[string]bool{}
		for _, name := range opts.Pages {
			if !slices.ContainsFunc(s.cfg.Pages, func(p Page) bool { return p.File == name || p.PageKey() == name }) {
				return buildScope{}, configError(fmt.Errorf("%w: %s", ErrUnknownPage, name), map[string]any{"page": name})
			}
			requested[name] = true
		}
		scope.pages = nil
		for _, page := range s.cfg.Pages {
			if requested[page.File] || requested[page.PageKey()] {
				scope.pages = append(scope.pages, page)
			}
		}
	}

	if len(opts.Languages) > 0 {
		requested := map[string]bool{}
		for _, code := range opts.Languages {
			idx := slices.IndexFunc(s.cfg.Languages, func(configured string) bool {
				return strings.EqualFold(configured, strings.TrimSpace(code))
			})
			if idx < 0 {
				return buildScope{}, configError(fmt.Errorf("%w: %s", ErrUnknownLanguage, code), map[string]any{"language": code})
			}
			requested[s.cfg.Languages[idx]] = true
		}
		scope.languages = nil
		for _, code := range s.cfg.Languages {
			if requested[code] {
				scope.languages = append(scope.languages, code)
			}
		}
	}

	scope.partial = len(scope.pages) != len(s.cfg.Pages) || len(scope.languages) != len(s.cfg.Languages)
	return scope, nil
}

func pageKeys(pages []Page) []string {
	keys := make([]string, 0, len(pages))
	for _, page := range pages {
		keys = append(keys, page.PageKey())
	}
	return keys
}

// homePage returns the page flagged as home, falling back to index.html.
func homePage(pages []Page) string {
	for _, page := range pages {
		if page.Home {
			return page.File
		}
	}
	for _, page := range pages {
		if path.Base(page.File) == "index.html" {
			return page.File
		}
	}
	return ""
}
