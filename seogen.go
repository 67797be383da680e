package seogen

import (
	"context"

	staticcmd "github.com/goliatone/go-seogen/internal/commands/static"
	"github.com/goliatone/go-seogen/internal/di"
	"github.com/goliatone/go-seogen/internal/generator"
	"github.com/goliatone/go-seogen/pkg/interfaces"
)

// GeneratorService exports the static page generator contract.
type GeneratorService = generator.Service

// BuildOptions narrows a run to a subset of pages and languages.
type BuildOptions = generator.BuildOptions

// BuildResult reports the units a run rendered and skipped.
type BuildResult = generator.BuildResult

// Module represents the top level generator façade.
type Module struct {
	container *di.Container
}

// New constructs a generator module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Generator returns the page generator service.
func (m *Module) Generator() GeneratorService {
	return m.container.GeneratorService()
}

// LoggerProvider returns the provider configured for the module.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.container.LoggerProvider()
}

// Build renders the selected units and, for full runs, the sitemap.
func (m *Module) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	var result *BuildResult
	err := m.container.BuildHandler().Execute(ctx, staticcmd.BuildSiteCommand{
		Pages:          opts.Pages,
		Languages:      opts.Languages,
		DryRun:         opts.DryRun,
		ResultCallback: func(env staticcmd.ResultEnvelope) { result = env.Result },
	})
	return result, err
}

// Diff renders the selected units without writing and reports which outputs would change.
func (m *Module) Diff(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	var result *BuildResult
	err := m.container.DiffHandler().Execute(ctx, staticcmd.DiffSiteCommand{
		Pages:          opts.Pages,
		Languages:      opts.Languages,
		ResultCallback: func(env staticcmd.ResultEnvelope) { result = env.Result },
	})
	return result, err
}

// BuildSitemap rewrites sitemap.xml for the full page and language matrix.
func (m *Module) BuildSitemap(ctx context.Context) error {
	return m.container.SitemapHandler().Execute(ctx, staticcmd.BuildSitemapCommand{})
}

// Clean removes every generated artifact.
func (m *Module) Clean(ctx context.Context) error {
	return m.container.CleanHandler().Execute(ctx, staticcmd.CleanSiteCommand{})
}
