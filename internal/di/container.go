package di

import (
	"io"
	"os"
	"strings"

	"github.com/goliatone/go-seogen/internal/adapters/filesystem"
	"github.com/goliatone/go-seogen/internal/commands"
	staticcmd "github.com/goliatone/go-seogen/internal/commands/static"
	"github.com/goliatone/go-seogen/internal/generator"
	"github.com/goliatone/go-seogen/internal/htmlpatch"
	"github.com/goliatone/go-seogen/internal/i18n"
	"github.com/goliatone/go-seogen/internal/logging"
	"github.com/goliatone/go-seogen/internal/logging/console"
	"github.com/goliatone/go-seogen/internal/logging/gologger"
	"github.com/goliatone/go-seogen/internal/runtimeconfig"
	"github.com/goliatone/go-seogen/internal/seo"
	"github.com/goliatone/go-seogen/pkg/interfaces"
)

// Container wires the generator pipeline from a validated configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logWriter      io.Writer

	storage   interfaces.StorageProvider
	templates generator.TemplateSource

	bundles  *i18n.Store
	resolver *seo.Resolver
	patcher  *htmlpatch.Patcher

	generatorSvc generator.Service

	buildHandler   *staticcmd.BuildSiteHandler
	diffHandler    *staticcmd.DiffSiteHandler
	sitemapHandler *staticcmd.BuildSitemapHandler
	cleanHandler   *staticcmd.CleanSiteHandler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithLogWriter redirects the console provider output. Defaults to stderr.
func WithLogWriter(w io.Writer) Option {
	return func(c *Container) {
		if w != nil {
			c.logWriter = w
		}
	}
}

// WithGeneratorStorage overrides the filesystem provider rooted at the output directory.
func WithGeneratorStorage(sp interfaces.StorageProvider) Option {
	return func(c *Container) {
		if sp != nil {
			c.storage = sp
		}
	}
}

// WithTemplates overrides the directory-backed template source.
func WithTemplates(source generator.TemplateSource) Option {
	return func(c *Container) {
		if source != nil {
			c.templates = source
		}
	}
}

// WithGeneratorService overrides the generator service used by the command handlers.
func WithGeneratorService(svc generator.Service) Option {
	return func(c *Container) {
		if svc != nil {
			c.generatorSvc = svc
		}
	}
}

// NewContainer validates cfg and wires every collaborator of a run.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:    cfg,
		logWriter: os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configurePipeline(); err != nil {
		return nil, err
	}
	c.configureCommands()

	logging.ModuleLogger(c.loggerProvider, "seogen.di").Debug("container.configured",
		"languages", len(cfg.I18N.Languages),
		"pages", len(cfg.Pages),
		"output_dir", cfg.Generator.OutputDir,
		"logging_provider", cfg.Logging.Provider,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{Writer: c.logWriter}
		if level := strings.TrimSpace(c.Config.Logging.Level); level != "" {
			parsed, err := console.ParseLevel(level)
			if err != nil {
				return err
			}
			opts.MinLevel = &parsed
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

func (c *Container) configurePipeline() error {
	cfg := c.Config

	bundles, err := i18n.NewStore(cfg.I18N.Dir, i18n.WithLogger(logging.I18NLogger(c.loggerProvider)))
	if err != nil {
		return err
	}
	c.bundles = bundles

	defaults := make(map[string]seo.Defaults, len(cfg.Pages))
	pages := make([]generator.Page, 0, len(cfg.Pages))
	for _, page := range cfg.Pages {
		defaults[page.PageKey()] = seo.Defaults{
			Title:       page.Title,
			Description: page.Description,
			Keywords:    page.Keywords,
		}
		pages = append(pages, generator.Page{
			File: strings.TrimSpace(page.File),
			Key:  page.PageKey(),
			Home: page.Home,
		})
	}
	c.resolver = seo.NewResolver(defaults)

	patcherOpts := []htmlpatch.Option{}
	if len(cfg.TextKeys) > 0 {
		keys := make([]htmlpatch.TextKey, 0, len(cfg.TextKeys))
		for _, key := range cfg.TextKeys {
			keys = append(keys, htmlpatch.TextKey{Key: key.Key, Default: key.Default})
		}
		patcherOpts = append(patcherOpts, htmlpatch.WithTextKeys(keys))
	}
	c.patcher = htmlpatch.NewPatcher(patcherOpts...)

	if c.storage == nil {
		c.storage = filesystem.NewStorage(cfg.Generator.OutputDir)
	}
	if c.templates == nil {
		c.templates = generator.DirTemplates{Dir: cfg.Generator.TemplatesDir}
	}

	if c.generatorSvc == nil {
		c.generatorSvc = generator.NewService(generator.Config{
			Domain:            cfg.Site.Domain,
			DefaultLanguage:   strings.TrimSpace(cfg.I18N.DefaultLanguage),
			Languages:         cfg.LanguageCodes(),
			Pages:             pages,
			GenerateSitemap:   cfg.Generator.GenerateSitemap,
			GenerateRobots:    cfg.Generator.GenerateRobots,
			SitemapChangeFreq: cfg.Generator.SitemapChangeFreq,
			SitemapLastMod:    cfg.Generator.SitemapLastMod,
		}, generator.Dependencies{
			Bundles:   c.bundles,
			Resolver:  c.resolver,
			Patcher:   c.patcher,
			Templates: c.templates,
			Storage:   c.storage,
			Logger:    logging.GeneratorLogger(c.loggerProvider),
		})
	}
	return nil
}

func (c *Container) configureCommands() {
	logger := commands.CommandLogger(c.loggerProvider, "static")
	timeout := c.Config.Commands.Timeout

	c.buildHandler = staticcmd.NewBuildSiteHandler(c.generatorSvc, logger,
		commands.WithTimeout[staticcmd.BuildSiteCommand](timeout))
	c.diffHandler = staticcmd.NewDiffSiteHandler(c.generatorSvc, logger,
		commands.WithTimeout[staticcmd.DiffSiteCommand](timeout))
	c.sitemapHandler = staticcmd.NewBuildSitemapHandler(c.generatorSvc, logger,
		commands.WithTimeout[staticcmd.BuildSitemapCommand](timeout))
	c.cleanHandler = staticcmd.NewCleanSiteHandler(c.generatorSvc, logger,
		commands.WithTimeout[staticcmd.CleanSiteCommand](timeout))
}

// LoggerProvider returns the provider every module logger is derived from.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// StorageProvider returns the artifact storage backend.
func (c *Container) StorageProvider() interfaces.StorageProvider {
	return c.storage
}

// GeneratorService returns the configured page generator.
func (c *Container) GeneratorService() generator.Service {
	return c.generatorSvc
}

// BundleStore returns the translation bundle loader.
func (c *Container) BundleStore() *i18n.Store {
	return c.bundles
}

// BuildHandler executes BuildSiteCommand messages.
func (c *Container) BuildHandler() *staticcmd.BuildSiteHandler {
	return c.buildHandler
}

// DiffHandler executes DiffSiteCommand messages.
func (c *Container) DiffHandler() *staticcmd.DiffSiteHandler {
	return c.diffHandler
}

// SitemapHandler executes BuildSitemapCommand messages.
func (c *Container) SitemapHandler() *staticcmd.BuildSitemapHandler {
	return c.sitemapHandler
}

// CleanHandler executes CleanSiteCommand messages.
func (c *Container) CleanHandler() *staticcmd.CleanSiteHandler {
	return c.cleanHandler
}
