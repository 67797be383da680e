package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-seogen"
	"github.com/goliatone/go-seogen/cmd/static/internal/bootstrap"
	staticcmd "github.com/goliatone/go-seogen/internal/commands/static"
	"github.com/goliatone/go-seogen/pkg/interfaces"
)

type cli struct {
	Config  string `short:"c" help:"YAML configuration file layered over the defaults" type:"path"`
	EnvFile string `name:"env-file" help:"dotenv file with SEOGEN_ overrides" default:".env"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Build   buildCmd `cmd:"" help:"Render every page for every language and write the sitemap"`
	Diff    diffCmd  `cmd:"" help:"Render without writing and list the outputs that would change"`
	Sitemap struct{} `cmd:"" help:"Rewrite sitemap.xml listing every configured page in every language, without checking which pages were built"`
	Clean   struct{} `cmd:"" help:"Remove every generated artifact"`
	Watch   watchCmd `cmd:"" help:"Build, then rebuild whenever a template or bundle changes"`
}

type buildCmd struct {
	Page     []string `short:"p" help:"Restrict the run to a page (repeatable)"`
	Language []string `short:"l" help:"Restrict the run to a language (repeatable)"`
	DryRun   bool     `name:"dry-run" help:"Render without writing"`
}

type diffCmd struct {
	Page     []string `short:"p" help:"Restrict the diff to a page (repeatable)"`
	Language []string `short:"l" help:"Restrict the diff to a language (repeatable)"`
}

type watchCmd struct {
	Debounce time.Duration `help:"Override the configured rebuild debounce"`
}

type moduleOptions struct {
	configPath string
	envFile    string
	verbose    bool
}

type handlerSet struct {
	build   command.Commander[staticcmd.BuildSiteCommand]
	diff    command.Commander[staticcmd.DiffSiteCommand]
	clean   command.Commander[staticcmd.CleanSiteCommand]
	sitemap command.Commander[staticcmd.BuildSitemapCommand]
}

type watchSettings struct {
	dirs     []string
	ignore   []string
	debounce time.Duration
}

type moduleResources struct {
	handlers handlerSet
	watch    watchSettings
	logger   interfaces.Logger
}

var moduleBuilder = func(opts moduleOptions) (*moduleResources, error) {
	resources, err := bootstrap.BuildModule(bootstrap.Options{
		ConfigPath: opts.configPath,
		EnvFile:    opts.envFile,
		Verbose:    opts.verbose,
	})
	if err != nil {
		return nil, err
	}
	container := resources.Module.Container()
	cfg := resources.Config
	return &moduleResources{
		handlers: handlerSet{
			build:   container.BuildHandler(),
			diff:    container.DiffHandler(),
			clean:   container.CleanHandler(),
			sitemap: container.SitemapHandler(),
		},
		watch: watchSettings{
			dirs:     watchDirs(cfg.Generator.TemplatesDir, cfg.I18N.Dir, pageFiles(cfg.Pages)),
			ignore:   []string{cfg.Generator.OutputDir},
			debounce: cfg.Watch.Debounce,
		},
		logger: resources.Logger,
	}, nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("static: %v", err)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.New("missing subcommand (expected build, diff, sitemap, clean or watch)")
	}

	var flags cli
	parser, err := kong.New(&flags,
		kong.Name("static"),
		kong.Description("Generate language-pinned static pages with SEO metadata."),
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return parseError(err)
	}

	resources, err := moduleBuilder(moduleOptions{
		configPath: flags.Config,
		envFile:    flags.EnvFile,
		verbose:    flags.Verbose,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if resources == nil {
		return errors.New("module resources not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch kctx.Command() {
	case "build":
		return runBuild(ctx, resources.handlers.build, staticcmd.BuildSiteCommand{
			Pages:     flags.Build.Page,
			Languages: flags.Build.Language,
			DryRun:    flags.Build.DryRun,
		})
	case "diff":
		return runDiff(ctx, resources.handlers.diff, flags.Diff)
	case "sitemap":
		if resources.handlers.sitemap == nil {
			return errors.New("sitemap handler not configured")
		}
		if err := resources.handlers.sitemap.Execute(ctx, staticcmd.BuildSitemapCommand{}); err != nil {
			return err
		}
		log.Printf("module=static operation=sitemap status=ok")
		return nil
	case "clean":
		if resources.handlers.clean == nil {
			return errors.New("clean handler not configured")
		}
		if err := resources.handlers.clean.Execute(ctx, staticcmd.CleanSiteCommand{}); err != nil {
			return err
		}
		log.Printf("module=static operation=clean status=ok")
		return nil
	case "watch":
		settings := resources.watch
		if flags.Watch.Debounce > 0 {
			settings.debounce = flags.Watch.Debounce
		}
		return runWatch(ctx, resources.handlers.build, settings, resources.logger)
	default:
		return fmt.Errorf("unknown subcommand %q", kctx.Command())
	}
}

func parseError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "unexpected argument"):
		return fmt.Errorf("unknown subcommand: %w", err)
	case strings.HasPrefix(msg, "expected one of"):
		return fmt.Errorf("missing subcommand: %w", err)
	default:
		return err
	}
}

func runBuild(ctx context.Context, handler command.Commander[staticcmd.BuildSiteCommand], msg staticcmd.BuildSiteCommand) error {
	if handler == nil {
		return errors.New("build handler not configured")
	}
	msg.ResultCallback = logEnvelope
	return handler.Execute(ctx, msg)
}

func runDiff(ctx context.Context, handler command.Commander[staticcmd.DiffSiteCommand], flags diffCmd) error {
	if handler == nil {
		return errors.New("diff handler not configured")
	}
	return handler.Execute(ctx, staticcmd.DiffSiteCommand{
		Pages:     flags.Page,
		Languages: flags.Language,
		ResultCallback: func(env staticcmd.ResultEnvelope) {
			logEnvelope(env)
			for _, output := range env.Result.Changed() {
				log.Printf("module=static operation=diff changed=%s", output)
			}
		},
	})
}

func logEnvelope(env staticcmd.ResultEnvelope) {
	operation, _ := env.Metadata["operation"].(string)
	if operation == "" {
		operation = "build"
	}
	log.Printf("module=static operation=%s summary=%q", operation, env.Result.Summary())
}

func pageFiles(pages []seogen.PageConfig) []string {
	files := make([]string, 0, len(pages))
	for _, page := range pages {
		files = append(files, page.File)
	}
	return files
}

func watchDirs(templatesDir, i18nDir string, files []string) []string {
	seen := map[string]struct{}{}
	var dirs []string
	add := func(dir string) {
		dir = filepath.Clean(dir)
		if _, ok := seen[dir]; ok {
			return
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	add(templatesDir)
	for _, file := range files {
		add(filepath.Join(templatesDir, filepath.Dir(file)))
	}
	add(i18nDir)
	return dirs
}
