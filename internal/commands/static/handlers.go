package staticcmd

import (
	"context"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-seogen/internal/commands"
	"github.com/goliatone/go-seogen/internal/generator"
	"github.com/goliatone/go-seogen/internal/logging"
	"github.com/goliatone/go-seogen/pkg/interfaces"
)

var (
	_ command.Commander[BuildSiteCommand]    = (*BuildSiteHandler)(nil)
	_ command.Commander[DiffSiteCommand]     = (*DiffSiteHandler)(nil)
	_ command.Commander[BuildSitemapCommand] = (*BuildSitemapHandler)(nil)
	_ command.Commander[CleanSiteCommand]    = (*CleanSiteHandler)(nil)
)

// BuildSiteHandler runs generator builds.
type BuildSiteHandler struct {
	*commands.Handler[BuildSiteCommand]
}

// DiffSiteHandler runs dry-run builds and logs every output that would change.
type DiffSiteHandler struct {
	*commands.Handler[DiffSiteCommand]
}

// BuildSitemapHandler rewrites sitemap.xml without rendering pages.
type BuildSitemapHandler struct {
	*commands.Handler[BuildSitemapCommand]
}

// CleanSiteHandler removes generated artifacts.
type CleanSiteHandler struct {
	*commands.Handler[CleanSiteCommand]
}

func NewBuildSiteHandler(service generator.Service, logger interfaces.Logger, opts ...commands.HandlerOption[BuildSiteCommand]) *BuildSiteHandler {
	logger = commands.EnsureLogger(logger)
	run := func(ctx context.Context, msg BuildSiteCommand) error {
		if service == nil {
			return ErrGeneratorRequired
		}
		result, err := service.Build(ctx, buildOptions(msg.Pages, msg.Languages, msg.DryRun))
		report(logger, result, "build", msg.ResultCallback)
		return err
	}
	fields := func(msg BuildSiteCommand) map[string]any {
		fields := scopeFields(msg.Pages, msg.Languages)
		if msg.DryRun {
			fields["dry_run"] = true
		}
		return fields
	}
	return &BuildSiteHandler{newHandler("static.build", logger, run, fields, opts)}
}

func NewDiffSiteHandler(service generator.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DiffSiteCommand]) *DiffSiteHandler {
	logger = commands.EnsureLogger(logger)
	run := func(ctx context.Context, msg DiffSiteCommand) error {
		if service == nil {
			return ErrGeneratorRequired
		}
		result, err := service.Build(ctx, buildOptions(msg.Pages, msg.Languages, true))
		if result != nil {
			for _, output := range result.Changed() {
				logger.Info("static.diff.changed", "output", output)
			}
		}
		report(logger, result, "diff", msg.ResultCallback)
		return err
	}
	fields := func(msg DiffSiteCommand) map[string]any {
		return scopeFields(msg.Pages, msg.Languages)
	}
	return &DiffSiteHandler{newHandler("static.diff", logger, run, fields, opts)}
}

func NewBuildSitemapHandler(service generator.Service, logger interfaces.Logger, opts ...commands.HandlerOption[BuildSitemapCommand]) *BuildSitemapHandler {
	run := func(ctx context.Context, _ BuildSitemapCommand) error {
		if service == nil {
			return ErrGeneratorRequired
		}
		return service.BuildSitemap(ctx)
	}
	return &BuildSitemapHandler{newHandler("static.sitemap", commands.EnsureLogger(logger), run, nil, opts)}
}

func NewCleanSiteHandler(service generator.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CleanSiteCommand]) *CleanSiteHandler {
	run := func(ctx context.Context, _ CleanSiteCommand) error {
		if service == nil {
			return ErrGeneratorRequired
		}
		return service.Clean(ctx)
	}
	return &CleanSiteHandler{newHandler("static.clean", commands.EnsureLogger(logger), run, nil, opts)}
}

// newHandler applies the options every static command shares; extra options
// are applied last so callers can override them.
func newHandler[T command.Message](
	operation string,
	logger interfaces.Logger,
	run command.CommandFunc[T],
	fields commands.MessageFields[T],
	extra []commands.HandlerOption[T],
) *commands.Handler[T] {
	opts := []commands.HandlerOption[T]{
		commands.WithLogger[T](logger),
		commands.WithOperation[T](operation),
		commands.WithObserver(commands.LogOutcomes[T](logger)),
	}
	if fields != nil {
		opts = append(opts, commands.WithMessageFields(fields))
	}
	return commands.NewHandler(run, append(opts, extra...)...)
}

func buildOptions(pages, languages []string, dryRun bool) generator.BuildOptions {
	return generator.BuildOptions{
		Pages:     dedupe(pages, strings.TrimSpace),
		Languages: dedupe(languages, strings.ToLower),
		DryRun:    dryRun,
	}
}

// report logs the run summary and hands the result to cb. Partial results
// accompanying an error are reported too.
func report(logger interfaces.Logger, result *generator.BuildResult, operation string, cb ResultCallback) {
	if result != nil {
		logger = logging.WithFields(logger, map[string]any{
			"run_id":  result.RunID.String(),
			"built":   result.PagesBuilt(),
			"skipped": result.PagesSkipped(),
			"sitemap": result.Sitemap,
		})
		for _, unit := range result.Skipped {
			logging.WithUnitContext(logger, unit.Page, unit.Language, unit.Output).
				Warn("static.unit.skipped", "code", unit.Code, "reason", unit.Reason())
		}
		logger.Info("static.build.summary", "summary", result.Summary())
	}
	if cb != nil {
		cb(ResultEnvelope{Result: result, Metadata: map[string]any{"operation": operation}})
	}
}

func scopeFields(pages, languages []string) map[string]any {
	fields := map[string]any{}
	if len(pages) > 0 {
		fields["pages"] = strings.Join(pages, ",")
	}
	if len(languages) > 0 {
		fields["languages"] = strings.Join(languages, ",")
	}
	return fields
}

// dedupe trims values, drops empties and keeps the first of each group of
// values sharing the same key(value). It returns nil when nothing is left.
func dedupe(values []string, key func(string) string) []string {
	var out []string
	seen := map[string]bool{}
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" || seen[key(value)] {
			continue
		}
		seen[key(value)] = true
		out = append(out, value)
	}
	return out
}
