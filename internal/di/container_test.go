package di_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	staticcmd "github.com/goliatone/go-seogen/internal/commands/static"
	"github.com/goliatone/go-seogen/internal/di"
	ditesting "github.com/goliatone/go-seogen/internal/di/testing"
	"github.com/goliatone/go-seogen/internal/generator"
	"github.com/goliatone/go-seogen/internal/runtimeconfig"
)

const siteTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <title>Example</title>
    <meta name="description" content="Example">
    <link rel="canonical" href="https://example.test/">
</head>
<body>
    <h1 data-i18n="gameTitle">TYPING RAIN</h1>
</body>
</html>
`

func siteConfig(t *testing.T) runtimeconfig.Config {
	t.Helper()

	templates := t.TempDir()
	for _, name := range []string{"index.html", "practice.html"} {
		require.NoError(t, os.WriteFile(filepath.Join(templates, name), []byte(siteTemplate), 0o644))
	}

	cfg := runtimeconfig.DefaultConfig()
	cfg.Site.Domain = "https://example.test"
	cfg.I18N.Dir = t.TempDir()
	cfg.I18N.DefaultLanguage = "en"
	cfg.I18N.Languages = []runtimeconfig.LanguageConfig{{Code: "en"}, {Code: "fr"}}
	cfg.Pages = cfg.Pages[:2]
	cfg.Generator.TemplatesDir = templates
	cfg.Generator.OutputDir = t.TempDir()
	return cfg
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := siteConfig(t)
	cfg.I18N.DefaultLanguage = "de"

	_, err := di.NewContainer(cfg)
	require.ErrorIs(t, err, runtimeconfig.ErrDefaultLanguageNotConfigured)
}

func TestNewContainerRejectsOutputOverTemplates(t *testing.T) {
	cfg := siteConfig(t)
	cfg.I18N.Dir = filepath.Join(cfg.Generator.TemplatesDir, "i18n")
	cfg.Generator.OutputDir = cfg.Generator.TemplatesDir

	_, err := di.NewContainer(cfg)
	require.ErrorIs(t, err, runtimeconfig.ErrOutputOverlapsInputs)

	entries, readErr := os.ReadDir(cfg.Generator.TemplatesDir)
	require.NoError(t, readErr)
	require.Len(t, entries, 2, "templates stay in place")
}

func TestContainerBuildsIntoStorage(t *testing.T) {
	container, storage, err := ditesting.NewGeneratorContainer(siteConfig(t), di.WithLogWriter(&strings.Builder{}))
	require.NoError(t, err)

	var result *generator.BuildResult
	err = container.BuildHandler().Execute(context.Background(), staticcmd.BuildSiteCommand{
		ResultCallback: func(env staticcmd.ResultEnvelope) { result = env.Result },
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Equal(t, 4, result.PagesBuilt())
	require.True(t, result.Sitemap)

	files := storage.Files()
	require.Contains(t, files, "index.html")
	require.Contains(t, files, "fr/practice.html")
	require.Contains(t, files, "sitemap.xml")
	require.NotContains(t, files, "robots.txt")

	french := files["fr/index.html"]
	require.Contains(t, french, `<html lang="fr">`)
	require.Contains(t, french, `<link rel="canonical" href="https://example.test/fr/index.html">`)
	require.Contains(t, french, `hreflang="x-default" href="https://example.test/index.html"`)
	require.Contains(t, french, "Typing Rain - Modern Word Game")
}

func TestContainerDiffAfterBuildReportsNoChanges(t *testing.T) {
	container, _, err := ditesting.NewGeneratorContainer(siteConfig(t), di.WithLogWriter(&strings.Builder{}))
	require.NoError(t, err)
	require.NoError(t, container.BuildHandler().Execute(context.Background(), staticcmd.BuildSiteCommand{}))

	var changed []string
	err = container.DiffHandler().Execute(context.Background(), staticcmd.DiffSiteCommand{
		ResultCallback: func(env staticcmd.ResultEnvelope) { changed = env.Result.Changed() },
	})
	require.NoError(t, err)
	require.Empty(t, changed)
}

func TestContainerSitemapAndClean(t *testing.T) {
	container, storage, err := ditesting.NewGeneratorContainer(siteConfig(t), di.WithLogWriter(&strings.Builder{}))
	require.NoError(t, err)

	require.NoError(t, container.SitemapHandler().Execute(context.Background(), staticcmd.BuildSitemapCommand{}))
	require.Contains(t, storage.Files(), "sitemap.xml")
	require.Len(t, storage.Files(), 1, "sitemap command renders no pages")

	require.NoError(t, container.CleanHandler().Execute(context.Background(), staticcmd.CleanSiteCommand{}))
	require.Empty(t, storage.Files())
	require.Equal(t, []string{"generator.write", "generator.remove"}, storage.Ops())
}

func TestContainerUsesInjectedGeneratorService(t *testing.T) {
	svc := &stubService{}
	container, err := di.NewContainer(siteConfig(t), di.WithGeneratorService(svc), di.WithLogWriter(&strings.Builder{}))
	require.NoError(t, err)
	require.Same(t, svc, container.GeneratorService())

	err = container.CleanHandler().Execute(context.Background(), staticcmd.CleanSiteCommand{})
	require.True(t, errors.Is(err, errStub))
}

var errStub = errors.New("stub clean")

type stubService struct{}

func (*stubService) Build(context.Context, generator.BuildOptions) (*generator.BuildResult, error) {
	return &generator.BuildResult{}, nil
}

func (*stubService) BuildSitemap(context.Context) error { return nil }

func (*stubService) Clean(context.Context) error { return errStub }
