package runtimeconfig_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-seogen/internal/runtimeconfig"
)

func TestLoadDefaultsWithoutSources(t *testing.T) {
	cfg, err := runtimeconfig.Load(runtimeconfig.LoadOptions{Environ: []string{}})
	require.NoError(t, err)
	require.Equal(t, runtimeconfig.DefaultConfig(), cfg)
}

func TestLoadLayersYAMLOverDefaults(t *testing.T) {
	cfg, err := runtimeconfig.Load(runtimeconfig.LoadOptions{
		ConfigPath: filepath.Join("testdata", "site.yaml"),
		Environ:    []string{},
	})
	require.NoError(t, err)

	require.Equal(t, "https://example.test", cfg.Site.Domain)
	require.Equal(t, []string{"en", "fr", "pt-BR"}, cfg.LanguageCodes())
	require.Len(t, cfg.Pages, 2)
	require.Equal(t, "guide", cfg.Pages[1].PageKey())
	require.Equal(t, "public", cfg.Generator.OutputDir)
	require.True(t, cfg.Generator.GenerateRobots)
	require.True(t, cfg.Generator.GenerateSitemap, "unset keys keep their defaults")
	require.Equal(t, "weekly", cfg.Generator.SitemapChangeFreq)
	require.Equal(t, time.Second, cfg.Watch.Debounce)
	require.Equal(t, "gologger", cfg.Logging.Provider)
	require.Equal(t, []runtimeconfig.TextKeyConfig{{Key: "startGame", Default: "START"}}, cfg.TextKeys)
}

func TestLoadRejectsUnknownYAMLFields(t *testing.T) {
	_, err := runtimeconfig.Load(runtimeconfig.LoadOptions{
		ConfigPath: filepath.Join("testdata", "unknown_field.yaml"),
		Environ:    []string{},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "domian")
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := runtimeconfig.Load(runtimeconfig.LoadOptions{
		ConfigPath: filepath.Join("testdata", "absent.yaml"),
		Environ:    []string{},
	})
	require.Error(t, err)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	cfg, err := runtimeconfig.Load(runtimeconfig.LoadOptions{
		ConfigPath: filepath.Join("testdata", "site.yaml"),
		EnvFile:    filepath.Join("testdata", "override.env"),
		Environ: []string{
			"SEOGEN_LOGGING_LEVEL=error",
			"SEOGEN_GENERATOR_OUTPUT_DIR=build/site",
			"SEOGEN_GENERATOR_GENERATE_SITEMAP=false",
			"SEOGEN_WATCH_DEBOUNCE=50ms",
			"UNRELATED=value",
		},
	})
	require.NoError(t, err)

	require.Equal(t, "https://dotenv.test", cfg.Site.Domain, "dotenv applies when the environment is silent")
	require.Equal(t, "error", cfg.Logging.Level, "environment wins over dotenv")
	require.Equal(t, "build/site", cfg.Generator.OutputDir)
	require.False(t, cfg.Generator.GenerateSitemap)
	require.Equal(t, 50*time.Millisecond, cfg.Watch.Debounce)
	require.Len(t, cfg.I18N.Languages, 3, "list settings are only read from YAML")
}

func TestLoadIgnoresMissingEnvFile(t *testing.T) {
	_, err := runtimeconfig.Load(runtimeconfig.LoadOptions{
		EnvFile: filepath.Join(t.TempDir(), ".env"),
		Environ: []string{},
	})
	require.NoError(t, err)
}

func TestLoadValidatesResult(t *testing.T) {
	_, err := runtimeconfig.Load(runtimeconfig.LoadOptions{
		Environ: []string{"SEOGEN_I18N_DEFAULT_LANGUAGE=nl"},
	})
	require.ErrorIs(t, err, runtimeconfig.ErrDefaultLanguageNotConfigured)
}
