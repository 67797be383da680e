package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-seogen/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if got := len(cfg.LanguageCodes()); got != 11 {
		t.Fatalf("expected 11 languages, got %d", got)
	}
	if cfg.LanguageCodes()[0] != cfg.I18N.DefaultLanguage {
		t.Fatalf("expected default language first, got %v", cfg.LanguageCodes())
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{
			name:   "relative domain",
			mutate: func(c *runtimeconfig.Config) { c.Site.Domain = "www.example.test" },
			want:   runtimeconfig.ErrConfigInvalid,
		},
		{
			name:   "domain with path",
			mutate: func(c *runtimeconfig.Config) { c.Site.Domain = "https://example.test/app" },
			want:   runtimeconfig.ErrConfigInvalid,
		},
		{
			name: "malformed language",
			mutate: func(c *runtimeconfig.Config) {
				c.I18N.Languages = append(c.I18N.Languages, runtimeconfig.LanguageConfig{Code: "not a tag"})
			},
			want: runtimeconfig.ErrConfigInvalid,
		},
		{
			name: "duplicate language",
			mutate: func(c *runtimeconfig.Config) {
				c.I18N.Languages = append(c.I18N.Languages, runtimeconfig.LanguageConfig{Code: "FR"})
			},
			want: runtimeconfig.ErrDuplicateLanguage,
		},
		{
			name:   "default language outside list",
			mutate: func(c *runtimeconfig.Config) { c.I18N.DefaultLanguage = "nl" },
			want:   runtimeconfig.ErrDefaultLanguageNotConfigured,
		},
		{
			name:   "missing page default",
			mutate: func(c *runtimeconfig.Config) { c.Pages[1].Description = "" },
			want:   runtimeconfig.ErrConfigInvalid,
		},
		{
			name:   "page is not html",
			mutate: func(c *runtimeconfig.Config) { c.Pages[1].File = "practice.md" },
			want:   runtimeconfig.ErrConfigInvalid,
		},
		{
			name:   "page escapes templates",
			mutate: func(c *runtimeconfig.Config) { c.Pages[1].File = "../practice.html" },
			want:   runtimeconfig.ErrConfigInvalid,
		},
		{
			name:   "page key is not a slug",
			mutate: func(c *runtimeconfig.Config) { c.Pages[1].Key = "Practice Mode" },
			want:   runtimeconfig.ErrConfigInvalid,
		},
		{
			name: "duplicate page file",
			mutate: func(c *runtimeconfig.Config) {
				c.Pages = append(c.Pages, c.Pages[0])
				c.Pages[len(c.Pages)-1].Home = false
			},
			want: runtimeconfig.ErrDuplicatePage,
		},
		{
			name:   "two home pages",
			mutate: func(c *runtimeconfig.Config) { c.Pages[2].Home = true },
			want:   runtimeconfig.ErrMultipleHomePages,
		},
		{
			name:   "unknown changefreq",
			mutate: func(c *runtimeconfig.Config) { c.Generator.SitemapChangeFreq = "sometimes" },
			want:   runtimeconfig.ErrConfigInvalid,
		},
		{
			name:   "malformed lastmod",
			mutate: func(c *runtimeconfig.Config) { c.Generator.SitemapLastMod = "01/01/2024" },
			want:   runtimeconfig.ErrConfigInvalid,
		},
		{
			name:   "empty output dir",
			mutate: func(c *runtimeconfig.Config) { c.Generator.OutputDir = "" },
			want:   runtimeconfig.ErrConfigInvalid,
		},
		{
			name:   "whitespace page title",
			mutate: func(c *runtimeconfig.Config) { c.Pages[0].Title = "   " },
			want:   runtimeconfig.ErrConfigInvalid,
		},
		{
			name:   "whitespace page keywords",
			mutate: func(c *runtimeconfig.Config) { c.Pages[2].Keywords = "\t" },
			want:   runtimeconfig.ErrConfigInvalid,
		},
		{
			name:   "output dir is the templates dir",
			mutate: func(c *runtimeconfig.Config) { c.Generator.OutputDir = "./" },
			want:   runtimeconfig.ErrOutputOverlapsInputs,
		},
		{
			name: "output dir contains the bundle dir",
			mutate: func(c *runtimeconfig.Config) {
				c.Generator.TemplatesDir = "site"
				c.Generator.OutputDir = "src"
			},
			want: runtimeconfig.ErrOutputOverlapsInputs,
		},
		{
			name: "output dir contains the templates dir",
			mutate: func(c *runtimeconfig.Config) {
				c.Generator.TemplatesDir = "build/templates"
				c.Generator.OutputDir = "build"
			},
			want: runtimeconfig.ErrOutputOverlapsInputs,
		},
		{
			name:   "blank text key default",
			mutate: func(c *runtimeconfig.Config) { c.TextKeys = []runtimeconfig.TextKeyConfig{{Key: "startGame"}} },
			want:   runtimeconfig.ErrConfigInvalid,
		},
		{
			name:   "missing logging provider",
			mutate: func(c *runtimeconfig.Config) { c.Logging.Provider = "" },
			want:   runtimeconfig.ErrLoggingProviderRequired,
		},
		{
			name:   "unknown logging provider",
			mutate: func(c *runtimeconfig.Config) { c.Logging.Provider = "syslog" },
			want:   runtimeconfig.ErrLoggingProviderUnknown,
		},
		{
			name:   "invalid logging level",
			mutate: func(c *runtimeconfig.Config) { c.Logging.Level = "verbose" },
			want:   runtimeconfig.ErrLoggingLevelInvalid,
		},
		{
			name: "invalid gologger format",
			mutate: func(c *runtimeconfig.Config) {
				c.Logging.Provider = "gologger"
				c.Logging.Format = "xml"
			},
			want: runtimeconfig.ErrLoggingFormatInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestConsoleFormatIsIgnoredForConsoleProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected console provider to ignore format, got %v", err)
	}
}

func TestPageKey(t *testing.T) {
	cases := map[string]runtimeconfig.PageConfig{
		"practice": {File: "practice.html"},
		"guide":    {File: "docs/guide.html"},
		"home":     {File: "index.html", Key: " home "},
	}
	for want, page := range cases {
		if got := page.PageKey(); got != want {
			t.Fatalf("PageKey(%+v) = %q, want %q", page, got, want)
		}
	}
}

func TestLanguageDisplayName(t *testing.T) {
	configured := runtimeconfig.LanguageConfig{Code: "fr", Name: "Français"}
	if got := configured.DisplayName(); got != "Français" {
		t.Fatalf("expected configured name, got %q", got)
	}
	derived := runtimeconfig.LanguageConfig{Code: "de"}
	if got := derived.DisplayName(); got != "Deutsch" {
		t.Fatalf("expected derived name Deutsch, got %q", got)
	}
	unknown := runtimeconfig.LanguageConfig{Code: "??"}
	if got := unknown.DisplayName(); got != "??" {
		t.Fatalf("expected code fallback, got %q", got)
	}
}
