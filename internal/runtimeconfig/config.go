package runtimeconfig

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"slices"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/goliatone/go-slug"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// ErrConfigInvalid wraps field-level validation failures.
var ErrConfigInvalid = errors.New("seogen config: invalid configuration")

// ErrDefaultLanguageNotConfigured ensures the default language is part of the language list.
var ErrDefaultLanguageNotConfigured = errors.New("seogen config: default language must be one of the configured languages")

// ErrDuplicateLanguage rejects repeated language codes.
var ErrDuplicateLanguage = errors.New("seogen config: language configured more than once")

// ErrDuplicatePage rejects repeated page files or keys.
var ErrDuplicatePage = errors.New("seogen config: page configured more than once")

// ErrOutputOverlapsInputs rejects an output directory that is, or contains,
// the templates or bundle directory. Clean empties the output directory.
var ErrOutputOverlapsInputs = errors.New("seogen config: output directory overlaps an input directory")

// ErrMultipleHomePages ensures at most one page is flagged as home.
var ErrMultipleHomePages = errors.New("seogen config: only one page may be flagged as home")

var ErrLoggingProviderRequired = errors.New("seogen config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("seogen config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("seogen config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("seogen config: logging format is invalid")

// Config aggregates runtime configuration for the generator.
type Config struct {
	Site      SiteConfig      `yaml:"site" envPrefix:"SITE_"`
	I18N      I18NConfig      `yaml:"i18n" envPrefix:"I18N_"`
	Pages     []PageConfig    `yaml:"pages" env:"-"`
	TextKeys  []TextKeyConfig `yaml:"text_keys" env:"-"`
	Generator GeneratorConfig `yaml:"generator" envPrefix:"GENERATOR_"`
	Commands  CommandsConfig  `yaml:"commands" envPrefix:"COMMANDS_"`
	Watch     WatchConfig     `yaml:"watch" envPrefix:"WATCH_"`
	Logging   LoggingConfig   `yaml:"logging" envPrefix:"LOGGING_"`
}

// SiteConfig describes the public site the pages are published under.
type SiteConfig struct {
	Domain string `yaml:"domain" env:"DOMAIN"`
}

// I18NConfig lists the output languages and where their bundles live.
type I18NConfig struct {
	Dir             string           `yaml:"dir" env:"DIR"`
	DefaultLanguage string           `yaml:"default_language" env:"DEFAULT_LANGUAGE"`
	Languages       []LanguageConfig `yaml:"languages" env:"-"`
}

// LanguageConfig is one output language. Name is presentation only.
type LanguageConfig struct {
	Code string `yaml:"code"`
	Name string `yaml:"name,omitempty"`
}

// DisplayName returns the configured name, falling back to the language's
// name for itself.
func (l LanguageConfig) DisplayName() string {
	if name := strings.TrimSpace(l.Name); name != "" {
		return name
	}
	tag, err := language.Parse(strings.TrimSpace(l.Code))
	if err != nil {
		return l.Code
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return l.Code
}

// PageConfig is one logical page with its hardcoded SEO defaults.
type PageConfig struct {
	File        string `yaml:"file"`
	Key         string `yaml:"key,omitempty"`
	Home        bool   `yaml:"home,omitempty"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Keywords    string `yaml:"keywords"`
}

// PageKey returns the configured key or the file name without `.html`.
func (p PageConfig) PageKey() string {
	if key := strings.TrimSpace(p.Key); key != "" {
		return key
	}
	name := strings.TrimSpace(p.File)
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	return strings.TrimSuffix(name, ".html")
}

// TextKeyConfig maps a bundle key to the English text used when it is absent.
type TextKeyConfig struct {
	Key     string `yaml:"key"`
	Default string `yaml:"default"`
}

// GeneratorConfig captures output behaviour.
type GeneratorConfig struct {
	TemplatesDir      string `yaml:"templates_dir" env:"TEMPLATES_DIR"`
	OutputDir         string `yaml:"output_dir" env:"OUTPUT_DIR"`
	GenerateSitemap   bool   `yaml:"generate_sitemap" env:"GENERATE_SITEMAP"`
	GenerateRobots    bool   `yaml:"generate_robots" env:"GENERATE_ROBOTS"`
	SitemapChangeFreq string `yaml:"sitemap_changefreq" env:"SITEMAP_CHANGEFREQ"`
	SitemapLastMod    string `yaml:"sitemap_lastmod" env:"SITEMAP_LASTMOD"`
}

// CommandsConfig tunes command handler execution.
type CommandsConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

// WatchConfig tunes the rebuild watcher.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" env:"DEBOUNCE"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider" env:"PROVIDER"`
	Level     string   `yaml:"level" env:"LEVEL"`
	Format    string   `yaml:"format" env:"FORMAT"`
	AddSource bool     `yaml:"add_source" env:"ADD_SOURCE"`
	Focus     []string `yaml:"focus" env:"FOCUS"`
}

// DefaultConfig returns the Typing Rain site: eleven languages, three pages.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Domain: "https://www.typingrain.top",
		},
		I18N: I18NConfig{
			Dir:             "src/i18n",
			DefaultLanguage: "en",
			Languages: []LanguageConfig{
				{Code: "en", Name: "English"},
				{Code: "zh-cn", Name: "简体中文"},
				{Code: "zh-tw", Name: "繁體中文"},
				{Code: "ja", Name: "日本語"},
				{Code: "ko", Name: "한국어"},
				{Code: "de", Name: "Deutsch"},
				{Code: "fr", Name: "Français"},
				{Code: "es", Name: "Español"},
				{Code: "it", Name: "Italiano"},
				{Code: "ru", Name: "Русский"},
				{Code: "pt", Name: "Português"},
			},
		},
		Pages: []PageConfig{
			{
				File:        "index.html",
				Home:        true,
				Title:       "Typing Rain - Modern Word Game | Online Typing Practice",
				Description: "Free online typing game to improve your typing speed and accuracy. Practice with falling words, track your WPM in real-time.",
				Keywords:    "typing game,typing practice,word game,online game,typing speed,WPM",
			},
			{
				File:        "practice.html",
				Title:       "Typing Rain - Practice Mode | Free Typing Practice",
				Description: "Practice your typing skills with customizable settings. Perfect for daily typing improvement.",
				Keywords:    "typing practice,practice mode,typing skills,custom typing",
			},
			{
				File:        "tournament.html",
				Title:       "Typing Rain - Tournament Mode | Competitive Typing Challenge",
				Description: "Challenge yourself in Tournament Mode with 2-minute timed sessions.",
				Keywords:    "typing tournament,competitive typing,typing challenge,leaderboard",
			},
		},
		Generator: GeneratorConfig{
			TemplatesDir:      ".",
			OutputDir:         "dist",
			GenerateSitemap:   true,
			GenerateRobots:    false,
			SitemapChangeFreq: "weekly",
			SitemapLastMod:    "2024-01-01",
		},
		Commands: CommandsConfig{
			Timeout: 5 * time.Minute,
		},
		Watch: WatchConfig{
			Debounce: 300 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// LanguageCodes returns the configured codes in order.
func (cfg Config) LanguageCodes() []string {
	codes := make([]string, 0, len(cfg.I18N.Languages))
	for _, lang := range cfg.I18N.Languages {
		codes = append(codes, strings.TrimSpace(lang.Code))
	}
	return codes
}

// Validate performs field-level checks followed by cross-field consistency checks.
func (cfg Config) Validate() error {
	if err := validation.ValidateStruct(&cfg.Site,
		validation.Field(&cfg.Site.Domain, validation.Required, is.URL, validation.By(absoluteURL)),
	); err != nil {
		return fmt.Errorf("%w: site: %w", ErrConfigInvalid, err)
	}
	if err := validation.ValidateStruct(&cfg.I18N,
		validation.Field(&cfg.I18N.Dir, validation.Required),
		validation.Field(&cfg.I18N.DefaultLanguage, validation.Required, validation.By(languageTag)),
		validation.Field(&cfg.I18N.Languages, validation.Required),
	); err != nil {
		return fmt.Errorf("%w: i18n: %w", ErrConfigInvalid, err)
	}
	for i, lang := range cfg.I18N.Languages {
		if err := validation.ValidateStruct(&lang,
			validation.Field(&lang.Code, validation.Required, validation.By(languageTag)),
		); err != nil {
			return fmt.Errorf("%w: i18n.languages[%d]: %w", ErrConfigInvalid, i, err)
		}
	}
	if err := validation.Validate(cfg.Pages, validation.Required); err != nil {
		return fmt.Errorf("%w: pages: %w", ErrConfigInvalid, err)
	}
	for i, page := range cfg.Pages {
		key := page.PageKey()
		if err := validation.ValidateStruct(&page,
			validation.Field(&page.File, validation.Required, validation.By(htmlFile)),
			validation.Field(&page.Title, validation.Required, notBlank),
			validation.Field(&page.Description, validation.Required, notBlank),
			validation.Field(&page.Keywords, validation.Required, notBlank),
		); err != nil {
			return fmt.Errorf("%w: pages[%d]: %w", ErrConfigInvalid, i, err)
		}
		if !slug.IsValid(key) {
			return fmt.Errorf("%w: pages[%d]: key %q is not a valid slug", ErrConfigInvalid, i, key)
		}
	}
	for i, textKey := range cfg.TextKeys {
		if err := validation.ValidateStruct(&textKey,
			validation.Field(&textKey.Key, validation.Required, notBlank),
			validation.Field(&textKey.Default, validation.Required, notBlank),
		); err != nil {
			return fmt.Errorf("%w: text_keys[%d]: %w", ErrConfigInvalid, i, err)
		}
	}
	if err := validation.ValidateStruct(&cfg.Generator,
		validation.Field(&cfg.Generator.TemplatesDir, validation.Required),
		validation.Field(&cfg.Generator.OutputDir, validation.Required),
		validation.Field(&cfg.Generator.SitemapChangeFreq,
			validation.In("always", "hourly", "daily", "weekly", "monthly", "yearly", "never")),
		validation.Field(&cfg.Generator.SitemapLastMod, validation.Date("2006-01-02")),
	); err != nil {
		return fmt.Errorf("%w: generator: %w", ErrConfigInvalid, err)
	}
	if err := validation.ValidateStruct(&cfg.Watch,
		validation.Field(&cfg.Watch.Debounce, validation.Min(time.Duration(0))),
	); err != nil {
		return fmt.Errorf("%w: watch: %w", ErrConfigInvalid, err)
	}

	if err := cfg.validateOutputDir(); err != nil {
		return err
	}
	if err := cfg.validateLanguages(); err != nil {
		return err
	}
	if err := cfg.validatePages(); err != nil {
		return err
	}
	return cfg.validateLogging()
}

func (cfg Config) validateOutputDir() error {
	output, err := filepath.Abs(strings.TrimSpace(cfg.Generator.OutputDir))
	if err != nil {
		return fmt.Errorf("%w: generator.output_dir: %w", ErrConfigInvalid, err)
	}
	inputs := []struct{ name, dir string }{
		{"generator.templates_dir", cfg.Generator.TemplatesDir},
		{"i18n.dir", cfg.I18N.Dir},
	}
	for _, input := range inputs {
		dir, err := filepath.Abs(strings.TrimSpace(input.dir))
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrConfigInvalid, input.name, err)
		}
		rel, err := filepath.Rel(output, dir)
		if err != nil {
			continue
		}
		if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
			return fmt.Errorf("%w: %s %q is inside output_dir %q", ErrOutputOverlapsInputs, input.name, input.dir, cfg.Generator.OutputDir)
		}
	}
	return nil
}

func (cfg Config) validateLanguages() error {
	seen := map[string]struct{}{}
	for _, code := range cfg.LanguageCodes() {
		key := strings.ToLower(code)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateLanguage, code)
		}
		seen[key] = struct{}{}
	}
	if !slices.Contains(cfg.LanguageCodes(), strings.TrimSpace(cfg.I18N.DefaultLanguage)) {
		return fmt.Errorf("%w: %s", ErrDefaultLanguageNotConfigured, cfg.I18N.DefaultLanguage)
	}
	return nil
}

func (cfg Config) validatePages() error {
	files := map[string]struct{}{}
	keys := map[string]struct{}{}
	homes := 0
	for _, page := range cfg.Pages {
		file := strings.TrimSpace(page.File)
		if _, ok := files[file]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicatePage, file)
		}
		files[file] = struct{}{}
		key := page.PageKey()
		if _, ok := keys[key]; ok {
			return fmt.Errorf("%w: key %s", ErrDuplicatePage, key)
		}
		keys[key] = struct{}{}
		if page.Home {
			homes++
		}
	}
	if homes > 1 {
		return ErrMultipleHomePages
	}
	return nil
}

func (cfg Config) validateLogging() error {
	provider := normalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func absoluteURL(value any) error {
	raw, _ := value.(string)
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return validation.NewError("validation_url_invalid", "must be a valid URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return validation.NewError("validation_url_scheme", "must use http or https")
	}
	if parsed.Host == "" {
		return validation.NewError("validation_url_host", "must include a host")
	}
	if strings.Trim(parsed.Path, "/") != "" || parsed.RawQuery != "" || parsed.Fragment != "" {
		return validation.NewError("validation_url_root", "must not include a path, query or fragment")
	}
	return nil
}

var notBlank = validation.By(func(value any) error {
	if raw, _ := value.(string); raw != "" && strings.TrimSpace(raw) == "" {
		return validation.NewError("validation_blank", "must not be blank")
	}
	return nil
})

func languageTag(value any) error {
	raw, _ := value.(string)
	code := strings.TrimSpace(raw)
	if code == "" {
		return nil
	}
	if _, err := language.Parse(code); err != nil {
		return validation.NewError("validation_language_tag", "must be a BCP 47 language tag")
	}
	return nil
}

func htmlFile(value any) error {
	raw, _ := value.(string)
	file := strings.TrimSpace(raw)
	if file == "" {
		return nil
	}
	if !strings.HasSuffix(file, ".html") {
		return validation.NewError("validation_page_file", "must be an .html file")
	}
	if strings.HasPrefix(file, "/") || slices.Contains(strings.Split(file, "/"), "..") {
		return validation.NewError("validation_page_path", "must be relative to the templates directory")
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
