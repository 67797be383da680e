package i18n

import (
	"slices"
	"strings"
)

// SEOOverride holds the per-page metadata a bundle may override. Empty
// fields are treated as absent by the resolver.
type SEOOverride struct {
	Title         string
	Description   string
	Keywords      string
	OGTitle       string
	OGDescription string
}

// Bundle is one language's UI strings and page-level SEO overrides.
type Bundle struct {
	Language string
	Path     string
	Missing  bool
	Strings  map[string]string
	PageSEO  map[string]SEOOverride
}

// EmptyBundle returns a bundle with no strings and no overrides.
func EmptyBundle(language string) *Bundle {
	return &Bundle{
		Language: language,
		Strings:  map[string]string{},
		PageSEO:  map[string]SEOOverride{},
	}
}

// String returns the UI string stored under key. Blank values report false.
func (b *Bundle) String(key string) (string, bool) {
	if b == nil {
		return "", false
	}
	value, ok := b.Strings[key]
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

// Override returns the SEO override for page, if the bundle carries one.
func (b *Bundle) Override(page string) (SEOOverride, bool) {
	if b == nil {
		return SEOOverride{}, false
	}
	override, ok := b.PageSEO[page]
	return override, ok
}

// Bundles maps language codes to loaded bundles.
type Bundles map[string]*Bundle

// Get returns the bundle for code, or an empty bundle when none was loaded.
func (b Bundles) Get(code string) *Bundle {
	if bundle, ok := b[code]; ok && bundle != nil {
		return bundle
	}
	return EmptyBundle(code)
}

// Missing lists, sorted, the language codes whose bundle file was not found.
func (b Bundles) Missing() []string {
	var out []string
	for code, bundle := range b {
		if bundle != nil && bundle.Missing {
			out = append(out, code)
		}
	}
	slices.Sort(out)
	return out
}
