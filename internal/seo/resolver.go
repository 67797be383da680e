package seo

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-seogen/internal/i18n"
)

// TextCodePageDefaultMissing tags configuration errors for pages without defaults.
const TextCodePageDefaultMissing = "PAGE_DEFAULT_MISSING"

// ErrMissingPageDefault reports a page key absent from the defaults table, or
// one whose title, description or keywords default is blank.
var ErrMissingPageDefault = errors.New("seo: page default missing")

// Defaults is the hardcoded metadata for one page, used when no bundle
// supplies an override.
type Defaults struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Keywords    string `yaml:"keywords" json:"keywords"`
}

func (d Defaults) complete() bool {
	for _, value := range []string{d.Title, d.Description, d.Keywords} {
		if strings.TrimSpace(value) == "" {
			return false
		}
	}
	return true
}

// Resolved is the fully populated metadata for one (page, language) pair.
type Resolved struct {
	Title         string
	Description   string
	Keywords      string
	OGTitle       string
	OGDescription string
}

// Resolver applies the bundle then defaults fallback chain.
type Resolver struct {
	defaults map[string]Defaults
}

// NewResolver returns a resolver over a copy of the page defaults table.
func NewResolver(defaults map[string]Defaults) *Resolver {
	copied := make(map[string]Defaults, len(defaults))
	for key, value := range defaults {
		copied[key] = value
	}
	return &Resolver{defaults: copied}
}

// Validate checks that every page key has a complete defaults entry.
func (r *Resolver) Validate(pageKeys []string) error {
	var missing []string
	for _, key := range pageKeys {
		if d, ok := r.defaults[key]; !ok || !d.complete() {
			missing = append(missing, key)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	slices.Sort(missing)
	return missingDefault(missing...)
}

// Resolve computes the metadata for pageKey in language. Bundle values
// that are empty or whitespace count as absent.
func (r *Resolver) Resolve(pageKey, language string, bundles i18n.Bundles) (Resolved, error) {
	defaults, ok := r.defaults[pageKey]
	if !ok || !defaults.complete() {
		return Resolved{}, missingDefault(pageKey)
	}

	override, _ := bundles.Get(language).Override(pageKey)

	resolved := Resolved{
		Title:       firstPresent(override.Title, defaults.Title),
		Description: firstPresent(override.Description, defaults.Description),
		Keywords:    firstPresent(override.Keywords, defaults.Keywords),
	}
	resolved.OGTitle = firstPresent(override.OGTitle, resolved.Title)
	resolved.OGDescription = firstPresent(override.OGDescription, resolved.Description)
	return resolved, nil
}

func firstPresent(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func missingDefault(keys ...string) error {
	return goerrors.Wrap(
		fmt.Errorf("%w: %s", ErrMissingPageDefault, strings.Join(keys, ", ")),
		goerrors.CategoryValidation,
		"seo: no default metadata configured",
	).WithTextCode(TextCodePageDefaultMissing).WithMetadata(map[string]any{
		"pages": keys,
	})
}
