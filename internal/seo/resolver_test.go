package seo

import (
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-seogen/internal/i18n"
)

func testDefaults() map[string]Defaults {
	return map[string]Defaults{
		"index": {
			Title:       "Typing Rain - Free Typing Game",
			Description: "Improve typing speed with falling words",
			Keywords:    "typing game, typing practice",
		},
		"practice": {
			Title:       "Practice Mode - Typing Rain",
			Description: "Practice typing without pressure",
			Keywords:    "typing practice",
		},
	}
}

func frenchBundles() i18n.Bundles {
	fr := i18n.EmptyBundle("fr")
	fr.PageSEO["practice"] = i18n.SEOOverride{Title: "Mode Pratique"}
	fr.PageSEO["index"] = i18n.SEOOverride{
		Title:         "Pluie de Frappe",
		Description:   "  ",
		OGTitle:       "Jouez à Pluie de Frappe",
		OGDescription: "Le jeu de frappe",
	}
	return i18n.Bundles{"fr": fr}
}

func TestResolveFallbackChain(t *testing.T) {
	resolver := NewResolver(testDefaults())
	defaults := testDefaults()

	cases := []struct {
		name     string
		page     string
		language string
		want     Resolved
	}{
		{
			name:     "title override mirrors into og title",
			page:     "practice",
			language: "fr",
			want: Resolved{
				Title:         "Mode Pratique",
				Description:   defaults["practice"].Description,
				Keywords:      defaults["practice"].Keywords,
				OGTitle:       "Mode Pratique",
				OGDescription: defaults["practice"].Description,
			},
		},
		{
			name:     "blank override falls back to default",
			page:     "index",
			language: "fr",
			want: Resolved{
				Title:         "Pluie de Frappe",
				Description:   defaults["index"].Description,
				Keywords:      defaults["index"].Keywords,
				OGTitle:       "Jouez à Pluie de Frappe",
				OGDescription: "Le jeu de frappe",
			},
		},
		{
			name:     "language without bundle resolves to defaults",
			page:     "index",
			language: "ru",
			want: Resolved{
				Title:         defaults["index"].Title,
				Description:   defaults["index"].Description,
				Keywords:      defaults["index"].Keywords,
				OGTitle:       defaults["index"].Title,
				OGDescription: defaults["index"].Description,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := resolver.Resolve(tc.page, tc.language, frenchBundles())
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if got != tc.want {
				t.Fatalf("unexpected resolution\nwant: %+v\ngot:  %+v", tc.want, got)
			}
		})
	}
}

func TestResolveIsTotal(t *testing.T) {
	resolver := NewResolver(testDefaults())
	for page := range testDefaults() {
		for _, language := range []string{"en", "fr", "zh-cn"} {
			got, err := resolver.Resolve(page, language, frenchBundles())
			if err != nil {
				t.Fatalf("resolve %s/%s: %v", page, language, err)
			}
			for field, value := range map[string]string{
				"title":         got.Title,
				"description":   got.Description,
				"keywords":      got.Keywords,
				"ogTitle":       got.OGTitle,
				"ogDescription": got.OGDescription,
			} {
				if value == "" {
					t.Fatalf("%s/%s: field %s left empty", page, language, field)
				}
			}
		}
	}
}

func TestResolveMissingDefault(t *testing.T) {
	resolver := NewResolver(testDefaults())

	_, err := resolver.Resolve("tournament", "en", nil)
	if !errors.Is(err, ErrMissingPageDefault) {
		t.Fatalf("expected ErrMissingPageDefault, got %v", err)
	}

	var typed *goerrors.Error
	if !errors.As(err, &typed) {
		t.Fatalf("expected go-errors error, got %T", err)
	}
	if typed.TextCode != TextCodePageDefaultMissing {
		t.Fatalf("expected text code %s, got %s", TextCodePageDefaultMissing, typed.TextCode)
	}
}

func TestValidateReportsEveryMissingPage(t *testing.T) {
	resolver := NewResolver(testDefaults())

	if err := resolver.Validate([]string{"index", "practice"}); err != nil {
		t.Fatalf("expected known pages to validate, got %v", err)
	}

	err := resolver.Validate([]string{"tournament", "index", "about"})
	if !errors.Is(err, ErrMissingPageDefault) {
		t.Fatalf("expected ErrMissingPageDefault, got %v", err)
	}
	var typed *goerrors.Error
	if !errors.As(err, &typed) {
		t.Fatalf("expected go-errors error, got %T", err)
	}
	pages, _ := typed.Metadata["pages"].([]string)
	if len(pages) != 2 || pages[0] != "about" || pages[1] != "tournament" {
		t.Fatalf("expected sorted missing pages, got %v", typed.Metadata["pages"])
	}
}

func TestNewResolverCopiesDefaults(t *testing.T) {
	defaults := testDefaults()
	resolver := NewResolver(defaults)
	delete(defaults, "index")

	if _, err := resolver.Resolve("index", "en", nil); err != nil {
		t.Fatalf("expected resolver to keep its own copy, got %v", err)
	}
}

func TestBlankDefaultsCountAsMissing(t *testing.T) {
	resolver := NewResolver(map[string]Defaults{
		"index":    {Title: "  ", Description: "d", Keywords: "k"},
		"practice": {Title: "Practice", Description: "d", Keywords: "\t"},
		"about":    {Title: "About", Description: "d", Keywords: "k"},
	})

	fr := i18n.EmptyBundle("fr")
	fr.PageSEO["index"] = i18n.SEOOverride{Title: "Pluie de Frappe"}
	for _, page := range []string{"index", "practice"} {
		got, err := resolver.Resolve(page, "fr", i18n.Bundles{"fr": fr})
		if !errors.Is(err, ErrMissingPageDefault) {
			t.Fatalf("%s: expected ErrMissingPageDefault, got %+v (%v)", page, got, err)
		}
	}

	err := resolver.Validate([]string{"about", "index", "practice"})
	var typed *goerrors.Error
	if !errors.As(err, &typed) || typed.TextCode != TextCodePageDefaultMissing {
		t.Fatalf("expected %s, got %v", TextCodePageDefaultMissing, err)
	}
	pages, _ := typed.Metadata["pages"].([]string)
	if len(pages) != 2 || pages[0] != "index" || pages[1] != "practice" {
		t.Fatalf("expected blank pages reported, got %v", typed.Metadata["pages"])
	}
}
