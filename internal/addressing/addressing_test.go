package addressing

import (
	"slices"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var testLanguages = []string{"en", "zh-cn", "zh-tw", "ja", "ko", "de", "fr", "es", "it", "ru", "pt"}

func newTestAddressing() Addressing {
	return New("https://www.typingrain.top/", "en", testLanguages)
}

func TestCanonical(t *testing.T) {
	a := newTestAddressing()

	cases := map[string]struct {
		page, language, want string
	}{
		"default language has no segment": {"index.html", "en", "https://www.typingrain.top/index.html"},
		"other language is prefixed":      {"practice.html", "fr", "https://www.typingrain.top/fr/practice.html"},
		"region code kept verbatim":       {"tournament.html", "zh-cn", "https://www.typingrain.top/zh-cn/tournament.html"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := a.Canonical(tc.page, tc.language); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestAlternatesIncludeEveryLanguageAndXDefault(t *testing.T) {
	a := newTestAddressing()
	alternates := a.Alternates("index.html")

	if len(alternates) != len(testLanguages)+1 {
		t.Fatalf("expected %d alternates, got %d", len(testLanguages)+1, len(alternates))
	}
	for i, language := range testLanguages {
		if alternates[i].HrefLang != language {
			t.Fatalf("alternate %d: expected %s, got %s", i, language, alternates[i].HrefLang)
		}
	}
	last := alternates[len(alternates)-1]
	if last.HrefLang != XDefault || last.URL != "https://www.typingrain.top/index.html" {
		t.Fatalf("unexpected x-default entry %+v", last)
	}
}

func TestOutputPath(t *testing.T) {
	a := newTestAddressing()
	if got := a.OutputPath("index.html", "en"); got != "index.html" {
		t.Fatalf("expected root path for default language, got %s", got)
	}
	if got := a.OutputPath("index.html", "ja"); got != "ja/index.html" {
		t.Fatalf("expected language directory, got %s", got)
	}
}

func TestURLProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	a := newTestAddressing()
	pages := gen.OneConstOf("index.html", "practice.html", "tournament.html", "about.html")
	languages := gen.OneConstOf("en", "zh-cn", "zh-tw", "ja", "ko", "de", "fr", "es", "it", "ru", "pt")

	properties.Property("canonical has a language segment unless default", prop.ForAll(
		func(page, language string) bool {
			canonical := a.Canonical(page, language)
			if language == a.DefaultLanguage {
				return canonical == a.Domain+"/"+page
			}
			return strings.HasPrefix(canonical, a.Domain+"/"+language+"/")
		},
		pages, languages,
	))

	properties.Property("alternates are identical for every rendering language", prop.ForAll(
		func(page, first, second string) bool {
			return slices.Equal(a.URLSet(page, first).Alternates, a.URLSet(page, second).Alternates)
		},
		pages, languages, languages,
	))

	properties.Property("canonical appears among alternates", prop.ForAll(
		func(page, language string) bool {
			set := a.URLSet(page, language)
			for _, alternate := range set.Alternates {
				if alternate.HrefLang == language && alternate.URL == set.Canonical {
					return true
				}
			}
			return false
		},
		pages, languages,
	))

	properties.TestingRun(t)
}
