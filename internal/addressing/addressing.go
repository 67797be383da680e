package addressing

import (
	"path"
	"strings"
)

// XDefault is the hreflang tag of the language-neutral fallback entry.
const XDefault = "x-default"

// Alternate is one alternate-language link: an hreflang tag and its URL.
type Alternate struct {
	HrefLang string
	URL      string
}

// URLSet is the canonical URL of one (page, language) pair together with
// the alternates of the page.
type URLSet struct {
	Canonical  string
	Alternates []Alternate
}

// Addressing computes URLs and output paths for pages. Languages are kept
// in configuration order.
type Addressing struct {
	Domain          string
	DefaultLanguage string
	Languages       []string
}

// New returns an Addressing with the domain normalised.
func New(domain, defaultLanguage string, languages []string) Addressing {
	return Addressing{
		Domain:          strings.TrimRight(strings.TrimSpace(domain), "/"),
		DefaultLanguage: defaultLanguage,
		Languages:       append([]string(nil), languages...),
	}
}

// Canonical returns the authoritative URL of page in language.
func (a Addressing) Canonical(page, language string) string {
	return a.base() + "/" + a.OutputPath(page, language)
}

// Alternates lists one entry per configured language plus the x-default
// entry. The list depends only on page.
func (a Addressing) Alternates(page string) []Alternate {
	out := make([]Alternate, 0, len(a.Languages)+1)
	for _, language := range a.Languages {
		out = append(out, Alternate{HrefLang: language, URL: a.Canonical(page, language)})
	}
	return append(out, Alternate{HrefLang: XDefault, URL: a.Canonical(page, a.DefaultLanguage)})
}

// URLSet returns the canonical URL and alternates for one unit.
func (a Addressing) URLSet(page, language string) URLSet {
	return URLSet{
		Canonical:  a.Canonical(page, language),
		Alternates: a.Alternates(page),
	}
}

// OutputPath returns the slash-separated path of a unit relative to the
// output root: the page file for the default language, `{code}/{page}`
// for every other language.
func (a Addressing) OutputPath(page, language string) string {
	page = strings.TrimLeft(page, "/")
	if language == a.DefaultLanguage {
		return page
	}
	return path.Join(language, page)
}

func (a Addressing) base() string {
	return strings.TrimRight(a.Domain, "/")
}
