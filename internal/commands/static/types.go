package staticcmd

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/language"

	"github.com/goliatone/go-seogen/internal/generator"
)

// ErrGeneratorRequired is returned by handlers constructed without a
// generator service.
var ErrGeneratorRequired = errors.New("staticcmd: generator service is required")

// ResultCallback is called synchronously with the BuildResult of build and
// diff runs, including partial results that accompany an error.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope pairs a BuildResult with the operation that produced it
// ("build" or "diff").
type ResultEnvelope struct {
	Result   *generator.BuildResult
	Metadata map[string]any
}

// BuildSiteCommand renders the page and language matrix. Pages and Languages
// narrow the run; a narrowed run leaves sitemap.xml untouched.
type BuildSiteCommand struct {
	Pages          []string       `json:"pages,omitempty"`
	Languages      []string       `json:"languages,omitempty"`
	DryRun         bool           `json:"dry_run,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

func (BuildSiteCommand) Type() string { return "seogen.static.build" }

func (m BuildSiteCommand) Validate() error {
	return validateScope(m.Type(), m.Pages, m.Languages)
}

// DiffSiteCommand renders without writing and reports changed outputs.
type DiffSiteCommand struct {
	Pages          []string       `json:"pages,omitempty"`
	Languages      []string       `json:"languages,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

func (DiffSiteCommand) Type() string { return "seogen.static.diff" }

func (m DiffSiteCommand) Validate() error {
	return validateScope(m.Type(), m.Pages, m.Languages)
}

// BuildSitemapCommand rewrites sitemap.xml for every page and language.
type BuildSitemapCommand struct{}

func (BuildSitemapCommand) Type() string    { return "seogen.static.sitemap" }
func (BuildSitemapCommand) Validate() error { return nil }

// CleanSiteCommand removes everything below the output directory.
type CleanSiteCommand struct{}

func (CleanSiteCommand) Type() string    { return "seogen.static.clean" }
func (CleanSiteCommand) Validate() error { return nil }

// validateScope rejects blank page names and language codes that are not
// BCP 47 tags. Error codes are prefixed with the message type.
func validateScope(messageType string, pages, languages []string) error {
	scope := struct {
		Pages     []string
		Languages []string
	}{pages, languages}

	blank := func(code string) validation.Rule {
		return validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError(code, "must not be blank")
			}
			return nil
		})
	}
	tag := validation.By(func(value any) error {
		if code := strings.TrimSpace(value.(string)); code != "" {
			if _, err := language.Parse(code); err != nil {
				return validation.NewError(messageType+".language_invalid", "must be a BCP 47 tag")
			}
		}
		return nil
	})

	return validation.ValidateStruct(&scope,
		validation.Field(&scope.Pages, validation.Each(blank(messageType+".page_invalid"))),
		validation.Field(&scope.Languages, validation.Each(blank(messageType+".language_invalid"), tag)),
	)
}
