package generator

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-seogen/internal/htmlpatch"
)

// Text codes attached to generator errors.
const (
	TextCodeConfigInvalid          = "CONFIG_INVALID"
	TextCodeTemplateUnreadable     = "TEMPLATE_UNREADABLE"
	TextCodeTemplateElementMissing = "TEMPLATE_ELEMENT_MISSING"
	TextCodeUnitWriteFailed        = "UNIT_WRITE_FAILED"
	TextCodeSitemapWriteFailed     = "SITEMAP_WRITE_FAILED"
)

var (
	// ErrUnknownPage reports a requested page that is not configured.
	ErrUnknownPage = errors.New("generator: unknown page")
	// ErrUnknownLanguage reports a requested language that is not configured.
	ErrUnknownLanguage = errors.New("generator: unknown language")
	// ErrNoPages reports a configuration without pages.
	ErrNoPages = errors.New("generator: no pages configured")
	// ErrNoLanguages reports a configuration without languages.
	ErrNoLanguages = errors.New("generator: no languages configured")
)

func configError(cause error, metadata map[string]any) error {
	return goerrors.Wrap(cause, goerrors.CategoryValidation, "generator: invalid build configuration").
		WithTextCode(TextCodeConfigInvalid).
		WithMetadata(metadata)
}

func unitError(err error, page, language string) *goerrors.Error {
	metadata := map[string]any{"page": page, "language": language}
	switch {
	case errors.Is(err, htmlpatch.ErrMissingElement):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "template is missing mandatory elements").
			WithTextCode(TextCodeTemplateElementMissing).
			WithMetadata(metadata)
	default:
		return goerrors.Wrap(err, goerrors.CategoryOperation, fmt.Sprintf("render %s/%s", language, page)).
			WithMetadata(metadata)
	}
}

func templateError(err error, page string) *goerrors.Error {
	return goerrors.Wrap(err, goerrors.CategoryNotFound, "template unreadable").
		WithTextCode(TextCodeTemplateUnreadable).
		WithMetadata(map[string]any{"page": page})
}

func writeError(err error, output string) *goerrors.Error {
	return goerrors.Wrap(err, goerrors.CategoryOperation, "write failed").
		WithTextCode(TextCodeUnitWriteFailed).
		WithMetadata(map[string]any{"output": output})
}

func sitemapError(err error, output string) *goerrors.Error {
	return goerrors.Wrap(err, goerrors.CategoryOperation, "sitemap write failed").
		WithTextCode(TextCodeSitemapWriteFailed).
		WithMetadata(map[string]any{"output": output})
}

// reasonCode returns the text code carried by err, if any.
func reasonCode(err error) string {
	var typed *goerrors.Error
	if errors.As(err, &typed) {
		return typed.TextCode
	}
	return ""
}
