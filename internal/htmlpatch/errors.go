package htmlpatch

import (
	"errors"
	"strings"
)

// ErrMissingElement is matched by every MissingElementError.
var ErrMissingElement = errors.New("htmlpatch: mandatory element missing")

// Element identifiers reported by MissingElementError.
const (
	ElementTitle     = "title"
	ElementCanonical = `link[rel="canonical"]`
	ElementHTMLLang  = "html[lang]"
)

// MissingElementError lists the mandatory elements a template lacks.
type MissingElementError struct {
	Elements []string
}

func (e *MissingElementError) Error() string {
	return "htmlpatch: template missing mandatory element(s): " + strings.Join(e.Elements, ", ")
}

func (e *MissingElementError) Unwrap() error {
	return ErrMissingElement
}
