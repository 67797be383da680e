package htmlpatch

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-seogen/internal/addressing"
	"github.com/goliatone/go-seogen/internal/i18n"
	"github.com/goliatone/go-seogen/internal/seo"
)

// AlternatesMarker is the comment placed above the generated alternate links.
const AlternatesMarker = "Hreflang for international SEO"

const defaultIndent = "    "

// Input carries everything needed to render one (page, language) unit.
type Input struct {
	SEO      seo.Resolved
	URLs     addressing.URLSet
	Language string
	Bundle   *i18n.Bundle
}

// Patcher rewrites a page template for one language.
type Patcher struct {
	texts []TextKey
}

// Option configures a Patcher.
type Option func(*Patcher)

// WithTextKeys replaces the UI strings localized through data-i18n markers.
func WithTextKeys(keys []TextKey) Option {
	return func(p *Patcher) {
		if keys != nil {
			p.texts = append([]TextKey(nil), keys...)
		}
	}
}

// NewPatcher returns a patcher substituting DefaultTextKeys unless
// configured otherwise.
func NewPatcher(opts ...Option) *Patcher {
	p := &Patcher{texts: DefaultTextKeys()}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// metaTargets maps a meta tag identifier (its property or name attribute)
// to the value it receives.
func metaTargets(in Input) map[string]string {
	return map[string]string{
		"description":         in.SEO.Description,
		"keywords":            in.SEO.Keywords,
		"og:title":            in.SEO.OGTitle,
		"twitter:title":       in.SEO.OGTitle,
		"og:description":      in.SEO.OGDescription,
		"twitter:description": in.SEO.OGDescription,
		"og:url":              in.URLs.Canonical,
	}
}

// Patch applies the resolved metadata, the canonical and alternate links,
// the document language and the localized UI strings to template.
// Applying Patch to its own output with the same input is a no-op.
func (p *Patcher) Patch(template string, in Input) (string, error) {
	doc, err := parseDocument(template)
	if err != nil {
		return "", err
	}

	var missing []string
	if !patchTitle(doc, in.SEO.Title) {
		missing = append(missing, ElementTitle)
	}
	patchMeta(doc, metaTargets(in))
	canonical := patchCanonical(doc, in.URLs.Canonical)
	if canonical < 0 {
		missing = append(missing, ElementCanonical)
	}
	if !patchLanguage(doc, in.Language) {
		missing = append(missing, ElementHTMLLang)
	}
	if len(missing) > 0 {
		return "", &MissingElementError{Elements: missing}
	}

	replaceAlternates(doc, canonical, in.URLs.Alternates)
	p.substituteTexts(doc, in.Bundle)

	return doc.render(), nil
}

func patchTitle(doc *document, title string) bool {
	idx := doc.find("title", nil)
	if idx < 0 || doc.pieces[idx].token.Type == html.SelfClosingTagToken {
		return false
	}
	setLeadingText(doc, idx, escapeText(title))
	return true
}

func patchMeta(doc *document, targets map[string]string) {
	done := make(map[string]bool, len(targets))
	for _, p := range doc.pieces {
		if !isStartTag(p.token) || p.token.Data != "meta" {
			continue
		}
		id := metaIdentifier(p.token)
		value, ok := targets[id]
		if !ok || done[id] {
			continue
		}
		p.setAttr("content", value)
		done[id] = true
	}
}

func metaIdentifier(tok html.Token) string {
	if value, ok := attrValue(tok, "property"); ok && strings.TrimSpace(value) != "" {
		return strings.ToLower(strings.TrimSpace(value))
	}
	value, _ := attrValue(tok, "name")
	return strings.ToLower(strings.TrimSpace(value))
}

func patchCanonical(doc *document, canonical string) int {
	idx := doc.find("link", func(tok html.Token) bool {
		return hasToken(tok, "rel", "canonical")
	})
	if idx < 0 {
		return -1
	}
	doc.pieces[idx].setAttr("href", canonical)
	return idx
}

func patchLanguage(doc *document, language string) bool {
	idx := doc.find("html", nil)
	if idx < 0 {
		return false
	}
	if _, ok := attrValue(doc.pieces[idx].token, "lang"); !ok {
		return false
	}
	doc.pieces[idx].setAttr("lang", language)
	return true
}

// replaceAlternates drops every hreflang alternate link and marker comment,
// then writes a fresh block after the canonical link.
func replaceAlternates(doc *document, canonical int, alternates []addressing.Alternate) {
	for i, p := range doc.pieces {
		if p.removed {
			continue
		}
		if isAlternateLink(p.token) || isMarkerComment(p.token) {
			doc.remove(i)
		}
	}

	indent := doc.lineIndent(canonical, defaultIndent)
	eol := doc.lineBreak(canonical)
	block := make([]string, 0, len(alternates)+1)
	block = append(block, eol+indent+"<!-- "+AlternatesMarker+" -->")
	for _, alternate := range alternates {
		link := html.Token{
			Type: html.SelfClosingTagToken,
			Data: "link",
			Attr: []html.Attribute{
				{Key: "rel", Val: "alternate"},
				{Key: "hreflang", Val: alternate.HrefLang},
				{Key: "href", Val: alternate.URL},
			},
		}
		block = append(block, eol+indent+renderTag(link))
	}
	target := doc.pieces[canonical]
	target.after = append(target.after, block...)
}

func isAlternateLink(tok html.Token) bool {
	if !isStartTag(tok) || tok.Data != "link" {
		return false
	}
	if _, ok := attrValue(tok, "hreflang"); !ok {
		return false
	}
	return hasToken(tok, "rel", "alternate")
}

func isMarkerComment(tok html.Token) bool {
	return tok.Type == html.CommentToken && strings.TrimSpace(tok.Data) == AlternatesMarker
}

// setLeadingText makes value the first child text of the element opened at
// idx, replacing an existing leading text token or inserting one.
func setLeadingText(doc *document, idx int, value string) {
	if next := doc.next(idx); next != nil && next.token.Type == html.TextToken {
		next.raw = value
		return
	}
	doc.pieces[idx].after = append(doc.pieces[idx].after, value)
}
