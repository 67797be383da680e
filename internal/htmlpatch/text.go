package htmlpatch

import (
	"golang.org/x/net/html"

	"github.com/goliatone/go-seogen/internal/i18n"
)

// MarkerAttribute identifies elements whose text is localized at build time.
// The attribute stays in the output for the client-side language switcher.
const MarkerAttribute = "data-i18n"

// TextKey pairs a UI string key with the text used when a bundle lacks it.
type TextKey struct {
	Key     string `yaml:"key" json:"key"`
	Default string `yaml:"default" json:"default"`
}

// DefaultTextKeys returns the UI strings localized when no list is configured.
func DefaultTextKeys() []TextKey {
	return []TextKey{
		{Key: "gameTitle", Default: "TYPING RAIN"},
		{Key: "startGame", Default: "START GAME"},
		{Key: "playAgain", Default: "PLAY AGAIN"},
		{Key: "leaderboard", Default: "LEADERBOARD"},
	}
}

// elements whose content is not addressable as a child text node
var skipTextElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
	"script": true, "style": true, "title": true,
}

func (p *Patcher) substituteTexts(doc *document, bundle *i18n.Bundle) {
	if len(p.texts) == 0 {
		return
	}
	values := make(map[string]string, len(p.texts))
	for _, key := range p.texts {
		value, ok := bundle.String(key.Key)
		if !ok {
			value = key.Default
		}
		values[key.Key] = escapeText(value)
	}

	for i, piece := range doc.pieces {
		if piece.token.Type != html.StartTagToken || skipTextElements[piece.token.Data] {
			continue
		}
		key, ok := attrValue(piece.token, MarkerAttribute)
		if !ok {
			continue
		}
		value, ok := values[key]
		if !ok {
			continue
		}
		setLeadingText(doc, i, value)
	}
}
