package htmlpatch

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// piece is one token of the template. raw holds the bytes emitted on
// render; untouched pieces keep the original text verbatim.
type piece struct {
	raw     string
	token   html.Token
	removed bool
	after   []string
}

type document struct {
	pieces []*piece
}

func parseDocument(template string) (*document, error) {
	z := html.NewTokenizer(strings.NewReader(template))
	doc := &document{}
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); err != io.EOF {
				return nil, fmt.Errorf("htmlpatch: tokenize template: %w", err)
			}
			return doc, nil
		}
		// Raw must be copied before Token unescapes the buffer in place.
		raw := string(z.Raw())
		doc.pieces = append(doc.pieces, &piece{raw: raw, token: z.Token()})
	}
}

func (d *document) render() string {
	var builder strings.Builder
	for _, p := range d.pieces {
		if !p.removed {
			builder.WriteString(p.raw)
		}
		for _, inserted := range p.after {
			builder.WriteString(inserted)
		}
	}
	return builder.String()
}

// find returns the index of the first live start tag named name that
// satisfies match, or -1.
func (d *document) find(name string, match func(html.Token) bool) int {
	for i, p := range d.pieces {
		if p.removed || !isStartTag(p.token) || p.token.Data != name {
			continue
		}
		if match == nil || match(p.token) {
			return i
		}
	}
	return -1
}

// next returns the piece after index i, or nil at the end of the document.
func (d *document) next(i int) *piece {
	if i+1 < len(d.pieces) {
		return d.pieces[i+1]
	}
	return nil
}

// remove drops the piece at i along with the line break and indentation
// that introduced it.
func (d *document) remove(i int) {
	d.pieces[i].removed = true
	if i == 0 {
		return
	}
	prev := d.pieces[i-1]
	if prev.removed || prev.token.Type != html.TextToken {
		return
	}
	text := strings.TrimRight(prev.raw, " \t")
	if strings.HasSuffix(text, "\n") {
		text = strings.TrimSuffix(text, "\n")
		text = strings.TrimSuffix(text, "\r")
		prev.raw = text
	}
}

// lineIndent returns the whitespace that precedes the piece at i on its
// own line, or fallback when the piece does not start a line.
func (d *document) lineIndent(i int, fallback string) string {
	text := d.precedingText(i)
	idx := strings.LastIndex(text, "\n")
	if idx < 0 {
		return fallback
	}
	indent := text[idx+1:]
	if strings.Trim(indent, " \t") != "" {
		return fallback
	}
	return indent
}

// lineBreak returns the line ending used before the piece at i, falling back
// to the first line ending in the document, then to "\n".
func (d *document) lineBreak(i int) string {
	text := d.precedingText(i)
	if idx := strings.LastIndex(text, "\n"); idx >= 0 {
		return lineEnding(text[:idx+1])
	}
	for _, p := range d.pieces {
		if idx := strings.Index(p.raw, "\n"); idx >= 0 {
			return lineEnding(p.raw[:idx+1])
		}
	}
	return "\n"
}

func lineEnding(upToNewline string) string {
	if strings.HasSuffix(upToNewline, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// precedingText joins the text pieces directly before the piece at i.
func (d *document) precedingText(i int) string {
	var preceding strings.Builder
	for j := i - 1; j >= 0; j-- {
		p := d.pieces[j]
		if p.removed {
			continue
		}
		if p.token.Type != html.TextToken {
			break
		}
		preceding.WriteString(reverse(p.raw))
	}
	return reverse(preceding.String())
}

func reverse(s string) string {
	runes := []rune(s)
	slices.Reverse(runes)
	return string(runes)
}

func isStartTag(tok html.Token) bool {
	return tok.Type == html.StartTagToken || tok.Type == html.SelfClosingTagToken
}

func attrValue(tok html.Token, key string) (string, bool) {
	for _, attr := range tok.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// hasToken reports whether a space-separated attribute such as rel
// contains want.
func hasToken(tok html.Token, key, want string) bool {
	value, ok := attrValue(tok, key)
	if !ok {
		return false
	}
	for _, field := range strings.Fields(value) {
		if strings.EqualFold(field, want) {
			return true
		}
	}
	return false
}

// setAttr replaces the value of key on the piece, appending the attribute
// when absent, and re-renders the tag.
func (p *piece) setAttr(key, value string) {
	for i := range p.token.Attr {
		if p.token.Attr[i].Key == key {
			p.token.Attr[i].Val = value
			p.raw = renderTag(p.token)
			return
		}
	}
	p.token.Attr = append(p.token.Attr, html.Attribute{Key: key, Val: value})
	p.raw = renderTag(p.token)
}

func renderTag(tok html.Token) string {
	var builder strings.Builder
	builder.WriteByte('<')
	builder.WriteString(tok.Data)
	for _, attr := range tok.Attr {
		builder.WriteByte(' ')
		if attr.Namespace != "" {
			builder.WriteString(attr.Namespace)
			builder.WriteByte(':')
		}
		builder.WriteString(attr.Key)
		builder.WriteString(`="`)
		builder.WriteString(html.EscapeString(attr.Val))
		builder.WriteByte('"')
	}
	if tok.Type == html.SelfClosingTagToken {
		builder.WriteString(" /")
	}
	builder.WriteByte('>')
	return builder.String()
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeText(value string) string {
	return textEscaper.Replace(value)
}
