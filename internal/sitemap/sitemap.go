package sitemap

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/goliatone/go-seogen/internal/addressing"
)

const (
	// DefaultChangeFreq is written to every record unless overridden.
	DefaultChangeFreq = "weekly"
	// DefaultLastMod is the fixed last-modified date of every record.
	DefaultLastMod = "2024-01-01"

	homePriority  = "1.0"
	otherPriority = "0.8"
)

// Entry lists the languages a page was rendered in, in configuration order.
type Entry struct {
	Page      string
	Languages []string
}

// Options controls sitemap rendering.
type Options struct {
	Addressing addressing.Addressing
	HomePage   string
	ChangeFreq string
	LastMod    string
}

// Records returns the number of <url> records Build emits for entries.
func Records(entries []Entry) int {
	total := 0
	for _, entry := range entries {
		total += len(entry.Languages)
	}
	return total
}

// Build renders one <url> record per (page, language) of entries. Each
// record annotates the page's languages as alternates; the x-default entry
// used in page heads is not part of the sitemap.
func Build(entries []Entry, opts Options) string {
	changeFreq := strings.TrimSpace(opts.ChangeFreq)
	if changeFreq == "" {
		changeFreq = DefaultChangeFreq
	}
	lastMod := strings.TrimSpace(opts.LastMod)
	if lastMod == "" {
		lastMod = DefaultLastMod
	}
	addr := opts.Addressing

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"` + "\n")
	builder.WriteString(`        xmlns:xhtml="http://www.w3.org/1999/xhtml">` + "\n")
	for _, entry := range entries {
		priority := otherPriority
		if entry.Page == opts.HomePage {
			priority = homePriority
		}
		for _, language := range entry.Languages {
			builder.WriteString("  <url>\n")
			builder.WriteString(fmt.Sprintf("    <loc>%s</loc>\n", escape(addr.Canonical(entry.Page, language))))
			builder.WriteString(fmt.Sprintf("    <changefreq>%s</changefreq>\n", escape(changeFreq)))
			builder.WriteString(fmt.Sprintf("    <priority>%s</priority>\n", priority))
			builder.WriteString(fmt.Sprintf("    <lastmod>%s</lastmod>\n", escape(lastMod)))
			for _, alternate := range entry.Languages {
				builder.WriteString(fmt.Sprintf(
					"    <xhtml:link rel=\"alternate\" hreflang=\"%s\" href=\"%s\" />\n",
					escape(alternate),
					escape(addr.Canonical(entry.Page, alternate)),
				))
			}
			builder.WriteString("  </url>\n")
		}
	}
	builder.WriteString("</urlset>\n")
	return builder.String()
}

// Robots renders robots.txt, optionally pointing crawlers at the sitemap.
func Robots(baseURL string, includeSitemap bool) string {
	var builder strings.Builder
	builder.WriteString("User-agent: *\n")
	builder.WriteString("Allow: /\n")
	if includeSitemap {
		base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
		if base == "" {
			base = "http://localhost"
		}
		builder.WriteString("\n")
		builder.WriteString(fmt.Sprintf("Sitemap: %s/sitemap.xml\n", base))
	}
	return builder.String()
}

func escape(value string) string {
	var builder strings.Builder
	// EscapeText only fails when the writer does
	_ = xml.EscapeText(&builder, []byte(value))
	return builder.String()
}
