package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UnitResult describes one (page, language) unit that rendered successfully.
type UnitResult struct {
	Page     string
	Language string
	Output   string
	Checksum string
	Bytes    int
	Changed  bool
	Duration time.Duration
}

// SkippedUnit describes a unit that failed and produced no output.
type SkippedUnit struct {
	Page     string
	Language string
	Output   string
	Code     string
	Err      error
}

// Reason renders the failure for reports.
func (s SkippedUnit) Reason() string {
	if s.Err == nil {
		return s.Code
	}
	return s.Err.Error()
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	RunID          uuid.UUID
	Languages      []string
	Pages          []string
	Succeeded      []UnitResult
	Skipped        []SkippedUnit
	Sitemap        bool
	SitemapPath    string
	Robots         bool
	Duration       time.Duration
	DryRun         bool
	Errors         []error
	MissingBundles []string
}

// PagesBuilt returns the number of units that rendered.
func (r *BuildResult) PagesBuilt() int {
	if r == nil {
		return 0
	}
	return len(r.Succeeded)
}

// PagesSkipped returns the number of units that failed.
func (r *BuildResult) PagesSkipped() int {
	if r == nil {
		return 0
	}
	return len(r.Skipped)
}

// Changed lists the outputs whose content differs from what storage holds.
func (r *BuildResult) Changed() []string {
	if r == nil {
		return nil
	}
	var out []string
	for _, unit := range r.Succeeded {
		if unit.Changed {
			out = append(out, unit.Output)
		}
	}
	return out
}

// Summary renders a one-line report of the run.
func (r *BuildResult) Summary() string {
	if r == nil {
		return "no build"
	}
	var builder strings.Builder
	verb := "built"
	if r.DryRun {
		verb = "rendered"
	}
	fmt.Fprintf(&builder, "%s %d page(s), skipped %d", verb, r.PagesBuilt(), r.PagesSkipped())
	if r.Sitemap {
		builder.WriteString(", sitemap generated")
	} else {
		builder.WriteString(", sitemap not generated")
	}
	if len(r.MissingBundles) > 0 {
		fmt.Fprintf(&builder, ", no bundle for %s", strings.Join(r.MissingBundles, ", "))
	}
	for _, skipped := range r.Skipped {
		fmt.Fprintf(&builder, "; %s/%s: %s", skipped.Language, skipped.Page, skipped.Reason())
	}
	return builder.String()
}
