// Package report turns a structured brand review into a complete,
// self-contained HTML document. Generation is pure: the same review,
// company name and timestamp always produce byte-identical output, which
// the review UI relies on for live preview and the tests rely on for
// reproducibility.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/brandpulse/audit-delivery/internal/domain/entity/review"
)

const defaultCompanyName = "Your Brand"

// Generator renders review findings into the report document. It performs
// no I/O and holds no mutable state.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the full report document. It is total: missing optional
// sections are suppressed or replaced with placeholder text, never errors.
func (g *Generator) Generate(rv *review.BrandReview, companyName string, generatedAt time.Time) []byte {
	if companyName == "" {
		companyName = defaultCompanyName
	}

	var b strings.Builder
	d := &document{b: &b}

	d.writeHead(companyName)
	d.writeHeader(companyName, rv.OverallScore)

	d.writeExecutiveSummary(rv.ExecutiveSummary)
	d.writeBrandClarity(rv.BrandClarity)
	d.writePlatformPriority(rv.PlatformPriority)
	d.writeStrategicFocus(rv.StrategicFocus)
	d.writePlatformReviews(rv.PlatformReviews)
	d.writeContentPatterns(rv.ContentPatterns)
	d.writeSolutions(rv.Solutions)
	d.writeInspiration(rv.Inspiration)
	d.writeNext30Days(rv.Next30Days)

	d.writeFooter(generatedAt)

	return []byte(b.String())
}

// document accumulates markup and tracks positional section numbering.
// Sections are numbered in emission order, so suppressing one renumbers
// everything after it.
type document struct {
	b       *strings.Builder
	section int
}

// esc escapes free text for HTML interpolation and converts newlines into
// explicit line breaks. Applied to every interpolated string field without
// exception; review content is staff-editable and must never inject markup.
func esc(s string) string {
	s = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	).Replace(s)
	return strings.ReplaceAll(s, "\n", "<br>")
}

// scoreBand maps an overall score onto one of four visual bands.
type scoreBand struct {
	Label string
	Color string
}

// bandForScore selects the accent band by threshold.
func bandForScore(score int) scoreBand {
	switch {
	case score >= 80:
		return scoreBand{Label: "Strong", Color: "#059669"}
	case score >= 60:
		return scoreBand{Label: "Moderate", Color: "#d97706"}
	case score >= 40:
		return scoreBand{Label: "Weak", Color: "#ea580c"}
	default:
		return scoreBand{Label: "Poor", Color: "#dc2626"}
	}
}

func (d *document) writef(format string, args ...interface{}) {
	fmt.Fprintf(d.b, format, args...)
}

func (d *document) write(s string) {
	d.b.WriteString(s)
}

// beginSection opens a numbered section. The number is positional.
func (d *document) beginSection(title string) {
	d.section++
	d.writef(`<section class="report-section"><h2><span class="section-number">%02d</span>%s</h2>`,
		d.section, esc(title))
}

func (d *document) endSection() {
	d.write(`</section>`)
}

func (d *document) writeHead(companyName string) {
	d.write("<!DOCTYPE html>\n")
	d.write(`<html lang="en"><head><meta charset="utf-8">`)
	d.writef(`<title>%s — Brand Audit Report</title>`, esc(companyName))
	d.write(`<style>`)
	d.write(documentStyles)
	d.write(`</style></head><body><main class="report">`)
}

// writeHeader renders the company banner and the score gauge. The gauge
// fill fraction is score/100 using the same banding as the numeric display.
func (d *document) writeHeader(companyName string, score int) {
	band := bandForScore(score)
	fill := gaugeDash(score)

	d.write(`<header class="report-header">`)
	d.writef(`<h1>%s</h1><p class="report-subtitle">Brand Audit Report</p>`, esc(companyName))
	d.writef(`<div class="score-gauge"><svg viewBox="0 0 120 120" role="img">`+
		`<circle class="gauge-track" cx="60" cy="60" r="54"/>`+
		`<circle class="gauge-fill" cx="60" cy="60" r="54" stroke="%s" stroke-dasharray="%s %s"/>`+
		`</svg><div class="score-value" style="color:%s">%d</div></div>`,
		band.Color, fill.filled, fill.empty, band.Color, score)
	d.writef(`<p class="score-band" style="color:%s">%s</p>`, band.Color, esc(band.Label))
	d.write(`</header>`)
}

// gauge geometry: circumference of the r=54 circle, fixed precision so the
// output stays byte-stable across platforms.
const gaugeCircumference = 339.29

type gaugeFill struct {
	filled string
	empty  string
}

func gaugeDash(score int) gaugeFill {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	filled := gaugeCircumference * float64(score) / 100
	return gaugeFill{
		filled: fmt.Sprintf("%.2f", filled),
		empty:  fmt.Sprintf("%.2f", gaugeCircumference-filled),
	}
}

func (d *document) writeFooter(generatedAt time.Time) {
	d.writef(`<footer class="report-footer">Generated on %s</footer>`,
		esc(generatedAt.UTC().Format("January 2, 2006")))
	d.write(`</main></body></html>`)
}
