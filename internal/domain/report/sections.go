package report

import "github.com/brandpulse/audit-delivery/internal/domain/entity/review"

// Bullet glyphs per finding category. Each category keeps a distinct fixed
// marker so categories stay recognizable when the report is skimmed.
const (
	glyphWorks  = "✓"
	glyphHurts  = "✗"
	glyphAction = "→"
)

const placeholderDiagnosis = "Assessment pending."

func (d *document) writeExecutiveSummary(s review.ExecutiveSummary) {
	if s.IsEmpty() {
		return
	}

	d.beginSection("Executive Summary")
	d.writeLabeledParagraph("Positioning", s.Positioning)
	d.writeLabeledParagraph("Primary Issue", s.PrimaryIssue)
	d.writeLabeledParagraph("Biggest Opportunity", s.BiggestOpportunity)
	d.endSection()
}

func (d *document) writeBrandClarity(c review.BrandClarity) {
	if c.IsEmpty() {
		return
	}

	d.beginSection("Brand Clarity")
	d.writeLabeledParagraph("Current Positioning", c.CurrentPositioning)
	d.writeLabeledParagraph("Core Tension", c.CoreTension)
	d.writeLabeledParagraph("Recommended Focus", c.RecommendedFocus)
	d.endSection()
}

// writePlatformPriority renders the priority ordering with explicit rank
// badges; order carries meaning here, unlike the findings lists.
func (d *document) writePlatformPriority(platforms []string) {
	if len(platforms) == 0 {
		return
	}

	d.beginSection("Platform Priorities")
	d.write(`<ol class="rank-list">`)
	for i, platform := range platforms {
		d.writef(`<li><span class="rank-badge">%d</span>%s</li>`, i+1, esc(platform))
	}
	d.write(`</ol>`)
	d.endSection()
}

func (d *document) writeStrategicFocus(areas []string) {
	if len(areas) == 0 {
		return
	}

	d.beginSection("Strategic Focus Areas")
	d.write(`<ol class="rank-list">`)
	for i, area := range areas {
		d.writef(`<li><span class="rank-badge">%d</span>%s</li>`, i+1, esc(area))
	}
	d.write(`</ol>`)
	d.endSection()
}

func (d *document) writePlatformReviews(reviews []review.PlatformReview) {
	if len(reviews) == 0 {
		return
	}

	d.beginSection("Platform Reviews")
	for _, pr := range reviews {
		diagnosis := pr.Diagnosis
		if diagnosis == "" {
			diagnosis = placeholderDiagnosis
		}

		d.writef(`<article class="platform-review"><h3>%s</h3><p class="diagnosis">%s</p>`,
			esc(pr.Platform), esc(diagnosis))
		d.writeFindings("What Works", "works", glyphWorks, pr.WhatWorks)
		d.writeFindings("What Hurts", "hurts", glyphHurts, pr.WhatHurts)
		d.writeFindings("Priority Actions", "actions", glyphAction, pr.PriorityActions)
		d.write(`</article>`)
	}
	d.endSection()
}

// writeFindings renders one categorized findings list with its glyph.
func (d *document) writeFindings(title, class, glyph string, items []string) {
	if len(items) == 0 {
		return
	}

	d.writef(`<h4>%s</h4><ul class="findings %s">`, esc(title), class)
	for _, item := range items {
		d.writef(`<li><span class="glyph">%s</span>%s</li>`, glyph, esc(item))
	}
	d.write(`</ul>`)
}

func (d *document) writeContentPatterns(patterns []string) {
	if len(patterns) == 0 {
		return
	}

	d.beginSection("Content Patterns")
	d.write(`<ul class="pattern-list">`)
	for _, pattern := range patterns {
		d.writef(`<li>%s</li>`, esc(pattern))
	}
	d.write(`</ul>`)
	d.endSection()
}

func (d *document) writeSolutions(solutions []review.Solution) {
	if len(solutions) == 0 {
		return
	}

	d.beginSection("Solutions")
	for _, s := range solutions {
		d.writef(`<article class="solution"><h3>%s</h3><p>%s</p></article>`,
			esc(s.Title), esc(s.Description))
	}
	d.endSection()
}

func (d *document) writeInspiration(guides []review.InspirationGuide) {
	if len(guides) == 0 {
		return
	}

	d.beginSection("Inspiration")
	for _, g := range guides {
		d.writef(`<article class="inspiration"><h3>%s</h3><p>%s</p></article>`,
			esc(g.Platform), esc(g.Guidance))
	}
	d.endSection()
}

func (d *document) writeNext30Days(actions []string) {
	if len(actions) == 0 {
		return
	}

	d.beginSection("Next 30 Days")
	d.write(`<ol class="rank-list">`)
	for i, action := range actions {
		d.writef(`<li><span class="rank-badge">%d</span>%s</li>`, i+1, esc(action))
	}
	d.write(`</ol>`)
	d.endSection()
}

func (d *document) writeLabeledParagraph(label, text string) {
	if text == "" {
		return
	}
	d.writef(`<p><strong>%s.</strong> %s</p>`, esc(label), esc(text))
}
