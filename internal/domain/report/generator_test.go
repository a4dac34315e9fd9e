package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/brandpulse/audit-delivery/internal/domain/entity/review"
)

func fullReview() *review.BrandReview {
	return &review.BrandReview{
		OverallScore: 72,
		ExecutiveSummary: review.ExecutiveSummary{
			Positioning:        "A premium service with generic messaging",
			PrimaryIssue:       "Visual identity varies wildly across channels",
			BiggestOpportunity: "Own the sustainability angle",
		},
		BrandClarity: review.BrandClarity{
			CurrentPositioning: "Unclear who the product is for",
			CoreTension:        "Premium pricing vs discount-heavy promotion",
			RecommendedFocus:   "Pick one audience and commit",
		},
		PlatformPriority: []string{"Instagram", "LinkedIn", "TikTok"},
		StrategicFocus:   []string{"Consistency", "Voice"},
		PlatformReviews: []review.PlatformReview{
			{
				Platform:        "Instagram",
				Diagnosis:       "Strong visuals, weak captions",
				WhatWorks:       []string{"Product photography"},
				WhatHurts:       []string{"Inconsistent posting"},
				PriorityActions: []string{"Adopt a posting cadence"},
			},
		},
		ContentPatterns: []string{"Reposts outperform originals"},
		Solutions: []review.Solution{
			{Title: "Brand guide", Description: "A one-page visual reference"},
		},
		Inspiration: []review.InspirationGuide{
			{Platform: "Instagram", Guidance: "Study @patagonia's caption style"},
		},
		Next30Days: []string{"Audit existing posts", "Draft the brand guide"},
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	g := NewGenerator()
	rv := fullReview()
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	first := g.Generate(rv, "Acme Co", at)
	second := g.Generate(rv, "Acme Co", at)

	assert.Equal(t, first, second)
}

func TestGenerate_EscapesContent(t *testing.T) {
	g := NewGenerator()
	rv := fullReview()
	rv.ExecutiveSummary.Positioning = `<script>alert("x")</script> & more`

	out := string(g.Generate(rv, "Tom & Jerry <Ltd>", time.Now()))

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "Tom &amp; Jerry &lt;Ltd&gt;")
}

func TestGenerate_NewlinesBecomeBreaks(t *testing.T) {
	g := NewGenerator()
	rv := fullReview()
	rv.BrandClarity.CoreTension = "line one\nline two"

	out := string(g.Generate(rv, "Acme", time.Now()))

	assert.Contains(t, out, "line one<br>line two")
}

func TestGenerate_DefaultCompanyName(t *testing.T) {
	g := NewGenerator()

	out := string(g.Generate(fullReview(), "", time.Now()))

	assert.Contains(t, out, "Your Brand")
}

func TestGenerate_SuppressesEmptySections(t *testing.T) {
	g := NewGenerator()
	rv := &review.BrandReview{
		OverallScore: 50,
		ExecutiveSummary: review.ExecutiveSummary{
			Positioning: "Only summary present",
		},
	}

	out := string(g.Generate(rv, "Acme", time.Now()))

	assert.Contains(t, out, "Executive Summary")
	assert.NotContains(t, out, "Brand Clarity")
	assert.NotContains(t, out, "Platform Reviews")
	assert.NotContains(t, out, "Solutions")
	assert.NotContains(t, out, "Next 30 Days")
}

func TestGenerate_SectionNumbersArePositional(t *testing.T) {
	g := NewGenerator()
	rv := &review.BrandReview{
		OverallScore:    50,
		ContentPatterns: []string{"first"},
		Next30Days:      []string{"second"},
	}

	out := string(g.Generate(rv, "Acme", time.Now()))

	// With every earlier section suppressed, the surviving sections
	// renumber from 01.
	assert.Contains(t, out, `<span class="section-number">01</span>Content Patterns`)
	assert.Contains(t, out, `<span class="section-number">02</span>Next 30 Days`)
}

func TestGenerate_PlaceholderDiagnosis(t *testing.T) {
	g := NewGenerator()
	rv := &review.BrandReview{
		PlatformReviews: []review.PlatformReview{
			{Platform: "TikTok"},
		},
	}

	out := string(g.Generate(rv, "Acme", time.Now()))

	assert.Contains(t, out, "Assessment pending.")
}

func TestGenerate_Footer(t *testing.T) {
	g := NewGenerator()
	at := time.Date(2026, 1, 5, 23, 30, 0, 0, time.UTC)

	out := string(g.Generate(fullReview(), "Acme", at))

	assert.Contains(t, out, "Generated on January 5, 2026")
}

func TestBandForScore(t *testing.T) {
	tests := []struct {
		score int
		label string
	}{
		{100, "Strong"},
		{85, "Strong"},
		{80, "Strong"},
		{79, "Moderate"},
		{65, "Moderate"},
		{60, "Moderate"},
		{59, "Weak"},
		{45, "Weak"},
		{40, "Weak"},
		{39, "Poor"},
		{15, "Poor"},
		{0, "Poor"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.label, bandForScore(tt.score).Label, "score %d", tt.score)
	}
}

func TestGaugeDash(t *testing.T) {
	t.Run("clamps out-of-range scores", func(t *testing.T) {
		assert.Equal(t, "0.00", gaugeDash(-5).filled)
		assert.Equal(t, "339.29", gaugeDash(150).filled)
		assert.Equal(t, "0.00", gaugeDash(150).empty)
	})

	t.Run("filled and empty sum to the circumference", func(t *testing.T) {
		fill := gaugeDash(72)
		assert.Equal(t, "244.29", fill.filled)
		assert.Equal(t, "95.00", fill.empty)
	})
}

func TestGenerate_GlyphsPerFindingCategory(t *testing.T) {
	g := NewGenerator()

	out := string(g.Generate(fullReview(), "Acme", time.Now()))

	works := out[strings.Index(out, "What Works"):]
	assert.Contains(t, works[:strings.Index(works, "What Hurts")], glyphWorks)
	hurts := out[strings.Index(out, "What Hurts"):]
	assert.Contains(t, hurts[:strings.Index(hurts, "Priority Actions")], glyphHurts)
	assert.Contains(t, out[strings.Index(out, "Priority Actions"):], glyphAction)
}
