// Package review holds the structured findings attached to an audit run:
// scores, narrative sections and per-platform recommendations. The content
// is staff-editable until the run is delivered.
package review

import "time"

// BrandReview is the full structured review for one audit run.
// Section slices left empty suppress the matching report section.
type BrandReview struct {
	ID           int64 `db:"id" json:"id"`
	RunID        int64 `db:"run_id" json:"run_id"`
	OverallScore int   `db:"overall_score" json:"overall_score"` // 0-100

	ExecutiveSummary ExecutiveSummary   `json:"executive_summary"`
	BrandClarity     BrandClarity       `json:"brand_clarity"`
	PlatformPriority []string           `json:"platform_priority"`
	StrategicFocus   []string           `json:"strategic_focus"`
	PlatformReviews  []PlatformReview   `json:"platform_reviews"`
	ContentPatterns  []string           `json:"content_patterns"`
	Solutions        []Solution         `json:"solutions"`
	Inspiration      []InspirationGuide `json:"inspiration"`
	Next30Days       []string           `json:"next_30_days"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type ExecutiveSummary struct {
	Positioning        string `json:"positioning"`
	PrimaryIssue       string `json:"primary_issue"`
	BiggestOpportunity string `json:"biggest_opportunity"`
}

type BrandClarity struct {
	CurrentPositioning string `json:"current_positioning"`
	CoreTension        string `json:"core_tension"`
	RecommendedFocus   string `json:"recommended_focus"`
}

// PlatformReview is the per-platform diagnosis with categorized findings.
type PlatformReview struct {
	Platform        string   `json:"platform"`
	Diagnosis       string   `json:"diagnosis"`
	WhatWorks       []string `json:"what_works"`
	WhatHurts       []string `json:"what_hurts"`
	PriorityActions []string `json:"priority_actions"`
}

type Solution struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type InspirationGuide struct {
	Platform string `json:"platform"`
	Guidance string `json:"guidance"`
}

// IsEmpty reports whether the executive summary has no content.
func (e ExecutiveSummary) IsEmpty() bool {
	return e.Positioning == "" && e.PrimaryIssue == "" && e.BiggestOpportunity == ""
}

// IsEmpty reports whether the brand clarity section has no content.
func (b BrandClarity) IsEmpty() bool {
	return b.CurrentPositioning == "" && b.CoreTension == "" && b.RecommendedFocus == ""
}

// Clone returns a deep copy of the review. Slices and nested structs are
// copied so mutations on the clone never leak into the original.
func (r *BrandReview) Clone() *BrandReview {
	c := *r
	c.PlatformPriority = cloneStrings(r.PlatformPriority)
	c.StrategicFocus = cloneStrings(r.StrategicFocus)
	c.ContentPatterns = cloneStrings(r.ContentPatterns)
	c.Next30Days = cloneStrings(r.Next30Days)

	if r.PlatformReviews != nil {
		c.PlatformReviews = make([]PlatformReview, len(r.PlatformReviews))
		for i, pr := range r.PlatformReviews {
			pr.WhatWorks = cloneStrings(pr.WhatWorks)
			pr.WhatHurts = cloneStrings(pr.WhatHurts)
			pr.PriorityActions = cloneStrings(pr.PriorityActions)
			c.PlatformReviews[i] = pr
		}
	}
	if r.Solutions != nil {
		c.Solutions = append([]Solution(nil), r.Solutions...)
	}
	if r.Inspiration != nil {
		c.Inspiration = append([]InspirationGuide(nil), r.Inspiration...)
	}

	return &c
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
