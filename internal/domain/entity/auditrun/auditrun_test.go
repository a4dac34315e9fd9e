package auditrun

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func reviewRunWithURL(url string) *AuditRun {
	r := NewAuditRun(1)
	r.Status = StatusReview
	if url != "" {
		r.ReportURL = &url
	}
	return r
}

func TestNewAuditRun(t *testing.T) {
	r := NewAuditRun(7)

	assert.Equal(t, int64(7), r.SignupID)
	assert.Equal(t, StatusInProgress, r.Status)
	assert.False(t, r.HasReportURL())
}

func TestAuditRun_MoveToReview(t *testing.T) {
	t.Run("from in progress", func(t *testing.T) {
		r := NewAuditRun(1)

		assert.NoError(t, r.MoveToReview())
		assert.True(t, r.IsInReview())
	})

	t.Run("rejected when already delivered", func(t *testing.T) {
		r := reviewRunWithURL("https://cdn.test/report.html")
		assert.NoError(t, r.Deliver())

		assert.ErrorIs(t, r.MoveToReview(), ErrAlreadyDelivered)
	})
}

func TestAuditRun_SetReportURL(t *testing.T) {
	t.Run("records the URL", func(t *testing.T) {
		r := reviewRunWithURL("")

		assert.NoError(t, r.SetReportURL("https://cdn.test/report.html"))
		assert.True(t, r.HasReportURL())
	})

	t.Run("later set replaces the earlier URL", func(t *testing.T) {
		r := reviewRunWithURL("https://cdn.test/old.html")

		assert.NoError(t, r.SetReportURL("https://cdn.test/new.html"))
		assert.Equal(t, "https://cdn.test/new.html", *r.ReportURL)
	})

	t.Run("rejects empty URL", func(t *testing.T) {
		r := reviewRunWithURL("")

		assert.ErrorIs(t, r.SetReportURL(""), ErrEmptyReportURL)
	})

	t.Run("rejected after delivery", func(t *testing.T) {
		r := reviewRunWithURL("https://cdn.test/report.html")
		assert.NoError(t, r.Deliver())

		assert.ErrorIs(t, r.SetReportURL("https://cdn.test/other.html"), ErrAlreadyDelivered)
	})
}

func TestAuditRun_Deliver(t *testing.T) {
	t.Run("from review with report URL", func(t *testing.T) {
		r := reviewRunWithURL("https://cdn.test/report.html")

		assert.NoError(t, r.Deliver())
		assert.True(t, r.IsDelivered())
		assert.NotNil(t, r.DeliveredAt)
	})

	t.Run("rejected without report URL", func(t *testing.T) {
		r := reviewRunWithURL("")

		assert.ErrorIs(t, r.Deliver(), ErrReportURLUnset)
		assert.True(t, r.IsInReview())
	})

	t.Run("rejected outside review", func(t *testing.T) {
		r := NewAuditRun(1)
		url := "https://cdn.test/report.html"
		r.ReportURL = &url

		assert.ErrorIs(t, r.Deliver(), ErrNotInReview)
	})

	t.Run("rejected when already delivered", func(t *testing.T) {
		r := reviewRunWithURL("https://cdn.test/report.html")
		assert.NoError(t, r.Deliver())

		assert.ErrorIs(t, r.Deliver(), ErrAlreadyDelivered)
	})
}
