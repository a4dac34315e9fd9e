package signup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAuditSignup(t *testing.T) {
	t.Run("starts pending", func(t *testing.T) {
		s, err := NewAuditSignup("founder@acme.test", "Acme", map[string]string{
			"instagram": "https://instagram.com/acme",
		})

		assert.NoError(t, err)
		assert.Equal(t, StatusPending, s.Status)
		assert.Nil(t, s.CompletedAt)
	})

	t.Run("rejects missing contact email", func(t *testing.T) {
		_, err := NewAuditSignup("", "Acme", nil)
		assert.ErrorIs(t, err, ErrEmptyContactEmail)
	})

	t.Run("rejects missing company name", func(t *testing.T) {
		_, err := NewAuditSignup("founder@acme.test", "", nil)
		assert.ErrorIs(t, err, ErrEmptyCompanyName)
	})
}

func TestAuditSignup_Advance(t *testing.T) {
	t.Run("single forward step", func(t *testing.T) {
		s := &AuditSignup{Status: StatusPending}

		assert.NoError(t, s.Advance(StatusPlanning))
		assert.Equal(t, StatusPlanning, s.Status)
		assert.NoError(t, s.Advance(StatusInProgress))
		assert.NoError(t, s.Advance(StatusReview))
		assert.NoError(t, s.Advance(StatusCompleted))
		assert.NotNil(t, s.CompletedAt)
	})

	t.Run("rejects skipping stages", func(t *testing.T) {
		s := &AuditSignup{Status: StatusPending}

		err := s.Advance(StatusReview)
		assert.ErrorIs(t, err, ErrInvalidStateTransition)
		assert.Equal(t, StatusPending, s.Status)
	})

	t.Run("rejects moving backwards", func(t *testing.T) {
		s := &AuditSignup{Status: StatusReview}

		err := s.Advance(StatusPlanning)
		assert.ErrorIs(t, err, ErrStatusRegression)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		s := &AuditSignup{Status: StatusPending}

		err := s.Advance(Status("archived"))
		assert.ErrorIs(t, err, ErrUnknownStatus)
	})

	t.Run("rejects any move off completed", func(t *testing.T) {
		s := &AuditSignup{Status: StatusCompleted}

		err := s.Advance(StatusReview)
		assert.ErrorIs(t, err, ErrAlreadyCompleted)
	})
}

func TestAuditSignup_Complete(t *testing.T) {
	t.Run("jumps forward to terminal status", func(t *testing.T) {
		s := &AuditSignup{Status: StatusInProgress}

		assert.NoError(t, s.Complete())
		assert.True(t, s.IsCompleted())
		assert.NotNil(t, s.CompletedAt)
	})

	t.Run("idempotence is rejected explicitly", func(t *testing.T) {
		s := &AuditSignup{Status: StatusCompleted}

		assert.ErrorIs(t, s.Complete(), ErrAlreadyCompleted)
	})
}

func TestAuditSignup_SetStatusUnchecked(t *testing.T) {
	t.Run("allows backwards correction", func(t *testing.T) {
		s := &AuditSignup{Status: StatusReview}

		assert.NoError(t, s.SetStatusUnchecked(StatusPlanning))
		assert.Equal(t, StatusPlanning, s.Status)
	})

	t.Run("still validates the status value", func(t *testing.T) {
		s := &AuditSignup{Status: StatusReview}

		err := s.SetStatusUnchecked(Status("bogus"))
		assert.ErrorIs(t, err, ErrUnknownStatus)
	})
}
