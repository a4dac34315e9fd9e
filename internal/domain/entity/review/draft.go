package review

import (
	"context"
	"errors"
	"time"
)

var ErrNilBase = errors.New("draft requires a persisted review")

// Updater persists a committed draft. Satisfied by the review repository.
type Updater interface {
	Update(ctx context.Context, review *BrandReview) error
}

// Draft is a staff-editable working copy of a persisted review. Edits go to
// the copy only; nothing reaches the store until Commit. This makes the
// clone-edit-save editing flow an explicit type instead of a convention.
type Draft struct {
	base   *BrandReview
	edited *BrandReview
}

// NewDraft clones the persisted review into an editable working copy.
func NewDraft(base *BrandReview) (*Draft, error) {
	if base == nil {
		return nil, ErrNilBase
	}
	return &Draft{
		base:   base,
		edited: base.Clone(),
	}, nil
}

// Review returns the editable working copy.
func (d *Draft) Review() *BrandReview {
	return d.edited
}

// Discard resets the working copy back to the persisted state.
func (d *Draft) Discard() {
	d.edited = d.base.Clone()
}

// Commit writes the working copy through the updater and promotes it to the
// new base state.
func (d *Draft) Commit(ctx context.Context, updater Updater) error {
	d.edited.UpdatedAt = time.Now()
	if err := updater.Update(ctx, d.edited); err != nil {
		return err
	}

	d.base = d.edited.Clone()
	return nil
}
