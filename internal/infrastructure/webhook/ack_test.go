package webhook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAck(t *testing.T) {
	t.Run("bare object positive", func(t *testing.T) {
		assert.NoError(t, parseAck([]byte(`{"ok": true}`)))
	})

	t.Run("array positive uses first element", func(t *testing.T) {
		assert.NoError(t, parseAck([]byte(`[{"ok": true}, {"ok": false}]`)))
	})

	t.Run("extra fields are ignored", func(t *testing.T) {
		assert.NoError(t, parseAck([]byte(`{"ok": true, "queued_jobs": 3}`)))
	})

	t.Run("surrounding whitespace tolerated", func(t *testing.T) {
		assert.NoError(t, parseAck([]byte("  \n\t{\"ok\": true}\n")))
	})

	t.Run("negative flag", func(t *testing.T) {
		assert.ErrorIs(t, parseAck([]byte(`{"ok": false}`)), ErrNegativeAck)
	})

	t.Run("negative flag in array", func(t *testing.T) {
		assert.ErrorIs(t, parseAck([]byte(`[{"ok": false}]`)), ErrNegativeAck)
	})

	t.Run("missing flag", func(t *testing.T) {
		assert.ErrorIs(t, parseAck([]byte(`{"status": "done"}`)), ErrNoAckFlag)
	})

	t.Run("empty array", func(t *testing.T) {
		assert.ErrorIs(t, parseAck([]byte(`[]`)), ErrEmptyAckArray)
	})

	t.Run("empty body", func(t *testing.T) {
		assert.ErrorIs(t, parseAck(nil), ErrMalformedAck)
	})

	t.Run("non-JSON body", func(t *testing.T) {
		assert.ErrorIs(t, parseAck([]byte(`OK`)), ErrMalformedAck)
	})

	t.Run("flag with wrong type", func(t *testing.T) {
		assert.ErrorIs(t, parseAck([]byte(`{"ok": "yes"}`)), ErrMalformedAck)
	})

	t.Run("array of non-objects", func(t *testing.T) {
		assert.ErrorIs(t, parseAck([]byte(`[1, 2]`)), ErrMalformedAck)
	})
}
