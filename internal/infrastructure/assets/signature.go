package assets

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
)

// The asset host verifies requests against a SHA-1 digest of a canonical
// parameter string concatenated with the shared secret. Field order inside
// the canonical string is part of the wire contract; reordering breaks
// verification remotely.

// uploadSignature signs an upload request.
func uploadSignature(folder, destinationID string, timestamp int64, secret string) string {
	canonical := fmt.Sprintf("folder=%s&public_id=%s&timestamp=%d%s",
		folder, destinationID, timestamp, secret)
	return sha1hex(canonical)
}

// deleteSignature signs a delete request; the canonical string is narrower.
func deleteSignature(destinationID string, timestamp int64, secret string) string {
	canonical := fmt.Sprintf("public_id=%s&timestamp=%d%s",
		destinationID, timestamp, secret)
	return sha1hex(canonical)
}

func sha1hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
