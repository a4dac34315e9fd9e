package webhook

import (
	"bytes"
	"encoding/json"
	"errors"
)

var (
	ErrMalformedAck  = errors.New("malformed acknowledgment body")
	ErrNoAckFlag     = errors.New("acknowledgment flag missing")
	ErrNegativeAck   = errors.New("downstream reported failure")
	ErrEmptyAckArray = errors.New("acknowledgment array is empty")
)

// ack is the structured acknowledgment the downstream consumer returns.
type ack struct {
	OK bool `json:"ok"`
}

// parseAck interprets the webhook response body. The consumer replies with
// either a bare object or an array whose first element carries the flag;
// the shape check lives here at the boundary so callers see only pass or
// fail. Anything other than an explicit positive flag is a failure.
func parseAck(body []byte) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ErrMalformedAck
	}

	if trimmed[0] == '[' {
		var acks []json.RawMessage
		if err := json.Unmarshal(trimmed, &acks); err != nil {
			return ErrMalformedAck
		}
		if len(acks) == 0 {
			return ErrEmptyAckArray
		}
		trimmed = acks[0]
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return ErrMalformedAck
	}
	flag, present := raw["ok"]
	if !present {
		return ErrNoAckFlag
	}

	var a ack
	if err := json.Unmarshal(flag, &a.OK); err != nil {
		return ErrMalformedAck
	}
	if !a.OK {
		return ErrNegativeAck
	}

	return nil
}
