package ipc

import (
	"encoding/json"
	"fmt"
)

// Envelope is a received frame. The harness sends flat JSON objects with a
// "type" discriminator, so Raw holds the whole frame and handlers decode it
// into their concrete type.
type Envelope struct {
	Type string
	Raw  json.RawMessage
}

// maxFrameSize guards against corrupted or runaway frames. Large maps with a
// full nutrient grid fit comfortably.
const maxFrameSize = 16 << 20

// DecodeEnvelope extracts the type discriminator from a frame.
func DecodeEnvelope(frame []byte) (Envelope, error) {
	if len(frame) == 0 || len(frame) > maxFrameSize {
		return Envelope{}, fmt.Errorf("invalid frame length: %d", len(frame))
	}
	var base struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(frame, &base); err != nil {
		return Envelope{}, fmt.Errorf("unmarshal frame: %w", err)
	}
	if base.Type == "" {
		// Older harness builds send the bare game state without a type.
		base.Type = TypeTeamGameState
	}
	return Envelope{Type: base.Type, Raw: frame}, nil
}
