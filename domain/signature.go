package domain

import (
	"encoding/json"
)

// StrokePoint is one sampled point of a hand-drawn signature. PenUp marks
// the end of a stroke.
type StrokePoint struct {
	X     int  `json:"x"`
	Y     int  `json:"y"`
	PenUp bool `json:"up,omitempty"`
}

// Signature is the ordered point list of a hand-drawn signature.
type Signature []StrokePoint

func (s Signature) Empty() bool {
	return len(s) == 0
}

// Encode serializes the signature for storage.
func (s Signature) Encode() (string, error) {
	if len(s) == 0 {
		return "", nil
	}
	buf, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// DecodeSignature parses a stored signature; an empty value is a valid
// empty signature.
func DecodeSignature(raw string) (Signature, error) {
	if raw == "" {
		return nil, nil
	}
	var s Signature
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, err
	}
	return s, nil
}
