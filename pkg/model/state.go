package model

import (
	"encoding/json"
)

// BlockState maps block property combinations to model references, either
// through variants or through additive multipart rules.
type BlockState struct {
	Variants  map[string]json.RawMessage `json:"variants"`
	Multipart []MultipartCase            `json:"multipart"`
}

type MultipartCase struct {
	Apply json.RawMessage `json:"apply"`
}

type variant struct {
	Model string `json:"model"`
}

// ModelOf extracts the model reference from a variant or apply entry,
// which is either a single object or a list of alternatives. ok reports
// whether the entry was an object after unwrapping a list; an object
// with no model reference is (empty, true), anything else (empty,
// false).
func ModelOf(entry json.RawMessage) (string, bool) {
	if len(entry) == 0 {
		return "", false
	}

	var alternatives []json.RawMessage
	if err := json.Unmarshal(entry, &alternatives); err == nil {
		if len(alternatives) == 0 {
			return "", false
		}
		entry = alternatives[0]
	}

	var single variant
	if err := json.Unmarshal(entry, &single); err != nil {
		return "", false
	}
	return single.Model, true
}

func ParseBlockState(data []byte) (*BlockState, error) {
	var state BlockState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}
