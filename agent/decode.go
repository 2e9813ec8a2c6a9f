package agent

import (
	"encoding/json"
	"errors"
	"strings"
)

// decodeStrict deserializes a model completion into a result type, rejecting
// unknown fields and trailing data instead of defaulting.
func decodeStrict(raw string, v any) error {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("trailing data after JSON value")
	}
	return nil
}
