package remote

import (
	"bytes"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/sonnes/chaukidar/core"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// wireExchange uses pointers so that absent fields can be told apart from
// empty strings.
type wireExchange struct {
	Prompt    *string `json:"prompt"`
	Answer    *string `json:"answer"`
	Timestamp *string `json:"timestamp"`
}

// Decode parses a JSON array of exchange records. The body must be an array
// (an empty one is valid); every element must be an object carrying string
// prompt, answer and timestamp fields. Unknown fields are ignored.
func Decode(body []byte) (core.Snapshot, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &ShapeError{Index: -1, Reason: "body is not a JSON array"}
	}

	var raw []jsoniter.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, &ShapeError{Index: -1, Reason: "invalid JSON", Err: err}
	}

	snap := make(core.Snapshot, 0, len(raw))
	for i, elem := range raw {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 || elem[0] != '{' {
			return nil, &ShapeError{Index: i, Reason: "element is not an object"}
		}

		var w wireExchange
		if err := json.Unmarshal(elem, &w); err != nil {
			return nil, &ShapeError{Index: i, Reason: "invalid field", Err: err}
		}
		if err := w.check(); err != nil {
			return nil, &ShapeError{Index: i, Reason: err.Error()}
		}

		snap = append(snap, core.Exchange{
			Prompt:    *w.Prompt,
			Answer:    *w.Answer,
			Timestamp: *w.Timestamp,
		})
	}
	return snap, nil
}

func (w wireExchange) check() error {
	switch {
	case w.Prompt == nil:
		return fmt.Errorf("missing field %q", "prompt")
	case w.Answer == nil:
		return fmt.Errorf("missing field %q", "answer")
	case w.Timestamp == nil:
		return fmt.Errorf("missing field %q", "timestamp")
	}
	return nil
}
