package groupsio

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const objectError = "error"

// objectTyped is implemented by shapes that carry a fixed "object"
// discriminator in their JSON form.
type objectTyped interface {
	objectName() string
}

// objectHeader reads the discriminator every Groups.io payload carries, and
// the kind field of an error envelope.
type objectHeader struct {
	Object string `json:"object"`
	Type   string `json:"type"`
}

// isError reports whether the body is an error envelope. No success shape
// has a top-level "type", so a bare {"type":...} counts as one.
func (h objectHeader) isError() bool {
	return h.Object == objectError || (h.Object == "" && h.Type != "")
}

// Page is the envelope of every paginated listing.
type Page[T any] struct {
	Object        string `json:"object,omitempty"`
	TotalCount    int    `json:"total_count"`
	StartItem     int    `json:"start_item"`
	EndItem       int    `json:"end_item"`
	HasMore       bool   `json:"has_more"`
	NextPageToken int    `json:"next_page_token"`
	Data          []T    `json:"data"`
}

func (Page[T]) objectName() string { return "list" }

// decode materializes body as a T. It fails when the body is empty, when it
// is an error envelope, or when its discriminator names another shape.
func decode[T any](body []byte) (T, error) {
	var out T
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return out, ErrEmptyBody
	}

	var hdr objectHeader
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &hdr); err != nil {
			return out, fmt.Errorf("decode %T: %w", out, err)
		}
	}
	if hdr.isError() {
		return out, fmt.Errorf("decode %T: body is an error envelope", out)
	}

	if err := json.Unmarshal(trimmed, &out); err != nil {
		return out, fmt.Errorf("decode %T: %w", out, err)
	}

	if typed, ok := any(out).(objectTyped); ok && hdr.Object != "" && hdr.Object != typed.objectName() {
		return out, fmt.Errorf("decode %T: unexpected object %q", out, hdr.Object)
	}
	return out, nil
}

// decodeError materializes body as an error envelope. A body without a
// "type" field is not an error envelope.
func decodeError(body []byte) (ErrorPayload, error) {
	var p ErrorPayload
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return p, ErrEmptyBody
	}
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return p, fmt.Errorf("decode error envelope: %w", err)
	}
	if p.Type == "" {
		return p, fmt.Errorf("decode error envelope: missing type")
	}
	return p, nil
}
