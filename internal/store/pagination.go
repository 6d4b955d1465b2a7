package store

import (
	"encoding/json"
	"time"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/util"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// CursorParams contains parameters for cursor-paginated queries
type CursorParams struct {
	Limit  int    // Number of items per page
	Cursor string // Opaque cursor returned by the previous page; empty for the first page
}

// NewCursorParams creates a new CursorParams with default values
func NewCursorParams(limit int, cursor string) CursorParams {
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return CursorParams{Limit: limit, Cursor: cursor}
}

// Cursor marks a position in a list ordered by (time DESC, id DESC).
type Cursor struct {
	Time time.Time `json:"t"`
	ID   string    `json:"id"`
}

// EncodeCursor returns the opaque form of a cursor positioned after (t, id).
func EncodeCursor(t time.Time, id string) string {
	payload, _ := json.Marshal(Cursor{Time: t.UTC(), ID: id})
	return util.Base64URLEncode(payload)
}

// DecodeCursor parses an opaque cursor. An empty string means "first page" and
// yields nil.
func DecodeCursor(s string) (*Cursor, error) {
	if s == "" {
		return nil, nil //nolint:nilnil // no cursor is a valid first-page request
	}
	raw, err := util.Base64URLDecode(s)
	if err != nil {
		return nil, ErrInvalidCursor
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil || c.ID == "" || c.Time.IsZero() {
		return nil, ErrInvalidCursor
	}
	c.Time = c.Time.UTC()
	return &c, nil
}
