package store

import (
	"testing"
	"time"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCursorParams(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"Zero uses default", 0, DefaultPageLimit},
		{"Negative uses default", -5, DefaultPageLimit},
		{"Within range", 7, 7},
		{"Clamped to max", 1000, MaxPageLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := NewCursorParams(tt.limit, "abc")
			assert.Equal(t, tt.want, params.Limit)
			assert.Equal(t, "abc", params.Cursor)
		})
	}
}

func TestCursorEncoding(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		ts := time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)
		encoded := EncodeCursor(ts, "entry-1")
		assert.Regexp(t, `^[A-Za-z0-9_-]+$`, encoded)

		decoded, err := DecodeCursor(encoded)
		require.NoError(t, err)
		require.NotNil(t, decoded)
		assert.True(t, ts.Equal(decoded.Time))
		assert.Equal(t, "entry-1", decoded.ID)
	})

	t.Run("Empty cursor is first page", func(t *testing.T) {
		decoded, err := DecodeCursor("")
		require.NoError(t, err)
		assert.Nil(t, decoded)
	})

	t.Run("Malformed cursor", func(t *testing.T) {
		for _, s := range []string{
			"***",
			util.Base64URLEncode([]byte("not json")),
			util.Base64URLEncode([]byte(`{"t":"2026-01-01T00:00:00Z"}`)),
			util.Base64URLEncode([]byte(`{"id":"x"}`)),
		} {
			_, err := DecodeCursor(s)
			assert.ErrorIs(t, err, ErrInvalidCursor, s)
		}
	})
}
