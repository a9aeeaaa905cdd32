package menus

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"mealprep/apperr"
	"mealprep/models"
)

// Cursor is a position in a user's history: the last menu already returned.
type Cursor struct {
	GeneratedAt time.Time
	ID          string
}

func cursorFor(m models.WeeklyMenu) Cursor {
	return Cursor{GeneratedAt: m.GeneratedAt, ID: m.ID}
}

// Precedes reports whether m is listed after c in newest-first order.
func (c Cursor) Precedes(m models.WeeklyMenu) bool {
	if m.GeneratedAt.Equal(c.GeneratedAt) {
		return m.ID < c.ID
	}
	return m.GeneratedAt.Before(c.GeneratedAt)
}

// Encode returns the opaque form handed to clients.
func (c Cursor) Encode() string {
	raw := fmt.Sprintf("%d|%s", c.GeneratedAt.UnixMilli(), c.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func DecodeCursor(s string) (*Cursor, error) {
	if s == "" {
		return nil, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, apperr.Validation("Invalid cursor")
	}
	ms, id, ok := strings.Cut(string(raw), "|")
	if !ok || id == "" {
		return nil, apperr.Validation("Invalid cursor")
	}
	n, err := strconv.ParseInt(ms, 10, 64)
	if err != nil {
		return nil, apperr.Validation("Invalid cursor")
	}
	return &Cursor{GeneratedAt: time.UnixMilli(n).UTC(), ID: id}, nil
}
