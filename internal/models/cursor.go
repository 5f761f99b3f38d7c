package models

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ListCursor is the keyset position of the animal list: the (created_at, id)
// pair of the last record on the previous page. Ordering is created_at DESC,
// id DESC, so the pair gives a total order that stays stable under
// concurrent inserts.
type ListCursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// Encode renders the cursor as an opaque URL-safe token.
func (c ListCursor) Encode() string {
	raw := fmt.Sprintf("%d:%s", c.CreatedAt.UnixNano(), c.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeListCursor parses a token produced by Encode. Any malformed token is
// rejected rather than silently treated as the first page.
func DecodeListCursor(token string) (ListCursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return ListCursor{}, fmt.Errorf("invalid cursor encoding: %w", err)
	}

	parts := strings.SplitN(string(raw), ":", 2)
	if len(parts) != 2 {
		return ListCursor{}, fmt.Errorf("invalid cursor format")
	}

	nanos, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return ListCursor{}, fmt.Errorf("invalid cursor timestamp: %w", err)
	}

	id, err := uuid.Parse(parts[1])
	if err != nil {
		return ListCursor{}, fmt.Errorf("invalid cursor id: %w", err)
	}

	return ListCursor{CreatedAt: time.Unix(0, nanos), ID: id}, nil
}
