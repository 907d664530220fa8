package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ledger_books_app/internal/utils/ids"
)

const timeFormat = time.RFC3339Nano

// Cursor identifies the last row of a page ordered by (date DESC, created_at DESC, id DESC).
type Cursor struct {
	Date      time.Time
	CreatedAt time.Time
	ID        string
}

// EncodeToken creates an opaque base64 token from a cursor.
func EncodeToken(c Cursor) string {
	tokenStr := strings.Join([]string{c.Date.Format(timeFormat), c.CreatedAt.Format(timeFormat), c.ID}, "|")
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a token produced by EncodeToken.
func DecodeToken(token string) (Cursor, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 3)
	if len(parts) != 3 || parts[2] == "" {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	date, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	id, ok := ids.Canonical(parts[2])
	if !ok {
		return Cursor{}, fmt.Errorf("invalid pagination token format (id parse)")
	}

	return Cursor{Date: date, CreatedAt: createdAt, ID: id}, nil
}
