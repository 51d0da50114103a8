// Package pagination builds the opaque cursors handed out by list endpoints.
package pagination

import (
	"encoding/base64"
	"fmt"
	"time"
)

const timeFormat = time.RFC3339Nano

// EncodeDateBasedToken creates a cursor pointing at the last date of a page.
func EncodeDateBasedToken(date time.Time) string {
	return base64.URLEncoding.EncodeToString([]byte(date.UTC().Format(timeFormat)))
}

// DecodeDateBasedToken parses a cursor produced by EncodeDateBasedToken.
func DecodeDateBasedToken(token string) (time.Time, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	date, err := time.Parse(timeFormat, string(decodedBytes))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}
	return date.UTC(), nil
}
