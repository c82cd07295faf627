package storage

import (
	"fmt"
	"strings"
)

// Normalizer maps stored path fragments to fully qualified public URLs in
// the bucket under BaseURL.
type Normalizer struct {
	BaseURL string
	Bucket  string
}

// Normalize turns a stored or user-supplied path fragment into a fetchable
// URL. Empty input stays empty and absolute URLs pass through unchanged, so
// the function is idempotent.
func (n Normalizer) Normalize(path string) string {
	s := strings.TrimSpace(path)
	if s == "" {
		return ""
	}

	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s
	}

	s = strings.TrimPrefix(s, "./")
	if len(s) >= 7 && strings.EqualFold(s[:7], "public/") {
		s = s[7:]
	}
	s = strings.TrimPrefix(s, "/")

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", n.BaseURL, n.Bucket, s)
}
