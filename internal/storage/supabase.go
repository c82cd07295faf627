package storage

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// SupabaseStore talks to the Supabase Storage HTTP API.
type SupabaseStore struct {
	client     *resty.Client
	baseURL    string
	bucket     string
	serviceKey string
}

// NewSupabaseStore creates a store client for the given project base URL and
// bucket. serviceKey is sent as a bearer token on writes.
func NewSupabaseStore(baseURL, bucket, serviceKey string) *SupabaseStore {
	return &SupabaseStore{
		client:     resty.New().SetTimeout(30 * time.Second),
		baseURL:    baseURL,
		bucket:     bucket,
		serviceKey: serviceKey,
	}
}

// Put uploads an object and returns its public URL. With overwrite disabled
// an existing key fails with ErrKeyExists.
func (s *SupabaseStore) Put(ctx context.Context, key string, data []byte, contentType string, overwrite bool) (string, error) {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, key)

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.serviceKey).
		SetHeader("Content-Type", contentType).
		SetHeader("x-upsert", strconv.FormatBool(overwrite)).
		SetBody(data).
		Post(url)
	if err != nil {
		return "", fmt.Errorf("supabase upload: %w", err)
	}

	if resp.StatusCode() == http.StatusConflict {
		return "", ErrKeyExists
	}
	if resp.IsError() {
		return "", fmt.Errorf("supabase upload failed: %s: %s", resp.Status(), resp.String())
	}

	return s.PublicURL(key), nil
}

// PublicURL returns the public object URL for a key.
func (s *SupabaseStore) PublicURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, key)
}
