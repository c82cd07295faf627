package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStorePutAndPublicURL(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "/static/uploads/")

	url, err := store.Put(context.Background(), "images/1-abc.jpg", []byte("data"), "image/jpeg", false)
	if err != nil {
		t.Fatalf("failed to put object: %v", err)
	}
	if url != "/static/uploads/images/1-abc.jpg" {
		t.Fatalf("unexpected public url %q", url)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "images", "1-abc.jpg"))
	if err != nil {
		t.Fatalf("failed to read written object: %v", err)
	}
	if string(raw) != "data" {
		t.Fatalf("unexpected object contents %q", raw)
	}
}

func TestLocalStoreNoOverwrite(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "/static/uploads")

	if _, err := store.Put(context.Background(), "images/key.jpg", []byte("one"), "image/jpeg", false); err != nil {
		t.Fatalf("first put failed: %v", err)
	}

	if _, err := store.Put(context.Background(), "images/key.jpg", []byte("two"), "image/jpeg", false); !errors.Is(err, ErrKeyExists) {
		t.Fatalf("expected ErrKeyExists, got %v", err)
	}

	if _, err := store.Put(context.Background(), "images/key.jpg", []byte("three"), "image/jpeg", true); err != nil {
		t.Fatalf("overwrite put failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "images", "key.jpg"))
	if err != nil {
		t.Fatalf("failed to read object: %v", err)
	}
	if string(raw) != "three" {
		t.Fatalf("expected overwritten contents, got %q", raw)
	}
}
