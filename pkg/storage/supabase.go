package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	storage_go "github.com/supabase-community/storage-go"
)

type supabaseClient interface {
	UploadFile(bucketID, relativePath string, data io.Reader, fileOptions ...storage_go.FileOptions) (storage_go.FileUploadResponse, error)
	RemoveFile(bucketID string, paths []string) ([]storage_go.FileUploadResponse, error)
}

// SupabaseStorage uploads media into a Supabase Storage bucket.
type SupabaseStorage struct {
	client  supabaseClient
	baseURL string
	bucket  string
}

// NewSupabaseStorage builds a client for the project at baseURL.
func NewSupabaseStorage(baseURL, key, bucket string) (*SupabaseStorage, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" || key == "" {
		return nil, fmt.Errorf("supabase storage requires SUPABASE_URL and SUPABASE_KEY")
	}
	if bucket == "" {
		bucket = "media"
	}
	client := storage_go.NewClient(baseURL+"/storage/v1", key, nil)
	return &SupabaseStorage{client: client, baseURL: baseURL, bucket: bucket}, nil
}

// Put uploads r and returns the public object URL.
func (s *SupabaseStorage) Put(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	name, err := cleanName(name)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	opts := storage_go.FileOptions{}
	if contentType != "" {
		opts.ContentType = &contentType
	}
	if _, err := s.client.UploadFile(s.bucket, name, r, opts); err != nil {
		return "", fmt.Errorf("upload to supabase: %w", err)
	}
	return s.PublicURL(name), nil
}

// Delete removes an object from the bucket.
func (s *SupabaseStorage) Delete(ctx context.Context, name string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.client.RemoveFile(s.bucket, []string{name}); err != nil {
		return fmt.Errorf("remove from supabase: %w", err)
	}
	return nil
}

// PublicURL returns the public address of an object in the bucket.
func (s *SupabaseStorage) PublicURL(name string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, name)
}
