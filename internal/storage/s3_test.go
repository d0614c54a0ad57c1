package storage

import (
	"alcyxob/fitness-planner/internal/config"
	"context"
	"errors"
	"testing"
)

func TestEndpointURL(t *testing.T) {
	tests := []struct {
		endpoint string
		useSSL   bool
		want     string
	}{
		{"minio:9000", false, "http://minio:9000"},
		{"nyc3.digitaloceanspaces.com", true, "https://nyc3.digitaloceanspaces.com"},
		{"https://s3.example.com", false, "https://s3.example.com"},
		{"http://localhost:9000", true, "http://localhost:9000"},
	}
	for _, tt := range tests {
		if got := endpointURL(tt.endpoint, tt.useSSL); got != tt.want {
			t.Errorf("endpointURL(%q, %v) = %q, want %q", tt.endpoint, tt.useSSL, got, tt.want)
		}
	}
}

func TestNewS3StorageWithoutBucket(t *testing.T) {
	_, err := NewS3Storage(context.Background(), config.S3Config{Region: "us-east-1"}, nil)
	if !errors.Is(err, ErrStorageDisabled) {
		t.Fatalf("err = %v, want ErrStorageDisabled", err)
	}
}

func TestExportKey(t *testing.T) {
	if got := ExportKey("u1", "abc"); got != "exports/u1/abc.json" {
		t.Errorf("ExportKey = %q", got)
	}
}
