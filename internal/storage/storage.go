// Package storage maps stored asset paths to publicly fetchable URLs.
//
// The hosted backend serves bucket objects from a well-known public path, so
// URL derivation is pure string construction with no network round trip.
package storage

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mnfaaiiq/soniq/internal/shared"
)

const publicObjectPath = "/storage/v1/object/public"

// PublicURLProvider maps a bucket asset path to a publicly fetchable URL.
// An empty bucket or path yields "", which downstream consumers treat as
// "not yet resolvable" rather than an error.
type PublicURLProvider interface {
	PublicURL(bucket, assetPath string) string
}

// BucketStorage builds public object URLs for the configured project.
type BucketStorage struct {
	baseURL string
	buckets shared.StorageConfig
}

// NewBucketStorage creates a BucketStorage for the backend at baseURL.
func NewBucketStorage(baseURL string, buckets shared.StorageConfig) *BucketStorage {
	return &BucketStorage{
		baseURL: strings.TrimRight(baseURL, "/"),
		buckets: buckets,
	}
}

// PublicURL returns the public URL for an object, or "" when bucket or path is absent.
func (b *BucketStorage) PublicURL(bucket, assetPath string) string {
	if bucket == "" || assetPath == "" {
		return ""
	}

	segments := strings.Split(strings.TrimLeft(assetPath, "/"), "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}

	return fmt.Sprintf("%s%s/%s/%s", b.baseURL, publicObjectPath, url.PathEscape(bucket), strings.Join(segments, "/"))
}

// SongURL returns the public URL for a song asset path using the configured song bucket.
func (b *BucketStorage) SongURL(assetPath string) string {
	return b.PublicURL(b.buckets.SongBucket, assetPath)
}

// ImageURL returns the public URL for an image asset path using the configured image bucket.
func (b *BucketStorage) ImageURL(assetPath string) string {
	return b.PublicURL(b.buckets.ImageBucket, assetPath)
}
