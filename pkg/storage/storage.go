// Package storage abstracts the object stores that back parquet and delta
// tables. Implementations operate on full object URIs (s3://bucket/key or
// plain paths for the local store) so table code never deals with bucket
// plumbing directly.
package storage

import (
	"context"
	"strings"
)

// ObjectStore is the minimal surface table scans need.
type ObjectStore interface {
	// List returns the object paths under the given prefix, sorted
	// lexicographically.
	List(ctx context.Context, prefix string) ([]string, error)
	// Get reads the full object at the given path.
	Get(ctx context.Context, path string) ([]byte, error)
	// Put writes an object, creating or replacing it.
	Put(ctx context.Context, path string, data []byte) error
}

// Options mirror the storage settings table definitions can carry: an
// endpoint override for S3-compatible stores plus static credentials. Empty
// fields are omitted when building the client.
type Options struct {
	EndpointURL     string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Region          string
	UseSSL          bool
}

// splitBucketKey splits "s3://bucket/key/parts" into bucket and key. Paths
// without a scheme are treated as "bucket/key".
func splitBucketKey(uri string) (string, string) {
	trimmed := strings.TrimPrefix(uri, "s3://")
	trimmed = strings.TrimPrefix(trimmed, "/")
	bucket, key, found := strings.Cut(trimmed, "/")
	if !found {
		return trimmed, ""
	}
	return bucket, key
}
