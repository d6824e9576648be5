package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"sort"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Store implements ObjectStore against any S3-compatible endpoint using the
// minio SDK.
type S3Store struct {
	client *minio.Client
}

// NewS3Store builds an S3 client from the supplied options. The endpoint URL
// is required; https endpoints force SSL regardless of the UseSSL flag.
func NewS3Store(options Options) (*S3Store, error) {
	if options.EndpointURL == "" {
		return nil, fmt.Errorf("storage: endpoint url is required")
	}
	if options.AccessKeyID == "" || options.SecretAccessKey == "" {
		return nil, fmt.Errorf("storage: credentials are required")
	}

	u, err := url.Parse(options.EndpointURL)
	if err != nil {
		return nil, fmt.Errorf("storage: invalid endpoint url: %w", err)
	}
	endpoint := u.Host
	if endpoint == "" {
		endpoint = options.EndpointURL
	}

	useSSL := options.UseSSL
	if u.Scheme == "https" {
		useSSL = true
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(options.AccessKeyID, options.SecretAccessKey, options.SessionToken),
		Secure: useSSL,
		Region: options.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: create s3 client: %w", err)
	}

	return &S3Store{client: client}, nil
}

// List returns object paths under the prefix as s3:// URIs.
func (s *S3Store) List(ctx context.Context, prefix string) ([]string, error) {
	bucket, key := splitBucketKey(prefix)
	if bucket == "" {
		return nil, fmt.Errorf("storage: list: missing bucket in %q", prefix)
	}

	var paths []string
	objects := s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    key,
		Recursive: true,
	})
	for object := range objects {
		if object.Err != nil {
			return nil, fmt.Errorf("storage: list %q: %w", prefix, object.Err)
		}
		paths = append(paths, "s3://"+bucket+"/"+object.Key)
	}

	sort.Strings(paths)
	return paths, nil
}

// Get reads the full object at the given s3:// path.
func (s *S3Store) Get(ctx context.Context, path string) ([]byte, error) {
	bucket, key := splitBucketKey(path)
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("storage: get: invalid object path %q", path)
	}

	object, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("storage: get %q: %w", path, err)
	}
	defer func() {
		_ = object.Close()
	}()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("storage: read %q: %w", path, err)
	}
	return data, nil
}

// Put writes the object at the given s3:// path.
func (s *S3Store) Put(ctx context.Context, path string, data []byte) error {
	bucket, key := splitBucketKey(path)
	if bucket == "" || key == "" {
		return fmt.Errorf("storage: put: invalid object path %q", path)
	}

	_, err := s.client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("storage: put %q: %w", path, err)
	}
	return nil
}
