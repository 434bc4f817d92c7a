package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gcs "google.golang.org/api/storage/v1"
)

// GCSBucket stores objects in a Google Cloud Storage bucket. Objects are
// expected to be publicly readable (uniform bucket-level access with
// allUsers:objectViewer).
type GCSBucket struct {
	svc     *gcs.Service
	bucket  string
	baseURL string
}

// NewGCSBucket connects with the given client options; an empty baseURL
// defaults to https://storage.googleapis.com/<bucket>.
func NewGCSBucket(ctx context.Context, bucket, baseURL string, opts ...option.ClientOption) (*GCSBucket, error) {
	svc, err := gcs.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	if baseURL == "" {
		baseURL = "https://storage.googleapis.com/" + bucket
	}
	return &GCSBucket{svc: svc, bucket: bucket, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (b *GCSBucket) Upload(ctx context.Context, name, contentType string, r io.Reader) error {
	obj := &gcs.Object{
		Name:         name,
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000",
	}
	// IfGenerationMatch(0) makes the insert fail rather than overwrite.
	_, err := b.svc.Objects.Insert(b.bucket, obj).
		IfGenerationMatch(0).
		Media(r, googleapi.ContentType(contentType)).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("upload %s to gs://%s: %w", name, b.bucket, err)
	}
	return nil
}

func (b *GCSBucket) Delete(ctx context.Context, name string) error {
	err := b.svc.Objects.Delete(b.bucket, name).Context(ctx).Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusNotFound {
			return ErrObjectNotFound
		}
		return fmt.Errorf("delete gs://%s/%s: %w", b.bucket, name, err)
	}
	return nil
}

func (b *GCSBucket) PublicURL(name string) string {
	return b.baseURL + "/" + name
}
