// Package storage holds the object bucket that product, blog, homepage and
// settings images are uploaded to. Rows only keep the public URL.
package storage

import (
	"context"
	"errors"
	"io"
	"strings"
)

// PublicPrefix is the key prefix for every uploaded asset.
const PublicPrefix = "public/"

var ErrObjectNotFound = errors.New("object not found")

type Bucket interface {
	Upload(ctx context.Context, name, contentType string, r io.Reader) error
	Delete(ctx context.Context, name string) error
	PublicURL(name string) string
}

// ObjectName maps a public URL produced by PublicURL back to its object key.
// It returns "" for URLs that point elsewhere (external images).
func ObjectName(b Bucket, url string) string {
	base := b.PublicURL("")
	if base == "" || !strings.HasPrefix(url, base) {
		return ""
	}
	return strings.TrimPrefix(url, base)
}
