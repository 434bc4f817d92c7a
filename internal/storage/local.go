package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// LocalBucket stores objects on disk under Dir and serves them from BaseURL.
type LocalBucket struct {
	Dir     string
	BaseURL string
}

func NewLocalBucket(dir, baseURL string) (*LocalBucket, error) {
	if err := os.MkdirAll(filepath.Join(dir, filepath.FromSlash(PublicPrefix)), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalBucket{Dir: dir, BaseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (b *LocalBucket) path(name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid object name %q", name)
	}
	return filepath.Join(b.Dir, clean), nil
}

func (b *LocalBucket) Upload(ctx context.Context, name, contentType string, r io.Reader) error {
	p, err := b.path(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	// O_EXCL so a name collision never overwrites another row's image.
	out, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create object %s: %w", name, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		os.Remove(p)
		return fmt.Errorf("write object %s: %w", name, err)
	}
	return out.Close()
}

func (b *LocalBucket) Delete(ctx context.Context, name string) error {
	p, err := b.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrObjectNotFound
		}
		return err
	}
	return nil
}

func (b *LocalBucket) PublicURL(name string) string {
	return b.BaseURL + "/" + name
}

// Exists reports whether the object is on disk.
func (b *LocalBucket) Exists(name string) bool {
	p, err := b.path(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}

// Handler serves the public prefix of the bucket. Mount it with
// http.StripPrefix(BaseURL, ...).
func (b *LocalBucket) Handler() http.Handler {
	return http.FileServer(noListing{http.Dir(b.Dir)})
}

// noListing hides directory indexes.
type noListing struct {
	fs http.FileSystem
}

func (n noListing) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if st.IsDir() {
		f.Close()
		return nil, fs.ErrNotExist
	}
	return f, nil
}
