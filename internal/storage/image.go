package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

const (
	// MaxUploadSize caps a single image upload.
	MaxUploadSize = 10 << 20
	// MaxImageWidth is the width raster uploads are scaled down to.
	MaxImageWidth = 800
)

var (
	ErrNoImage          = errors.New("no image provided")
	ErrUnsupportedImage = errors.New("unsupported image format")
	ErrImageTooLarge    = errors.New("image too large")
)

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// Image is an uploaded file as received from a form.
type Image struct {
	Filename string
	Size     int64
	Body     io.Reader
}

// Processed is an image ready to be put in the bucket.
type Processed struct {
	Ext         string
	ContentType string
	Data        []byte
}

// Process validates the upload and scales PNG/JPEG images down to
// MaxImageWidth, re-encoding them as JPEG. GIF and WebP are kept as-is once
// their content matches the extension.
func Process(img *Image) (*Processed, error) {
	if img == nil || img.Body == nil || img.Size == 0 {
		return nil, ErrNoImage
	}
	if img.Size > MaxUploadSize {
		return nil, ErrImageTooLarge
	}
	ext := strings.ToLower(filepath.Ext(img.Filename))
	ct, ok := contentTypes[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedImage, ext)
	}

	raw, err := io.ReadAll(io.LimitReader(img.Body, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrNoImage
	}
	if len(raw) > MaxUploadSize {
		return nil, ErrImageTooLarge
	}

	var decoded image.Image
	switch ext {
	case ".png":
		decoded, err = png.Decode(bytes.NewReader(raw))
	case ".jpg", ".jpeg":
		decoded, err = jpeg.Decode(bytes.NewReader(raw))
	default:
		if detected := mimetype.Detect(raw); !detected.Is(ct) {
			return nil, fmt.Errorf("%w: %s content in a %s file", ErrUnsupportedImage, detected.String(), ext)
		}
		return &Processed{Ext: ext, ContentType: ct, Data: raw}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decode failed: %v", ErrUnsupportedImage, err)
	}

	if decoded.Bounds().Dx() > MaxImageWidth {
		// Resize image (max width 800px, preserve aspect ratio)
		decoded = resize.Resize(MaxImageWidth, 0, decoded, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, decoded, &jpeg.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return &Processed{Ext: ".jpg", ContentType: "image/jpeg", Data: buf.Bytes()}, nil
}

// NewObjectName returns a random key under the public prefix, e.g.
// public/2c1d...e9.jpg.
func NewObjectName(ext string) string {
	return PublicPrefix + uuid.New().String() + ext
}

// NewBlogObjectName returns public/blog-<unix ms>-<8 chars>.<ext>.
func NewBlogObjectName(ext string, now time.Time) string {
	return fmt.Sprintf("%sblog-%d-%s%s", PublicPrefix, now.UnixMilli(), uuid.New().String()[:8], ext)
}
