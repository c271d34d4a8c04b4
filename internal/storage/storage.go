package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default lifetime of presigned media URLs when no public base URL is configured.
// SigV4 caps presigned URLs at seven days.
const DefaultPresignedURLExpiry = 7 * 24 * time.Hour

var (
	ErrEmptyMedia       = errors.New("media file is empty")
	ErrUnsupportedMedia = errors.New("only image and video files can be uploaded")
)

// MediaFile is a raw file picked for a post.
type MediaFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// IsVideo reports whether the file is a video.
func (f MediaFile) IsVideo() bool {
	return strings.HasPrefix(f.ContentType, "video/")
}

// Uploaded identifies a stored object and the URL the post should carry.
type Uploaded struct {
	Key string
	URL string
}

// MediaStorage uploads post media.
type MediaStorage interface {
	Upload(ctx context.Context, file MediaFile) (Uploaded, error)
	Delete(ctx context.Context, objectKey string) error
}

// ObjectKey builds the storage key for a file: images/ or videos/ followed
// by a uuid and the sanitised original name.
func ObjectKey(file MediaFile) (string, error) {
	var prefix string
	switch {
	case strings.HasPrefix(file.ContentType, "image/"):
		prefix = "images"
	case file.IsVideo():
		prefix = "videos"
	default:
		return "", ErrUnsupportedMedia
	}
	name := path.Base(strings.ReplaceAll(file.Name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	if name == "" || name == "." || name == "_" {
		name = "file"
	}
	return prefix + "/" + uuid.NewString() + "-" + name, nil
}
