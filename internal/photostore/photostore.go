package photostore

import (
	"context"
	"errors"
	"io"
	"strings"
)

// PublicDir is the directory, relative to the data directory, that holds
// photo files on disk.
const PublicDir = "public"

var (
	ErrNotFound      = errors.New("photo not found")
	ErrAlreadyExists = errors.New("photo already exists")
	ErrInvalidName   = errors.New("invalid photo file name")
)

// PhotoStore holds the encoded bytes behind a gallery record. Save returns a
// reference a client can render without further calls to the store.
type PhotoStore interface {
	Save(ctx context.Context, fileName, mimeType string, data []byte) (webPath string, err error)
	Delete(ctx context.Context, fileName string) error
}

// Reader is an optional extension of PhotoStore for backends that keep the
// bytes somewhere they can be streamed back from.
type Reader interface {
	PhotoStore
	Open(ctx context.Context, fileName string) (io.ReadCloser, string, error)
}

// BaseName returns the record name for fileName. Names given relative to the
// data directory ("public/123.jpeg") and bare names ("123.jpeg") refer to the
// same photo.
func BaseName(fileName string) string {
	return strings.TrimPrefix(fileName, PublicDir+"/")
}
