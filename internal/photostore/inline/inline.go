package inline

import (
	"context"
	"encoding/base64"

	"github.com/vbonduro/lumo/internal/photostore"
)

// InlinePhotoStore writes nothing: the photo bytes travel inside the web path
// as a data URL. It serves targets without a durable filesystem.
type InlinePhotoStore struct{}

var _ photostore.PhotoStore = (*InlinePhotoStore)(nil)

func NewInlinePhotoStore() *InlinePhotoStore {
	return &InlinePhotoStore{}
}

func (s *InlinePhotoStore) Save(ctx context.Context, _, mimeType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Delete is a no-op; there is no backing file.
func (s *InlinePhotoStore) Delete(context.Context, string) error {
	return nil
}
