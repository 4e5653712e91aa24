// Package gallery keeps the ordered list of gallery photos. Metadata lives as
// one JSON array under a single preference key; photo bytes live in a
// photostore backend chosen by the host.
package gallery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vbonduro/lumo/internal/domain"
	"github.com/vbonduro/lumo/internal/photostore"
	"github.com/vbonduro/lumo/internal/prefs"
)

// DefaultKey is the preference key holding the photo list.
const DefaultKey = "photos"

const (
	MIMETypeJPEG = "image/jpeg"
	MIMETypePNG  = "image/png"
)

// DateLayout formats default capture times: UTC with millisecond precision.
const DateLayout = "2006-01-02T15:04:05.000Z07:00"

// isoLayouts are the ISO-8601 forms accepted for caller-supplied capture times.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// maxNameAttempts bounds the search for an unused timestamp file name.
const maxNameAttempts = 1000

var (
	ErrUnsupportedMIMEType = errors.New("unsupported image type")
	ErrInvalidCapturedAt   = errors.New("invalid capture timestamp")
)

type Option func(*Store)

// WithKey stores the photo list under key instead of DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// Store serializes all operations on its preference key, so concurrent Save
// and Delete calls never lose each other's updates. Use one Store per key.
type Store struct {
	mu      sync.Mutex
	prefs   prefs.Store
	backend photostore.PhotoStore
	key     string
	logger  *slog.Logger
	now     func() time.Time
}

func NewStore(p prefs.Store, backend photostore.PhotoStore, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		prefs:   p,
		backend: backend,
		key:     DefaultKey,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the stored photos, newest first. A list that cannot be decoded
// is cleared and reported as empty.
func (s *Store) Load(ctx context.Context) ([]domain.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Get returns the photo named fileName, or nil if there is none.
func (s *Store) Get(ctx context.Context, fileName string) (*domain.Photo, error) {
	fileName = photostore.BaseName(fileName)
	photos, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range photos {
		if photos[i].FileName == fileName {
			return &photos[i], nil
		}
	}
	return nil, nil
}

// Save writes data to the backend and prepends a record for it to the list.
// capturedAt is an ISO-8601 date or timestamp kept verbatim; empty means now.
// mimeType is image/jpeg (the default when empty) or image/png.
func (s *Store) Save(ctx context.Context, data []byte, capturedAt, mimeType string) (*domain.Photo, error) {
	if mimeType == "" {
		mimeType = MIMETypeJPEG
	}
	ext, err := extensionFor(mimeType)
	if err != nil {
		return nil, err
	}
	if capturedAt != "" && !isISO8601(capturedAt) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCapturedAt, capturedAt)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	photos, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	fileName, webPath, err := s.write(ctx, photos, now, ext, mimeType, data)
	if err != nil {
		return nil, err
	}

	if capturedAt == "" {
		capturedAt = now.UTC().Format(DateLayout)
	}
	photo := domain.Photo{
		FileName: fileName,
		WebPath:  webPath,
		Date:     capturedAt,
	}

	photos = append([]domain.Photo{photo}, photos...)
	if err := s.persist(ctx, photos); err != nil {
		if derr := s.backend.Delete(ctx, fileName); derr != nil && !errors.Is(derr, photostore.ErrNotFound) {
			s.logger.Error("failed to remove photo file after list update error", "file_name", fileName, "error", derr)
		}
		return nil, err
	}

	s.logger.Info("photo saved", "file_name", fileName, "mime_type", mimeType, "bytes", len(data))
	return &photo, nil
}

// Delete removes every record named fileName and its backing bytes. Names
// that are not stored are ignored. Failing to remove the bytes is logged and
// does not stop the record from being removed.
func (s *Store) Delete(ctx context.Context, fileName string) error {
	fileName = photostore.BaseName(fileName)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Delete(ctx, fileName); err != nil && !errors.Is(err, photostore.ErrNotFound) {
		s.logger.Error("failed to delete photo file", "file_name", fileName, "error", err)
	}

	photos, err := s.load(ctx)
	if err != nil {
		return err
	}

	remaining := photos[:0]
	for _, p := range photos {
		if p.FileName != fileName {
			remaining = append(remaining, p)
		}
	}

	if err := s.persist(ctx, remaining); err != nil {
		return err
	}
	s.logger.Info("photo deleted", "file_name", fileName, "removed", len(photos)-len(remaining))
	return nil
}

func (s *Store) load(ctx context.Context) ([]domain.Photo, error) {
	raw, ok, err := s.prefs.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read photo list: %w", err)
	}
	if !ok || raw == "" {
		return []domain.Photo{}, nil
	}

	var photos []domain.Photo
	if err := json.Unmarshal([]byte(raw), &photos); err != nil {
		s.logger.Warn("discarding corrupt photo list", "key", s.key, "error", err)
		if rerr := s.prefs.Remove(ctx, s.key); rerr != nil {
			s.logger.Error("failed to clear corrupt photo list", "key", s.key, "error", rerr)
		}
		return []domain.Photo{}, nil
	}
	if photos == nil {
		photos = []domain.Photo{}
	}
	return photos, nil
}

func (s *Store) persist(ctx context.Context, photos []domain.Photo) error {
	raw, err := json.Marshal(photos)
	if err != nil {
		return fmt.Errorf("failed to encode photo list: %w", err)
	}
	if err := s.prefs.Set(ctx, s.key, string(raw)); err != nil {
		return fmt.Errorf("failed to write photo list: %w", err)
	}
	return nil
}

// write saves data under the first "<millis>.<ext>" name, starting at now,
// that is neither in existing nor already held by the backend.
func (s *Store) write(ctx context.Context, existing []domain.Photo, now time.Time, ext, mimeType string, data []byte) (string, string, error) {
	taken := make(map[string]bool, len(existing))
	for _, p := range existing {
		taken[p.FileName] = true
	}

	millis := now.UnixMilli()
	for i := int64(0); i < maxNameAttempts; i++ {
		fileName := fmt.Sprintf("%d.%s", millis+i, ext)
		if taken[fileName] {
			continue
		}
		webPath, err := s.backend.Save(ctx, fileName, mimeType, data)
		if errors.Is(err, photostore.ErrAlreadyExists) {
			s.logger.Debug("photo file name in use", "file_name", fileName)
			continue
		}
		if err != nil {
			return "", "", fmt.Errorf("failed to save photo: %w", err)
		}
		return fileName, webPath, nil
	}
	return "", "", fmt.Errorf("failed to find a free file name after %d attempts", maxNameAttempts)
}

func isISO8601(s string) bool {
	for _, layout := range isoLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func extensionFor(mimeType string) (string, error) {
	switch mimeType {
	case MIMETypeJPEG:
		return "jpeg", nil
	case MIMETypePNG:
		return "png", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMIMEType, mimeType)
	}
}
