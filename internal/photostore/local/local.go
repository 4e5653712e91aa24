package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/vbonduro/lumo/internal/photostore"
)

// LocalPhotoStore keeps photos as one file per record under <dataDir>/public
// and resolves them to URLs under baseURL.
type LocalPhotoStore struct {
	basePath string
	baseURL  string
	logger   *slog.Logger
}

var _ photostore.Reader = (*LocalPhotoStore)(nil)

func NewLocalPhotoStore(dataDir, baseURL string, logger *slog.Logger) *LocalPhotoStore {
	return &LocalPhotoStore{
		basePath: filepath.Join(dataDir, photostore.PublicDir),
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger,
	}
}

func (s *LocalPhotoStore) Save(ctx context.Context, fileName, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.ensureDir()

	name := photostore.BaseName(fileName)
	filePath, err := s.safeJoin(name)
	if err != nil {
		return "", err
	}

	f, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("%w: %s", photostore.ErrAlreadyExists, name)
		}
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		if cerr := f.Close(); cerr != nil {
			s.logger.Error("failed to close file after write error", "file_name", name, "error", cerr)
		}
		if rerr := os.Remove(filePath); rerr != nil {
			s.logger.Error("failed to remove file after write error", "file_name", name, "error", rerr)
		}
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		if rerr := os.Remove(filePath); rerr != nil {
			s.logger.Error("failed to remove file after close error", "file_name", name, "error", rerr)
		}
		return "", fmt.Errorf("failed to close file: %w", err)
	}
	return s.webPath(name), nil
}

func (s *LocalPhotoStore) Open(ctx context.Context, fileName string) (io.ReadCloser, string, error) {
	filePath, err := s.safeJoin(photostore.BaseName(fileName))
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("%w: %s", photostore.ErrNotFound, fileName)
		}
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	return f, extToMimeType(filePath), nil
}

func (s *LocalPhotoStore) Delete(ctx context.Context, fileName string) error {
	filePath, err := s.safeJoin(photostore.BaseName(fileName))
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", photostore.ErrNotFound, fileName)
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// ensureDir creates the photo directory. Failures other than the directory
// already existing are logged; the following write reports the real error.
func (s *LocalPhotoStore) ensureDir() {
	if err := os.MkdirAll(s.basePath, 0755); err != nil && !errors.Is(err, fs.ErrExist) {
		s.logger.Warn("failed to create photo directory", "path", s.basePath, "error", err)
	}
}

// webPath is the URL a client uses to fetch name back from the host.
func (s *LocalPhotoStore) webPath(name string) string {
	return s.baseURL + "/" + url.PathEscape(name)
}

// safeJoin resolves name relative to basePath and rejects directory traversal.
func (s *LocalPhotoStore) safeJoin(name string) (string, error) {
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(s.basePath, name))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", photostore.ErrInvalidName, name)
	}
	return absPath, nil
}

func extToMimeType(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".png":
		return "image/png"
	default:
		return "image/jpeg"
	}
}
