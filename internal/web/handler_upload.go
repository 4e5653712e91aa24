package web

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/vbonduro/lumo/internal/gallery"
	"github.com/vbonduro/lumo/internal/metadata"
)

const maxPhotoSize = 50 * 1024 * 1024 // 50 MB

// allowedImageTypes is the set of MIME types the gallery stores.
var allowedImageTypes = map[string]bool{
	gallery.MIMETypeJPEG: true,
	gallery.MIMETypePNG:  true,
}

// allowedImageMIME returns the detected MIME type and true if the data is an
// accepted image format, or ("", false) otherwise.
func allowedImageMIME(data []byte) (string, bool) {
	mime := http.DetectContentType(data)
	if allowedImageTypes[mime] {
		return mime, true
	}
	return "", false
}

// captureDate picks the record date for an upload: the client's value if
// given, else the EXIF capture time, else "" so the store uses the current time.
func captureDate(formValue string, imageData []byte) string {
	if formValue != "" {
		return formValue
	}
	if t, ok := metadata.CaptureTime(imageData); ok {
		return t.UTC().Format(gallery.DateLayout)
	}
	return ""
}

func (s *Server) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoSize)
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "image file required", http.StatusBadRequest)
		return
	}
	defer closeWithLog(file, "upload file", s.logger)

	imageData, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read file", http.StatusInternalServerError)
		s.logger.Error("read upload failed", "error", err)
		return
	}

	mimeType, ok := allowedImageMIME(imageData)
	if !ok {
		http.Error(w, "unsupported image format", http.StatusBadRequest)
		return
	}

	photo, err := s.photos.Save(r.Context(), imageData, captureDate(r.FormValue("date"), imageData), mimeType)
	if errors.Is(err, gallery.ErrInvalidCapturedAt) {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "failed to save photo", http.StatusInternalServerError)
		s.logger.Error("save photo failed", "mime_type", mimeType, "bytes", len(imageData), "error", err)
		return
	}

	s.writeJSON(w, http.StatusCreated, photo)
}

func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	if s.files == nil {
		http.NotFound(w, r)
		return
	}
	fileName := r.PathValue("fileName")

	photo, err := s.photos.Get(r.Context(), fileName)
	if err != nil {
		http.Error(w, "failed to load photos", http.StatusInternalServerError)
		s.logger.Error("get photo failed", "file_name", fileName, "error", err)
		return
	}
	if photo == nil {
		http.NotFound(w, r)
		return
	}

	reader, mimeType, err := s.files.Open(r.Context(), fileName)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer closeWithLog(reader, "photo reader", s.logger)

	w.Header().Set("Content-Type", mimeType)
	// Records are never modified after creation.
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	if _, err := io.Copy(w, reader); err != nil {
		s.logger.Error("write photo failed", "file_name", fileName, "error", err)
	}
}

// closeWithLog closes c and logs any error, using label to identify the resource.
func closeWithLog(c io.Closer, label string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close resource", "label", label, "error", err)
	}
}
