package web

import "net/http"

func (s *Server) handleListPhotos(w http.ResponseWriter, r *http.Request) {
	photos, err := s.photos.Load(r.Context())
	if err != nil {
		http.Error(w, "failed to load photos", http.StatusInternalServerError)
		s.logger.Error("load photos failed", "error", err)
		return
	}
	s.writeJSON(w, http.StatusOK, photos)
}

func (s *Server) handleDeletePhoto(w http.ResponseWriter, r *http.Request) {
	fileName := r.PathValue("fileName")
	if err := s.photos.Delete(r.Context(), fileName); err != nil {
		http.Error(w, "failed to delete photo", http.StatusInternalServerError)
		s.logger.Error("delete photo failed", "file_name", fileName, "error", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
