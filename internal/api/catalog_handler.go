// File path: internal/api/catalog_handler.go
package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/sgci-marketing/persona-studio/internal/catalog"
	"github.com/sgci-marketing/persona-studio/internal/common"
)

const catalogPreviewChars = 800

// handleCatalogUpload ingests one uploaded reference document. A failed
// ingestion leaves any previously loaded catalog untouched.
func (s *Server) handleCatalogUpload(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}
	defer sess.Unlock()
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		logger.Warn("api: catalog upload form parse failed", "error", err)
		writeError(w, http.StatusBadRequest, fmt.Errorf("parse upload form: %w", err))
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("file field required: %w", err))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, s.maxUploadBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("read upload: %w", err))
		return
	}
	if int64(len(data)) > s.maxUploadBytes {
		writeError(w, http.StatusBadRequest, fmt.Errorf("catalog exceeds %d byte upload limit", s.maxUploadBytes))
		return
	}
	cat, err := catalog.Ingest(header.Filename, data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sess.Catalog = &cat
	logger.Info("api: catalog loaded", "session", sess.ID, "kind", cat.Kind, "units", cat.Units)
	writeJSON(w, http.StatusOK, catalogResponse{
		Kind:    cat.Kind,
		Units:   cat.Units,
		Chars:   len(cat.Text),
		Preview: cat.Preview(catalogPreviewChars),
	})
}

func (s *Server) handleCatalogDelete(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}
	defer sess.Unlock()
	sess.Catalog = nil
	common.Logger().Info("api: catalog cleared", "session", sess.ID)
	w.WriteHeader(http.StatusNoContent)
}
