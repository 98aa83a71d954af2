// File path: internal/api/segment_handler.go
package api

import (
	"fmt"
	"net/http"

	"github.com/sgci-marketing/persona-studio/internal/common"
	"github.com/sgci-marketing/persona-studio/internal/segment"
)

func (s *Server) handleSegmentsList(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}
	defer sess.Unlock()
	writeJSON(w, http.StatusOK, segmentsResponse{Count: len(sess.Segments), Segments: sess.Segments})
}

// handleSegmentsUpload replaces the session's segment set wholesale with the
// normalized rows of an uploaded CSV. On any parse failure the existing
// segments are kept.
func (s *Server) handleSegmentsUpload(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}
	defer sess.Unlock()
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		logger.Warn("api: segment upload form parse failed", "error", err)
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
	segments, columns, err := segment.ParseCSV(file)
	if err != nil {
		logger.Warn("api: segment csv rejected", "session", sess.ID, "file", header.Filename, "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sess.Segments = segments
	logger.Info("api: segments replaced", "session", sess.ID, "file", header.Filename, "count", len(segments))
	writeJSON(w, http.StatusOK, segmentsResponse{Count: len(segments), Columns: columns, Segments: segments})
}

func (s *Server) handleSegmentsDefault(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}
	defer sess.Unlock()
	sess.Segments = segment.Defaults()
	common.Logger().Info("api: default segments restored", "session", sess.ID)
	writeJSON(w, http.StatusOK, segmentsResponse{Count: len(sess.Segments), Segments: sess.Segments})
}
