// File path: internal/api/persona_handler.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	chi "github.com/go-chi/chi/v5"

	"github.com/sgci-marketing/persona-studio/internal/common"
	"github.com/sgci-marketing/persona-studio/internal/persona"
	"github.com/sgci-marketing/persona-studio/internal/report"
	"github.com/sgci-marketing/persona-studio/internal/segment"
	"github.com/sgci-marketing/persona-studio/internal/session"
)

func (s *Server) handlePersonasList(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}
	defer sess.Unlock()
	ids := make([]int, 0, len(sess.Personas))
	for id := range sess.Personas {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	summaries := make([]personaSummary, 0, len(ids))
	for _, id := range ids {
		name := segment.NotAvailable
		if seg, found := segment.ByID(sess.Segments, id); found {
			name = seg.Name
		}
		summaries = append(summaries, personaSummary{SegmentID: id, Name: name, Chars: len(sess.Personas[id])})
	}
	writeJSON(w, http.StatusOK, personasResponse{Personas: summaries})
}

// handlePersonasGenerate runs the selection strictly sequentially; one
// failing segment never aborts the rest of the batch.
func (s *Server) handlePersonasGenerate(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}
	defer sess.Unlock()
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("api: generate decode failed", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(req.SegmentIDs) == 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("select at least one segment"))
		return
	}
	if sess.Provider == nil {
		// Configuration error: abort before any call, no state mutated.
		writeError(w, http.StatusBadRequest, session.ErrNotConfigured)
		return
	}
	logger.Info("api: generation batch requested", "session", sess.ID, "segments", len(req.SegmentIDs))
	outcomes := persona.GenerateBatch(r.Context(), sess, req.SegmentIDs)
	resp := generateResponse{Outcomes: make([]generateOutcome, 0, len(outcomes))}
	for _, outcome := range outcomes {
		item := generateOutcome{SegmentID: outcome.SegmentID, Persona: outcome.Text}
		if outcome.Err != nil {
			item.Error = outcome.Err.Error()
			resp.Failed++
		} else {
			resp.Generated++
		}
		resp.Outcomes = append(resp.Outcomes, item)
	}
	logger.Info("api: generation batch finished", "session", sess.ID, "generated", resp.Generated, "failed", resp.Failed)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePersonaDownload(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}
	defer sess.Unlock()
	segID, err := strconv.Atoi(chi.URLParam(r, "segmentID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid segment id: %w", err))
		return
	}
	text, found := sess.Personas[segID]
	if !found {
		writeError(w, http.StatusNotFound, fmt.Errorf("no persona generated for segment %d", segID))
		return
	}
	format := r.URL.Query().Get("format")
	switch format {
	case "", "txt":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.TxtFileName(segID)))
		_, _ = w.Write([]byte(text))
	case "pdf":
		name := segment.NotAvailable
		if seg, ok := segment.ByID(sess.Segments, segID); ok {
			name = seg.Name
		}
		data, err := report.RenderPDF(segID, name, text)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.PDFFileName(segID)))
		_, _ = w.Write(data)
	default:
		writeError(w, http.StatusBadRequest, errors.New("format must be txt or pdf"))
	}
}
