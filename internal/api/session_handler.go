// File path: internal/api/session_handler.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	chi "github.com/go-chi/chi/v5"

	"github.com/sgci-marketing/persona-studio/internal/common"
	"github.com/sgci-marketing/persona-studio/internal/session"
)

func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Create()
	sess.Lock()
	defer sess.Unlock()
	writeJSON(w, http.StatusCreated, snapshot(sess))
}

func (s *Server) handleSessionGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}
	defer sess.Unlock()
	writeJSON(w, http.StatusOK, snapshot(sess))
}

func (s *Server) handleSessionDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.sessions.Get(id); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	s.sessions.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}
	defer sess.Unlock()
	sess.Reset()
	common.Logger().Info("session: reset", "session", sess.ID)
	writeJSON(w, http.StatusOK, snapshot(sess))
}

func (s *Server) handleSessionConfig(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}
	defer sess.Unlock()
	var req configRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("api: config decode failed", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if model := strings.TrimSpace(req.Model); model != "" {
		if !session.ValidModel(model) {
			writeError(w, http.StatusBadRequest, fmt.Errorf("unsupported model %q, choose one of %s", model, strings.Join(session.SupportedModels, ", ")))
			return
		}
		sess.Model = model
	}
	if key := strings.TrimSpace(req.APIKey); key != "" {
		provider, err := s.newProvider(key)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		sess.Provider = provider
		logger.Info("api: session client configured", "session", sess.ID, "provider", provider.Name())
	}
	resp := configResponse{Model: sess.Model, Configured: sess.Provider != nil}
	if sess.Provider != nil {
		resp.Provider = sess.Provider.Name()
	}
	writeJSON(w, http.StatusOK, resp)
}

func snapshot(sess *session.Session) sessionResponse {
	resp := sessionResponse{
		ID:         sess.ID,
		Model:      sess.Model,
		Configured: sess.Provider != nil,
		Segments:   len(sess.Segments),
		Personas:   len(sess.Personas),
		Transcript: len(sess.Transcript),
	}
	if sess.Catalog != nil {
		resp.Catalog = &catalogResponse{
			Kind:  sess.Catalog.Kind,
			Units: sess.Catalog.Units,
			Chars: len(sess.Catalog.Text),
		}
	}
	return resp
}
