// File path: internal/api/chat_handler.go
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sgci-marketing/persona-studio/internal/chat"
	"github.com/sgci-marketing/persona-studio/internal/common"
	"github.com/sgci-marketing/persona-studio/internal/session"
)

func (s *Server) handleChatSend(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}
	defer sess.Unlock()
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("api: chat decode failed", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, errors.New("message required"))
		return
	}
	reply, err := chat.Send(r.Context(), sess, req.Message)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, session.ErrNotConfigured) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Reply: reply, Transcript: sess.Transcript})
}

func (s *Server) handleChatTranscript(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}
	defer sess.Unlock()
	writeJSON(w, http.StatusOK, transcriptResponse{Messages: sess.Transcript})
}
