// File path: internal/api/server.go
package api

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/sgci-marketing/persona-studio/internal/common"
	"github.com/sgci-marketing/persona-studio/internal/llm"
	"github.com/sgci-marketing/persona-studio/internal/session"
)

// Config controls upload limits and how new sessions are provisioned.
type Config struct {
	// MaxUploadBytes bounds multipart uploads (segment tables, catalogs).
	MaxUploadBytes int64
	// DefaultProvider preconfigures every new session. Left nil, each
	// session must supply its own credential.
	DefaultProvider llm.Provider
	// NewProvider builds a provider from a session credential. Defaults
	// to llm.NewProvider; tests swap it for a mock.
	NewProvider func(apiKey string) (llm.Provider, error)
}

// DefaultConfig returns the standard server configuration.
func DefaultConfig() Config {
	return Config{MaxUploadBytes: 16 << 20}
}

// Server exposes the persona workflow as a session-scoped JSON API.
type Server struct {
	router         chi.Router
	sessions       *session.Manager
	newProvider    func(apiKey string) (llm.Provider, error)
	maxUploadBytes int64
}

func NewServer(cfg *Config) *Server {
	configuration := DefaultConfig()
	if cfg != nil {
		if cfg.MaxUploadBytes > 0 {
			configuration.MaxUploadBytes = cfg.MaxUploadBytes
		}
		configuration.DefaultProvider = cfg.DefaultProvider
		configuration.NewProvider = cfg.NewProvider
	}
	newProvider := configuration.NewProvider
	if newProvider == nil {
		newProvider = llm.NewProvider
	}
	srv := &Server{
		router:         chi.NewRouter(),
		sessions:       session.NewManager(configuration.DefaultProvider),
		newProvider:    newProvider,
		maxUploadBytes: configuration.MaxUploadBytes,
	}
	srv.routes()
	common.Logger().Info("api: server ready", "max_upload_bytes", srv.maxUploadBytes)
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Sessions returns the backing session manager.
func (s *Server) Sessions() *session.Manager {
	if s == nil {
		return nil
	}
	return s.sessions
}

func (s *Server) routes() {
	logger := common.Logger()
	logger.Info("api: configuring routes")
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	uiPath := filepath.Join("web", "ui")
	if _, err := os.Stat(filepath.Join(uiPath, "index.html")); err != nil {
		logger.Warn("api: ui index missing", "path", filepath.Join(uiPath, "index.html"), "error", err)
	}
	fileServer := http.FileServer(http.Dir(uiPath))
	s.router.Get("/ui", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui/", http.StatusMovedPermanently)
	})
	s.router.Get("/ui/*", func(w http.ResponseWriter, r *http.Request) {
		trimmed := strings.TrimPrefix(r.URL.Path, "/ui/")
		if trimmed == "" || trimmed == "/" {
			http.ServeFile(w, r, filepath.Join(uiPath, "index.html"))
			return
		}
		http.StripPrefix("/ui/", fileServer).ServeHTTP(w, r)
	})
	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui/", http.StatusFound)
	})

	s.router.Post("/v1/sessions", s.handleSessionCreate)
	s.router.Get("/v1/sessions/{id}", s.handleSessionGet)
	s.router.Delete("/v1/sessions/{id}", s.handleSessionDelete)
	s.router.Post("/v1/sessions/{id}/reset", s.handleSessionReset)
	s.router.Put("/v1/sessions/{id}/config", s.handleSessionConfig)
	s.router.Get("/v1/sessions/{id}/segments", s.handleSegmentsList)
	s.router.Post("/v1/sessions/{id}/segments", s.handleSegmentsUpload)
	s.router.Post("/v1/sessions/{id}/segments/default", s.handleSegmentsDefault)
	s.router.Post("/v1/sessions/{id}/catalog", s.handleCatalogUpload)
	s.router.Delete("/v1/sessions/{id}/catalog", s.handleCatalogDelete)
	s.router.Get("/v1/sessions/{id}/personas", s.handlePersonasList)
	s.router.Post("/v1/sessions/{id}/personas/generate", s.handlePersonasGenerate)
	s.router.Get("/v1/sessions/{id}/personas/{segmentID}/download", s.handlePersonaDownload)
	s.router.Post("/v1/sessions/{id}/chat", s.handleChatSend)
	s.router.Get("/v1/sessions/{id}/chat", s.handleChatTranscript)
	s.router.Get("/v1/logs", s.handleLogs)
}

// withSession resolves the session in the URL and takes its interaction
// lock. Callers must release it when the interaction completes.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "id")
	sess, err := s.sessions.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return nil, false
	}
	sess.Lock()
	return sess, true
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": common.LogEntries()})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
