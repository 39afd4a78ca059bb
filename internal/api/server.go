package api

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/bryanchriswhite/snapsource/internal/config"
	"github.com/bryanchriswhite/snapsource/internal/logger"
	"github.com/bryanchriswhite/snapsource/internal/source"
)

// Engine is the capture surface the server exposes over HTTP.
type Engine interface {
	EnumerateSources(iconSize, thumbSize source.Size, flags source.Flags) ([]source.Info, error)
	CaptureSnapshot(id source.ID, requested source.Size) (*source.ImageBuffer, source.Size, error)
}

// Server exposes enumeration and snapshot capture over HTTP.
type Server struct {
	router    *mux.Router
	engine    Engine
	configMgr *config.Manager
	upgrader  websocket.Upgrader
}

// NewServer creates a new API server.
func NewServer(engine Engine, configMgr *config.Manager) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		engine:    engine,
		configMgr: configMgr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/sources", s.handleListSources).Methods("GET")
	api.HandleFunc("/sources/{id:-?[0-9]+}/snapshot", s.handleSnapshot).Methods("GET")
	api.HandleFunc("/sources/{id:-?[0-9]+}/stream", s.handleStream)
	api.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// Router returns the configured handler, for tests and embedding.
func (s *Server) Router() http.Handler {
	return s.enableCORS(s.router)
}

// Start starts the HTTP server.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	logger.WithComponent("api").Info().Str("addr", addr).Msg("starting server")
	return http.ListenAndServe(addr, s.Router())
}

func (s *Server) enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusForError maps the capture error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, source.ErrSourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, source.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, source.ErrCaptureFailed):
		return http.StatusBadGateway
	case errors.Is(err, source.ErrUnsupportedPlatform):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// sourceView is the JSON shape of one enumerated source; preview buffers
// are carried as base64 PNG.
type sourceView struct {
	ID          source.ID   `json:"id"`
	IsWindow    bool        `json:"is_window"`
	Rect        source.Rect `json:"rect"`
	Title       string      `json:"title"`
	ProcessPath string      `json:"process_path,omitempty"`
	IsMinimized bool        `json:"is_minimized,omitempty"`
	IsMaximized bool        `json:"is_maximized,omitempty"`
	IsPrimary   bool        `json:"is_primary,omitempty"`
	Icon        string      `json:"icon,omitempty"`
	Thumbnail   string      `json:"thumbnail,omitempty"`
}

func newSourceView(info source.Info) sourceView {
	return sourceView{
		ID:          info.ID,
		IsWindow:    info.IsWindow,
		Rect:        info.Rect,
		Title:       info.Title,
		ProcessPath: info.ProcessPath,
		IsMinimized: info.IsMinimized,
		IsMaximized: info.IsMaximized,
		IsPrimary:   info.IsPrimary,
		Icon:        encodeBufferPNG(info.Icon),
		Thumbnail:   encodeBufferPNG(info.Thumbnail),
	}
}

func encodeBufferPNG(buf *source.ImageBuffer) string {
	if buf == nil {
		return ""
	}
	var out bytes.Buffer
	if err := png.Encode(&out, buf.RGBA()); err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(out.Bytes())
}

func querySize(r *http.Request, widthKey, heightKey string) (source.Size, error) {
	size := source.Size{}
	if v := r.URL.Query().Get(widthKey); v != "" {
		w, err := strconv.Atoi(v)
		if err != nil {
			return size, fmt.Errorf("invalid %s: %q", widthKey, v)
		}
		size.Width = w
	}
	if v := r.URL.Query().Get(heightKey); v != "" {
		h, err := strconv.Atoi(v)
		if err != nil {
			return size, fmt.Errorf("invalid %s: %q", heightKey, v)
		}
		size.Height = h
	}
	return size, size.Validate()
}

func (s *Server) handleListSources(w http.ResponseWriter, r *http.Request) {
	flags, err := source.ParseFlags(r.URL.Query().Get("flags"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	iconSize, err := querySize(r, "icon_width", "icon_height")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	thumbSize, err := querySize(r, "thumb_width", "thumb_height")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sources, err := s.engine.EnumerateSources(iconSize, thumbSize, flags)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	views := make([]sourceView, 0, len(sources))
	for _, info := range sources {
		views = append(views, newSourceView(info))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(views)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "invalid source id", http.StatusBadRequest)
		return
	}
	size, err := querySize(r, "width", "height")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	grayscale := false
	if v := r.URL.Query().Get("grayscale"); v != "" {
		grayscale, err = strconv.ParseBool(v)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid grayscale: %q", v), http.StatusBadRequest)
			return
		}
	}

	buf, actual, err := s.engine.CaptureSnapshot(source.ID(id), size)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}
	if grayscale {
		buf = buf.Gray()
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Snapshot-Width", strconv.Itoa(actual.Width))
	w.Header().Set("X-Snapshot-Height", strconv.Itoa(actual.Height))
	if err := png.Encode(w, buf.RGBA()); err != nil {
		logger.WithComponent("api").Debug().Err(err).Msg("png encode failed mid-response")
	}
}

// handleStream pushes binary PNG frames over a websocket at the configured
// frame rate until the client disconnects, the source disappears, or a
// non-transient error occurs.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	log := logger.WithComponent("api")

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "invalid source id", http.StatusBadRequest)
		return
	}
	size, err := querySize(r, "width", "height")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	// Read pump: the client sends nothing meaningful, but reading is the
	// only way to notice a disconnect while frames are failing and nothing
	// is being written to the socket.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	fps := s.configMgr.Get().StreamFPS
	if fps <= 0 {
		fps = 10
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-done:
			log.Debug().Int64("id", id).Msg("stream client disconnected")
			return
		case <-ticker.C:
			buf, _, err := s.engine.CaptureSnapshot(source.ID(id), size)
			if err != nil {
				if errors.Is(err, source.ErrCaptureFailed) {
					// Transient; the next tick may succeed.
					log.Debug().Err(err).Int64("id", id).Msg("stream frame capture failed")
					continue
				}
				log.Debug().Err(err).Int64("id", id).Msg("stream ended")
				return
			}

			var frame bytes.Buffer
			if err := png.Encode(&frame, buf.RGBA()); err != nil {
				continue
			}
			if err := conn.WriteMessage(websocket.BinaryMessage, frame.Bytes()); err != nil {
				return
			}
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}
