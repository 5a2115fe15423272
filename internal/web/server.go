package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/KartheekReddy100/PDF-Kompressor/internal/config"
	"github.com/KartheekReddy100/PDF-Kompressor/internal/engine"
	"github.com/KartheekReddy100/PDF-Kompressor/internal/fsutil"
	"github.com/KartheekReddy100/PDF-Kompressor/internal/gs"
)

// Server exposes the compression workflow over HTTP so a browser can act as
// the interactive layer. Batches run on a background goroutine and results
// stream to connected websocket clients as each file completes.
type Server struct {
	cfg        *config.Config
	log        *logrus.Logger
	router     *mux.Router
	httpServer *http.Server
	wsUpgrader websocket.Upgrader
	wsClients  map[*websocket.Conn]bool
	wsMutex    sync.RWMutex

	// Current operation state
	operationMutex sync.RWMutex
	isRunning      bool
	lastResults    []resultView
	lastSummary    string
}

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type CompressRequest struct {
	Input   string `json:"input"`
	Output  string `json:"output,omitempty"`
	Engine  string `json:"engine,omitempty"`
	Quality string `json:"quality,omitempty"`
}

type resultView struct {
	Source         string  `json:"source"`
	Output         string  `json:"output,omitempty"`
	Engine         string  `json:"engine"`
	OriginalSize   string  `json:"original_size"`
	CompressedSize string  `json:"compressed_size,omitempty"`
	SavedPercent   float64 `json:"saved_percent"`
	Success        bool    `json:"success"`
	Error          string  `json:"error,omitempty"`
}

type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func NewServer(cfg *config.Config, log *logrus.Logger) *Server {
	s := &Server{
		cfg:       cfg,
		log:       log,
		router:    mux.NewRouter(),
		wsClients: make(map[*websocket.Conn]bool),
		wsUpgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // local tool, no cross-origin concerns
			},
		},
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", s.handleStatus).Methods("GET")
	api.HandleFunc("/compress", s.handleCompress).Methods("POST")
	api.HandleFunc("/results", s.handleResults).Methods("GET")
	api.HandleFunc("/locate", s.handleLocate).Methods("GET")

	s.router.HandleFunc("/ws", s.handleWebSocket)
	s.router.HandleFunc("/", s.handleIndex).Methods("GET")
}

func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	s.log.Infof("Starting web server on http://localhost%s", addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexPage))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.operationMutex.RLock()
	running := s.isRunning
	summary := s.lastSummary
	s.operationMutex.RUnlock()

	s.writeJSON(w, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"running": running,
			"summary": summary,
		},
	})
}

func (s *Server) handleLocate(w http.ResponseWriter, r *http.Request) {
	finder := gs.NewFinder(s.cfg.Ghostscript.Binary, s.cfg.Ghostscript.ExtraDirs)
	path, ok := finder.Locate()

	data := map[string]interface{}{"found": ok}
	if ok {
		data["path"] = path
		if v, err := gs.Version(r.Context(), path); err == nil {
			data["version"] = v
		}
	}
	s.writeJSON(w, APIResponse{Success: true, Data: data})
}

func (s *Server) handleCompress(w http.ResponseWriter, r *http.Request) {
	var req CompressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Input == "" {
		s.writeError(w, "Input path is required", http.StatusBadRequest)
		return
	}

	// Check if already running
	s.operationMutex.RLock()
	if s.isRunning {
		s.operationMutex.RUnlock()
		s.writeError(w, "Operation already in progress", http.StatusConflict)
		return
	}
	s.operationMutex.RUnlock()

	choice, err := engine.ParseChoice(orDefault(req.Engine, s.cfg.Engine))
	if err != nil {
		s.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	quality, err := engine.ParseQuality(orDefault(req.Quality, s.cfg.Quality))
	if err != nil {
		s.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	jobs, err := engine.CollectJobs(req.Input, req.Output, s.cfg.OutputSuffix, quality, choice)
	if err != nil {
		s.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	go s.runCompressAsync(jobs)

	s.writeJSON(w, APIResponse{
		Success: true,
		Message: fmt.Sprintf("Compression started (%d files)", len(jobs)),
	})
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	s.operationMutex.RLock()
	results := s.lastResults
	summary := s.lastSummary
	s.operationMutex.RUnlock()

	s.writeJSON(w, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"results": results,
			"summary": summary,
		},
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Errorf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	s.wsMutex.Lock()
	s.wsClients[conn] = true
	s.wsMutex.Unlock()

	s.log.Debug("WebSocket client connected")

	defer func() {
		s.wsMutex.Lock()
		delete(s.wsClients, conn)
		s.wsMutex.Unlock()
		s.log.Debug("WebSocket client disconnected")
	}()

	// Keep connection alive
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// runCompressAsync executes a batch off the request goroutine so the
// interface stays responsive while work proceeds.
func (s *Server) runCompressAsync(jobs []engine.Job) {
	s.operationMutex.Lock()
	s.isRunning = true
	s.lastResults = nil
	s.lastSummary = ""
	s.operationMutex.Unlock()

	s.broadcastWSMessage("batch_started", map[string]interface{}{
		"total": len(jobs),
	})

	finder := gs.NewFinder(s.cfg.Ghostscript.Binary, s.cfg.Ghostscript.ExtraDirs)
	runner := engine.NewRunner(
		finder,
		&engine.ExecRunner{Timeout: s.cfg.GhostscriptTimeout()},
		engine.NewPDFCPUFallback(),
		s.log,
	)
	batch := engine.NewBatch(runner, s.log, func(res engine.Result) {
		view := toResultView(res)
		s.operationMutex.Lock()
		s.lastResults = append(s.lastResults, view)
		s.operationMutex.Unlock()
		s.broadcastWSMessage("job_result", view)
	})

	results := batch.Run(context.Background(), jobs)
	summary := engine.Summarize(results)

	s.operationMutex.Lock()
	s.isRunning = false
	s.lastSummary = summary.String()
	s.operationMutex.Unlock()

	s.broadcastWSMessage("batch_completed", map[string]interface{}{
		"summary":   summary.String(),
		"succeeded": summary.Succeeded,
		"failed":    summary.Failed,
	})
}

func toResultView(res engine.Result) resultView {
	view := resultView{
		Source:       res.Job.Source,
		Engine:       string(res.Engine),
		OriginalSize: fsutil.HumanSize(res.OriginalSize),
		Success:      res.Succeeded(),
	}
	if res.Succeeded() {
		view.Output = res.OutputPath
		view.CompressedSize = fsutil.HumanSize(res.CompressedSize)
		view.SavedPercent = res.SavedPercent()
	} else {
		view.Error = res.Err.Error()
	}
	return view
}

func (s *Server) broadcastWSMessage(messageType string, data interface{}) {
	message := WSMessage{Type: messageType, Data: data}

	s.wsMutex.RLock()
	defer s.wsMutex.RUnlock()

	for conn := range s.wsClients {
		if err := conn.WriteJSON(message); err != nil {
			s.log.Debugf("WebSocket write failed: %v", err)
		}
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Errorf("Failed to encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(APIResponse{Success: false, Error: message})
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
