// Package server implements the configuration protocol: a WebSocket endpoint
// where every text frame is one fmsynth.ClientRequest.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/patchwire/fmsynth"
	"github.com/patchwire/fmsynth/version"
)

// DefaultAddr is where the patch editor expects to find the synth.
const DefaultAddr = "127.0.0.1:8080"

const (
	AckReply       = "successfully received request"
	MalformedReply = "malformed request"
)

// Server forwards parsed requests to the coordinating loop. Each connection
// is served on its own goroutine and only blocks that goroutine.
type Server struct {
	requests chan<- fmsynth.ClientRequest
	router   *mux.Router
	upgrader websocket.Upgrader

	// WaveformTimeout is how long a connection waits for the answer to a
	// waveform request before giving up on it.
	WaveformTimeout time.Duration
}

func New(requests chan<- fmsynth.ClientRequest) *Server {
	s := &Server{
		requests: requests,
		router:   mux.NewRouter(),
		upgrader: websocket.Upgrader{
			// the editor is served from wherever the user opened it
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		WaveformTimeout: time.Second,
	}
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/", s.handleWebsocket)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown: %v", err)
		}
	}()
	log.Printf("listening for patches on ws://%s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, "ok %s\n", version.VersionOrHash)
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	if err := s.serve(r.Context(), conn); err != nil {
		log.Printf("connection %v closed: %v", conn.RemoteAddr(), err)
	}
}

func (s *Server) serve(ctx context.Context, conn *websocket.Conn) error {
	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}
		if kind != websocket.TextMessage {
			continue
		}
		req, err := fmsynth.ParseClientRequest(data)
		if err != nil {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(err.Error())); err != nil {
				return err
			}
			continue
		}
		if req.Kind == fmsynth.RequestWaveform {
			req.Reply = make(chan fmsynth.Waveform, 1)
		}
		select {
		case s.requests <- req:
		case <-ctx.Done():
			return ctx.Err()
		}
		if err := conn.WriteMessage(websocket.TextMessage, []byte(AckReply)); err != nil {
			return err
		}
		if req.Reply == nil {
			continue
		}
		select {
		case w := <-req.Reply:
			if err := conn.WriteJSON(w); err != nil {
				return err
			}
		case <-time.After(s.WaveformTimeout):
			log.Printf("no waveform within %v", s.WaveformTimeout)
		}
	}
}
