package spectator

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Server exposes the hub over HTTP.
type Server struct {
	hub      *Hub
	upgrader websocket.Upgrader
	http     *http.Server
}

func NewServer(hub *Hub) *Server {
	return &Server{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// read-only feed, any origin may watch
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Router builds the gin engine:
//
//	GET /api/status     latest snapshot as JSON
//	GET /api/moves      draw history as JSON
//	GET /api/frame.png  last rendered frame
//	GET /ws             status pushed on every change
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.GET("/status", s.status)
	api.GET("/moves", s.moves)
	api.GET("/frame.png", s.frame)
	r.GET("/ws", s.serveWS)
	return r
}

func (s *Server) status(c *gin.Context) {
	c.JSON(http.StatusOK, s.hub.Latest())
}

func (s *Server) moves(c *gin.Context) {
	snap := s.hub.Latest()
	c.JSON(http.StatusOK, gin.H{"revision": snap.Revision, "moves": snap.Moves})
}

func (s *Server) frame(c *gin.Context) {
	snap := s.hub.Latest()
	if len(snap.Frame) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no frame rendered yet"})
		return
	}
	c.Data(http.StatusOK, "image/png", snap.Frame)
}

func (s *Server) serveWS(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.hub.log.WithError(err).Error("Failed to upgrade connection")
		return
	}
	client := newClient(s.hub, conn)
	s.hub.register <- client
	client.Run()
}

// Start listens on addr in the background. Listener errors other than a
// clean shutdown are reported on the returned channel.
func (s *Server) Start(addr string) <-chan error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.hub.log.WithField("addr", addr).Info("Spectator feed listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()
	return errc
}

// Shutdown stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
