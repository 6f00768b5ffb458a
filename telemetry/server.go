package telemetry

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

const writeTimeout = 5 * time.Second

// Options configures the telemetry server
type Options struct {
	Addr         string
	StreamHz     float64  // max snapshots per second per stream client
	AllowOrigins []string // empty allows any origin
}

// Server exposes snapshots and metrics over HTTP
type Server struct {
	pub      *Publisher
	gatherer prometheus.Gatherer
	opts     Options
	router   *gin.Engine
	upgrader websocket.Upgrader
	srv      *http.Server

	// cancels open streams on Shutdown; hijacked connections outlive http.Server.Shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer builds the router; nothing listens until Start
func NewServer(pub *Publisher, gatherer prometheus.Gatherer, opts Options) *Server {
	if opts.StreamHz <= 0 {
		opts.StreamHz = 10
	}
	gin.SetMode(gin.ReleaseMode)

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		pub:      pub,
		gatherer: gatherer,
		opts:     opts,
		upgrader: websocket.Upgrader{
			// Origin policy is enforced by CORS config instead
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		ctx:    ctx,
		cancel: cancel,
	}

	r := gin.New()
	r.Use(gin.LoggerWithWriter(log.Writer()), gin.Recovery())

	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}
	if len(opts.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = opts.AllowOrigins
	}
	r.Use(cors.New(corsCfg))

	api := r.Group("/api")
	{
		api.GET("/bodies", s.getBodies)
		api.GET("/bodies/:name", s.getBody)
		api.GET("/state", s.getState)
		api.GET("/stream", s.stream)
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	s.router = r
	return s
}

// Handler returns the router, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on opts.Addr and serves in the background
// Returns the bound address, useful with port 0
func (s *Server) Start() (net.Addr, error) {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return nil, err
	}
	s.srv = &http.Server{Handler: s.router, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("telemetry: serve: %v", err)
		}
	}()
	log.Printf("telemetry: listening on %s", ln.Addr())
	return ln.Addr(), nil
}

// Shutdown stops the listener and closes open streams
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func (s *Server) latest(c *gin.Context) (*Snapshot, bool) {
	snap := s.pub.Latest()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no frame yet"})
		return nil, false
	}
	return snap, true
}

func (s *Server) getBodies(c *gin.Context) {
	snap, ok := s.latest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  snap.Bodies,
		"count": len(snap.Bodies),
	})
}

func (s *Server) getBody(c *gin.Context) {
	snap, ok := s.latest(c)
	if !ok {
		return
	}
	name := c.Param("name")
	for _, b := range snap.Bodies {
		if strings.EqualFold(b.Name, name) {
			c.JSON(http.StatusOK, gin.H{"data": b})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "body not found"})
}

func (s *Server) getState(c *gin.Context) {
	snap, ok := s.latest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": snap.Summary()})
}

// stream pushes full snapshots over a websocket, at most StreamHz per second
// and only when a new frame has been published
func (s *Server) stream(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("telemetry: upgrade: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	// Reader detects client close; incoming messages are ignored
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	limiter := rate.NewLimiter(rate.Limit(s.opts.StreamHz), 1)
	var lastFrame uint64
	sent := false

	for {
		if err := limiter.Wait(ctx); err != nil {
			return
		}
		snap := s.pub.Latest()
		if snap == nil || (sent && snap.Frame == lastFrame) {
			continue
		}

		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(snap); err != nil {
			return
		}
		lastFrame, sent = snap.Frame, true
	}
}
