package server

import (
	"context"
	"io/fs"
	"mime"
	"net/http"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"typedterm/internal/cache"
	"typedterm/internal/highlight"
	"typedterm/internal/scenario"
	"typedterm/internal/system"
	"typedterm/internal/typing"
	appver "typedterm/internal/version"
	webembed "typedterm/internal/webui/embed"
)

type Server struct {
	Addr string
	// Cache memoises highlighted HTML. Nil means an in-memory LRU.
	Cache cache.Store
	// Scenarios playable through the stream endpoint. Nil means the built-ins.
	Scenarios []scenario.Scenario
	// Typing holds the default stream options; query parameters override them.
	Typing typing.Options
	// Clock drives stream timers. Nil means the real clock.
	Clock typing.Clock

	hl      *highlight.Highlighter
	sched   *typing.Scheduler
	streams atomic.Int64
}

func (s *Server) init() {
	if s.Cache == nil {
		s.Cache = cache.NewMemory(0)
	}
	if s.Scenarios == nil {
		s.Scenarios = scenario.Builtins()
	}
	s.Typing = s.Typing.Normalize()
	s.hl = highlight.New(highlight.WithCache(s.Cache))
	s.sched = typing.NewScheduler(s.Clock)
}

// Handler builds the gin engine.
func (s *Server) Handler() http.Handler {
	s.init()
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	s.mountAPIGin(r)
	mountEmbeddedUIGin(r)
	return r
}

func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.Addr, Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	system.Logger.Info("webui server listening", "addr", s.Addr)
	return srv.ListenAndServe()
}

// ActiveStreams reports how many terminal streams are open.
func (s *Server) ActiveStreams() int64 { return s.streams.Load() }

// OpenBrowser tries to open a URL in the system browser.
func OpenBrowser(url string) error {
	var cmd string
	var args []string
	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "windows":
		cmd = "rundll32"
		args = []string{"url.dll,FileProtocolHandler", url}
	default:
		cmd = "xdg-open"
		args = []string{url}
	}
	// Start only: the browser outlives the server.
	return exec.Command(cmd, args...).Start()
}

func (s *Server) mountAPIGin(r *gin.Engine) {
	api := r.Group("/api")
	api.GET("/health", gin.WrapF(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}))
	api.GET("/version", gin.WrapF(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"version": appver.AppVersion})
	}))

	api.POST("/tokenize", tokenizeHandler)
	api.POST("/format", formatHandler)
	api.POST("/highlight", s.highlightHandler)
	api.GET("/scenarios", s.scenariosHandler)

	// Terminal animation (Server-Sent Events)
	api.GET("/terminal/stream", s.streamHandler)
}

// mountEmbeddedUIGin serves the embedded page at all non-/api GET routes,
// falling back to index.html.
func mountEmbeddedUIGin(r *gin.Engine) {
	dist, err := fs.Sub(webembed.DistFS, "dist")
	if err != nil {
		r.NoRoute(func(c *gin.Context) {
			c.String(http.StatusNotFound, "webui assets not found")
		})
		return
	}
	index, _ := fs.ReadFile(dist, "index.html")
	httpFS := http.FS(dist)
	r.NoRoute(func(c *gin.Context) {
		// Do not hijack API routes
		if strings.HasPrefix(c.Request.URL.Path, "/api/") || c.Request.URL.Path == "/api" {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Status(http.StatusNotFound)
			return
		}
		// index.html is written directly; http.FileServer would redirect it to "./"
		p := strings.TrimPrefix(c.Request.URL.Path, "/")
		if p != "" && p != "index.html" {
			if st, err := fs.Stat(dist, p); err == nil && !st.IsDir() {
				if ct := mime.TypeByExtension(filepath.Ext(p)); ct != "" {
					c.Header("Content-Type", ct)
				}
				c.FileFromFS(p, httpFS)
				return
			}
		}
		if index == nil {
			c.String(http.StatusNotFound, "index.html not found in embedded dist.")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	})
}
