// Package httpapi exposes headless puzzle sessions over HTTP with gin.
// Clients drive time explicitly through the tick endpoint.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/snake-puzzle/internal/config"
	"github.com/vovakirdan/snake-puzzle/internal/core"
	"github.com/vovakirdan/snake-puzzle/internal/levels"
	"github.com/vovakirdan/snake-puzzle/internal/puzzle"
	"github.com/vovakirdan/snake-puzzle/internal/storage"
)

// MaxTicksPerRequest bounds the tick endpoint.
const MaxTicksPerRequest = 10000

// Options configures a Server.
type Options struct {
	Config config.PuzzleConfig
	Pack   []levels.Level
	Store  *storage.Store // optional run history
	Logger *log.Logger
}

// Server owns the live sessions and the gin engine routing to them.
type Server struct {
	cfg    config.PuzzleConfig
	store  *storage.Store
	logger *log.Logger
	engine *gin.Engine

	mu       sync.Mutex
	pack     []levels.Level
	sessions map[string]*entry
	nextID   int
}

// entry is one headless session and the level controller behind it.
type entry struct {
	mu      sync.Mutex
	id      string
	player  string
	level   levels.Level
	session *puzzle.Session
	outcome core.Outcome // set once the attempt ended
	store   *storage.Store
	logger  *log.Logger
}

// New creates a server and registers its routes.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	s := &Server{
		cfg:      opts.Config,
		store:    opts.Store,
		logger:   opts.Logger,
		pack:     slices.Clone(opts.Pack),
		sessions: make(map[string]*entry),
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger)
	engine.GET("/levels", s.listLevels)
	engine.POST("/sessions", s.createSession)

	sessions := engine.Group("/sessions/:id", s.loadSession)
	sessions.GET("", s.getSession)
	sessions.DELETE("", s.deleteSession)
	sessions.POST("/move", s.move)
	sessions.POST("/undo", s.undo)
	sessions.POST("/tick", s.tick)
	sessions.POST("/restart", s.restart)

	s.engine = engine
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Serve listens on addr until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// UpdateLevel replaces or adds a level for sessions created afterwards.
func (s *Server) UpdateLevel(l levels.Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.pack {
		if s.pack[i].ID == l.ID {
			s.pack[i] = l
			return
		}
	}
	s.pack = append(s.pack, l)
}

func (s *Server) findLevel(id string) (levels.Level, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" && len(s.pack) > 0 {
		return s.pack[0], nil
	}
	return levels.Find(s.pack, id)
}

func (s *Server) newEntry(l levels.Level, player string) (*entry, error) {
	e := &entry{player: player, level: l, store: s.store}

	s.mu.Lock()
	s.nextID++
	e.id = strconv.Itoa(s.nextID)
	s.mu.Unlock()

	e.logger = s.logger.With("session", e.id)
	e.session = puzzle.NewSession(
		puzzle.WithConfig(s.cfg.Session()),
		puzzle.WithLogger(e.logger),
		puzzle.WithController(e),
	)
	if err := e.session.Reload(l.Level); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[e.id] = e
	s.mu.Unlock()
	return e, nil
}

func (s *Server) lookup(id string) (*entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	return e, ok
}

func (s *Server) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// OnWin records the finished attempt.
func (e *entry) OnWin() {
	e.finish(core.OutcomeWin)
}

// OnDeath records the finished attempt. The session stays dead until
// the client restarts it.
func (e *entry) OnDeath() {
	if e.session.Face() == puzzle.FaceFruitFell {
		e.finish(core.OutcomeFruitFell)
		return
	}
	e.finish(core.OutcomeDeath)
}

func (e *entry) finish(outcome core.Outcome) {
	if e.outcome != "" {
		return
	}
	e.outcome = outcome
	e.logger.Info("attempt finished", "level", e.level.ID, "outcome", outcome, "moves", e.session.Moves())
	if e.store == nil {
		return
	}
	_, err := e.store.SaveRun(e.player, core.RunResult{
		LevelID: e.level.ID,
		Outcome: outcome,
		Moves:   e.session.Moves(),
		Undos:   e.session.Undos(),
		Ticks:   int(e.session.Ticks()),
	})
	if err != nil {
		e.logger.Warn("could not save run", "error", err)
	}
}

// abandon records an unfinished attempt that made progress.
func (e *entry) abandon() {
	switch {
	case e.outcome != "":
	case e.session.State() == puzzle.StateDead:
		e.OnDeath()
	case e.session.Moves() > 0:
		e.finish(core.OutcomeAbandon)
	}
}

// requestLogger logs each request with charm log.
func (s *Server) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logger.Debug("request",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
		"latency", time.Since(start),
	)
}
