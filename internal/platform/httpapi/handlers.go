package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/snake-puzzle/internal/levels"
	"github.com/vovakirdan/snake-puzzle/internal/puzzle"
)

const entryKey = "entry"

type createRequest struct {
	LevelID string `json:"level_id"`
	Player  string `json:"player"`
}

type moveRequest struct {
	Dir string `json:"dir" binding:"required"`
	// Settle ticks the session until it accepts input again, wins, or its
	// death has been recorded.
	Settle bool `json:"settle"`
}

type tickRequest struct {
	Ticks int `json:"ticks"`
}

func (s *Server) listLevels(c *gin.Context) {
	s.mu.Lock()
	out := make([]LevelInfo, len(s.pack))
	for i, l := range s.pack {
		out[i] = levelInfo(l)
	}
	s.mu.Unlock()
	c.JSON(http.StatusOK, out)
}

func (s *Server) createSession(c *gin.Context) {
	var req createRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if req.Player == "" {
		req.Player = "http"
	}

	lvl, err := s.findLevel(req.LevelID)
	if err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	e, err := s.newEntry(lvl, req.Player)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	c.JSON(http.StatusCreated, e.view())
}

// loadSession resolves :id and stores the entry in the context.
func (s *Server) loadSession(c *gin.Context) {
	e, ok := s.lookup(c.Param("id"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.Set(entryKey, e)
	c.Next()
}

func entryOf(c *gin.Context) *entry {
	return c.MustGet(entryKey).(*entry)
}

func (s *Server) getSession(c *gin.Context) {
	e := entryOf(c)
	e.mu.Lock()
	defer e.mu.Unlock()
	c.JSON(http.StatusOK, e.view())
}

func (s *Server) deleteSession(c *gin.Context) {
	e := entryOf(c)
	e.mu.Lock()
	e.abandon()
	e.mu.Unlock()
	s.remove(e.id)
	c.Status(http.StatusNoContent)
}

func (s *Server) move(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d, ok := puzzle.ParseDir(req.Dir)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown direction " + req.Dir})
		return
	}

	e := entryOf(c)
	e.mu.Lock()
	defer e.mu.Unlock()

	res := e.session.Move(d)
	if req.Settle && res.Accepted() {
		n := e.session.Settle(MaxTicksPerRequest)
		// run out the restart delay so the death is recorded
		for ; n < MaxTicksPerRequest && e.session.State() == puzzle.StateDead && e.outcome == ""; n++ {
			e.session.Tick()
		}
	}

	resp := MoveResponse{
		Accepted: res.Accepted(),
		Outcome:  res.Outcome.String(),
		Session:  e.view(),
	}
	if res.Effect != puzzle.EffectNone {
		resp.Effect = res.Effect.String()
	}
	if res.Reason != nil {
		resp.Reason = res.Reason.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) undo(c *gin.Context) {
	e := entryOf(c)
	e.mu.Lock()
	defer e.mu.Unlock()

	undone := e.session.Undo()
	c.JSON(http.StatusOK, UndoResponse{Undone: undone, Session: e.view()})
}

func (s *Server) tick(c *gin.Context) {
	req := tickRequest{Ticks: 1}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if req.Ticks < 1 || req.Ticks > MaxTicksPerRequest {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticks out of range"})
		return
	}

	e := entryOf(c)
	e.mu.Lock()
	defer e.mu.Unlock()
	for range req.Ticks {
		e.session.Tick()
	}
	c.JSON(http.StatusOK, e.view())
}

func (s *Server) restart(c *gin.Context) {
	e := entryOf(c)
	e.mu.Lock()
	defer e.mu.Unlock()

	e.abandon()
	if err := e.session.Restart(); err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	e.outcome = ""
	c.JSON(http.StatusOK, e.view())
}

func statusOf(err error) int {
	switch {
	case levels.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, puzzle.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
