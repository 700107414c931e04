// Package mockapi serves a small in-memory stand-in for the contact service.
// It answers the same GET/PUT/DELETE shapes as the public placeholder API and
// can be told to fail the next request, which the client tests rely on.
package mockapi

import (
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rhystmorgan/contactsTUI/internal/remote"
)

const BasePath = "/users"

type Server struct {
	mu       sync.Mutex
	users    map[int]remote.ContactRecord
	failures map[string]int
	logger   *zap.Logger
}

func NewServer(seed []remote.ContactRecord, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		users:    make(map[int]remote.ContactRecord, len(seed)),
		failures: make(map[string]int),
		logger:   logger.Named("mockapi"),
	}
	for _, user := range seed {
		s.users[user.ID] = user
	}
	return s
}

// FailNext makes the next request with the given method answer with status.
func (s *Server) FailNext(method string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = status
}

// Users returns the stored records ordered by id.
func (s *Server) Users() []remote.ContactRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked()
}

func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests(), s.injectFailures())

	users := r.Group(BasePath)
	users.GET("", s.List)
	users.GET("/:id", s.Get)
	users.PUT("/:id", s.Replace)
	users.DELETE("/:id", s.Delete)

	return r
}

func (s *Server) List(c *gin.Context) {
	s.mu.Lock()
	users := s.sortedLocked()
	s.mu.Unlock()

	c.JSON(http.StatusOK, users)
}

func (s *Server) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	user, exists := s.users[id]
	s.mu.Unlock()

	if !exists {
		c.JSON(http.StatusNotFound, gin.H{})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) Replace(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req remote.ContactRecord
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	req.ID = id

	s.mu.Lock()
	s.users[id] = req
	s.mu.Unlock()

	c.JSON(http.StatusOK, req)
}

func (s *Server) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	delete(s.users, id)
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{})
}

func (s *Server) injectFailures() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		status, fail := s.failures[c.Request.Method]
		if fail {
			delete(s.failures, c.Request.Method)
		}
		s.mu.Unlock()

		if fail {
			c.AbortWithStatusJSON(status, gin.H{"error": http.StatusText(status)})
			return
		}
		c.Next()
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

func (s *Server) sortedLocked() []remote.ContactRecord {
	out := make([]remote.ContactRecord, 0, len(s.users))
	for _, user := range s.users {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}
