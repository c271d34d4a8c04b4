// Package fakeapi is an in-memory stand-in for the remote fitness-social API.
// Tests point apiclient at it through httptest. Bodies use the backend's
// field names, e.g. mealPlanId and statusId.
package fakeapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"alcyxob/fitsocial/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type failure struct {
	status  int
	message string
}

type account struct {
	user         domain.User
	passwordHash []byte
}

// Server holds the remote state and the failure/latency hooks.
type Server struct {
	mu sync.Mutex

	accounts map[string]*account // by email
	users    map[string]*account // by id
	posts    []domain.Post
	shares   []domain.SharedPost
	statuses []domain.WorkoutStatus
	plans    []domain.WorkoutPlan
	meals    []domain.MealPlan

	// Ambient credentials for GET /api/user, empty means 401.
	currentUserID string

	calls    map[string]int
	failures map[string]failure
	gates    map[string]chan struct{}
	blanks   map[string]int

	router *gin.Engine
}

// New creates an empty fake API.
func New() *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{
		accounts: map[string]*account{},
		users:    map[string]*account{},
		calls:    map[string]int{},
		failures: map[string]failure{},
		gates:    map[string]chan struct{}{},
		blanks:   map[string]int{},
	}
	s.router = gin.New()
	s.router.Use(s.hooks())
	s.routes()
	return s
}

// Handler exposes the router.
func (s *Server) Handler() http.Handler { return s.router }

// Start serves the fake API on a local listener. Close the returned server when done.
func (s *Server) Start() *httptest.Server {
	return httptest.NewServer(s.router)
}

func routeKey(method, route string) string { return method + " " + route }

// Calls returns how many requests reached method+route (gin route pattern,
// e.g. "/posts/:id").
func (s *Server) Calls(method, route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[routeKey(method, route)]
}

// Fail makes every request to method+route answer with status and message.
func (s *Server) Fail(method, route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[routeKey(method, route)] = failure{status: status, message: message}
}

// Recover removes an injected failure.
func (s *Server) Recover(method, route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, routeKey(method, route))
}

// Blank makes method+route answer status with an empty body.
func (s *Server) Blank(method, route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blanks[routeKey(method, route)] = status
}

// Hold blocks requests to method+route until the returned release func is called.
func (s *Server) Hold(method, route string) (release func()) {
	gate := make(chan struct{})
	s.mu.Lock()
	s.gates[routeKey(method, route)] = gate
	s.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.gates, routeKey(method, route))
			s.mu.Unlock()
			close(gate)
		})
	}
}

// SignIn sets the ambient credentials used by GET /api/user.
func (s *Server) SignIn(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentUserID = userID
}

func (s *Server) hooks() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := routeKey(c.Request.Method, c.FullPath())
		s.mu.Lock()
		s.calls[key]++
		gate := s.gates[key]
		f, failing := s.failures[key]
		blank, blanking := s.blanks[key]
		s.mu.Unlock()

		if gate != nil {
			select {
			case <-gate:
			case <-c.Request.Context().Done():
				c.Abort()
				return
			}
		}
		if failing {
			abortWithError(c, f.status, f.message)
			return
		}
		if blanking {
			c.AbortWithStatus(blank)
			return
		}
		c.Next()
	}
}

func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

func newID() string { return uuid.NewString() }

func notFound(c *gin.Context, what string) {
	abortWithError(c, http.StatusNotFound, fmt.Sprintf("%s not found", what))
}
