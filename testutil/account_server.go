package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/coffeemon-seed/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AccountServer is an in-process stand-in for the application's account
// endpoints: GET /health and POST /users. Accounts are written straight into
// db with a bcrypt password hash, as the real service does.
type AccountServer struct {
	*httptest.Server

	db       *gorm.DB
	down     atomic.Bool
	mu       sync.Mutex
	created  []string
	posts    int
	requests []Request
}

type createUserRequest struct {
	Username string `json:"username" binding:"required,min=2,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=64"`
}

// NewAccountServer starts the fake service and closes it on test cleanup.
func NewAccountServer(t *testing.T, db *gorm.DB) *AccountServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &AccountServer{db: db}
	r := gin.New()
	r.Use(s.traceRequests(), recoverJSON())
	r.GET("/health", s.health)
	r.POST("/users", s.createUser)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// SetDown makes /health answer 503 while down is true.
func (s *AccountServer) SetDown(down bool) { s.down.Store(down) }

// Created returns the emails created so far, in order.
func (s *AccountServer) Created() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.created...)
}

// Posts returns how many POST /users requests were received.
func (s *AccountServer) Posts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.posts
}

// Requests returns every handled request, in order.
func (s *AccountServer) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *AccountServer) health(c *gin.Context) {
	if s.down.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *AccountServer) createUser(c *gin.Context) {
	s.mu.Lock()
	s.posts++
	s.mu.Unlock()

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"statusCode": 400, "message": err.Error(), "error": "Bad Request"})
		return
	}

	var n int64
	if err := s.db.Model(&model.User{}).Where("email = ?", req.Email).Count(&n).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"statusCode": 500, "message": "internal error"})
		return
	}
	if n > 0 {
		c.JSON(http.StatusConflict, gin.H{"statusCode": 409, "message": "Email already registered", "error": "Conflict"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"statusCode": 500, "message": "internal error"})
		return
	}
	u := model.User{Username: req.Username, Email: req.Email, Password: string(hash)}
	if err := s.db.Create(&u).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"statusCode": 500, "message": "registration failed"})
		return
	}

	s.mu.Lock()
	s.created = append(s.created, req.Email)
	s.mu.Unlock()
	c.JSON(http.StatusCreated, gin.H{"id": u.ID, "username": u.Username, "email": u.Email, "role": model.RoleUser})
}
