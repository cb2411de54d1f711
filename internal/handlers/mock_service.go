package handlers

import (
	"context"
	"net/http"

	"blogapi/internal/models"
	"blogapi/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerUser models.User
	registerErr  error
	loginToken   string
	loginErr     error
	parseClaims  *service.TokenClaims
	parseErr     error

	lastRegister   service.RegisterInput
	lastLoginUser  string
	lastLoginPass  string
	lastParseToken string
}

func (m *mockAuth) Register(ctx context.Context, in service.RegisterInput) (models.User, error) {
	m.lastRegister = in
	return m.registerUser, m.registerErr
}
func (m *mockAuth) Login(ctx context.Context, username, password string) (string, error) {
	m.lastLoginUser = username
	m.lastLoginPass = password
	return m.loginToken, m.loginErr
}
func (m *mockAuth) ParseToken(token string) (*service.TokenClaims, error) {
	m.lastParseToken = token
	return m.parseClaims, m.parseErr
}

type mockBlog struct {
	listResp   []models.Post
	listErr    error
	getResp    models.Post
	getErr     error
	createResp models.Post
	createErr  error
	updateResp models.Post
	updateErr  error
	deleteErr  error

	lastCreateAuthor  int
	lastCreateTitle   string
	lastCreateContent string
	lastUpdateID      int
	lastUpdateCaller  int
	lastUpdatePatch   service.PostPatch
	lastDeleteID      int
	lastDeleteCaller  int
}

func (m *mockBlog) ListPosts(ctx context.Context) ([]models.Post, error) {
	return m.listResp, m.listErr
}
func (m *mockBlog) GetPost(ctx context.Context, id int) (models.Post, error) {
	return m.getResp, m.getErr
}
func (m *mockBlog) CreatePost(ctx context.Context, authorID int, title, content string) (models.Post, error) {
	m.lastCreateAuthor = authorID
	m.lastCreateTitle = title
	m.lastCreateContent = content
	return m.createResp, m.createErr
}
func (m *mockBlog) UpdatePost(ctx context.Context, id, callerID int, patch service.PostPatch) (models.Post, error) {
	m.lastUpdateID = id
	m.lastUpdateCaller = callerID
	m.lastUpdatePatch = patch
	return m.updateResp, m.updateErr
}
func (m *mockBlog) DeletePost(ctx context.Context, id, callerID int) error {
	m.lastDeleteID = id
	m.lastDeleteCaller = callerID
	return m.deleteErr
}

type mockActivityLog struct {
	resp       []models.ActivityEvent
	err        error
	lastFilter service.ActivityFilter
}

func (m *mockActivityLog) List(ctx context.Context, f service.ActivityFilter) ([]models.ActivityEvent, error) {
	m.lastFilter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
