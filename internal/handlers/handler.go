package handlers

import (
	"net/http"

	"blogapi/internal/logger"
	"blogapi/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerPostRoutes(router)
	h.registerActivityRoutes(router)

	// Live post feed (HTTP upgrade) — same port
	router.GET("/ws/posts", h.wsPostFeed)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
	}
}

// Post reads are public; mutations carry the identity middleware.
func (h *Handler) registerPostRoutes(r *gin.Engine) {
	post := r.Group("/api/post")
	{
		post.GET("/", h.listPosts)
		post.GET("/:id", h.getPost)

		post.POST("/", h.identityMiddleware, h.createPost)
		post.PUT("/:id", h.identityMiddleware, h.updatePost)
		post.DELETE("/:id", h.identityMiddleware, h.deletePost)
	}
}

func (h *Handler) registerActivityRoutes(r *gin.Engine) {
	r.GET("/api/activity", h.identityMiddleware, h.getActivity)
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
