// Package devapi is a small in-memory storefront backend for local
// development. It serves the same routes the client calls.
package devapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Config struct {
	JWTSecret string
	JWTExpiry time.Duration
	// AllowOrigins enables CORS for browser front ends; empty disables it.
	AllowOrigins []string
}

type Server struct {
	cfg      Config
	users    *Directory
	products []product
	log      *zap.Logger
}

func NewServer(cfg Config, users *Directory, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.JWTExpiry <= 0 {
		cfg.JWTExpiry = 24 * time.Hour
	}
	return &Server{
		cfg:      cfg,
		users:    users,
		products: seedProducts(),
		log:      log,
	}
}

// Router wires every route on a fresh gin engine.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	if len(s.cfg.AllowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  s.cfg.AllowOrigins,
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
			ExposeHeaders: []string{"Content-Length"},
		}))
	}

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	r.POST("/auth/login", s.Login)
	r.GET("/products", s.ListProducts)
	r.GET("/products/:id", s.GetProduct)

	auth := r.Group("/")
	auth.Use(s.AuthMiddleware())
	{
		auth.POST("/users/:id/change-password", s.ChangePassword)
	}
	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetHeader("X-Request-ID")),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)))
	}
}
