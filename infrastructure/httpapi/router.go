package httpapi

import (
	"log/slog"
	"net/http"
	"time"
	"webchat/services"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the chat routes and the WebSocket endpoint.
func NewRouter(log *slog.Logger, service services.IChatService, realtime http.Handler,
	allowedOrigin string, location *time.Location) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	h := &handlers{log: log, service: service, location: location}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log), cors(allowedOrigin))
	r.POST("/iniciar_chat", h.openChat)
	r.GET("/buscar_chat/:protocolo", h.getChat)
	r.GET("/chats_abertos", h.listOpenChats)
	r.GET("/ws", gin.WrapH(realtime))
	return r
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("Request served",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// cors echoes the allowed origin and answers preflights directly.
func cors(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", allowedOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
