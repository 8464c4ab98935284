package handler

import (
	"context"
	"net/http"
	"strings"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	ws "ripple/internal/infrastructure/websocket"
	"ripple/pkg/errors"
	"ripple/pkg/logger"
	"ripple/pkg/response"
)

// TokenVerifier resolves an ID token to a uid.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

type WebSocketHandler struct {
	wsManager *ws.Manager
	verifier  TokenVerifier
	upgrader  gorillaws.Upgrader
}

var webSocketHandler *WebSocketHandler

func NewWebSocketHandler(wsManager *ws.Manager, verifier TokenVerifier, allowedOrigins []string) *WebSocketHandler {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origins[strings.TrimRight(origin, "/")] = true
	}

	return &WebSocketHandler{
		wsManager: wsManager,
		verifier:  verifier,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origins[origin]
			},
		},
	}
}

func SetupWebSocketHandler(wsManager *ws.Manager, verifier TokenVerifier, allowedOrigins []string) {
	webSocketHandler = NewWebSocketHandler(wsManager, verifier, allowedOrigins)
}

func GetWebSocketHandler() *WebSocketHandler {
	return webSocketHandler
}

// HandleWebSocket authenticates with the ?token= query parameter, since
// browsers cannot set headers on a websocket handshake.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return response.Error(c, errors.Unauthorized("Token query parameter is required", nil))
	}

	userID, err := h.verifier.VerifyToken(c.Request().Context(), token)
	if err != nil {
		return response.Error(c, err)
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader has already written the handshake error
		logger.Warn("WebSocket upgrade failed for %s: %v", userID, err)
		return nil
	}

	go h.wsManager.Serve(ws.NewClient(userID, conn))

	return nil
}
