package ws

import (
	"net/http"

	"github.com/liftlink/backend/internal/transport/http/middleware"
	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
)

// ServeWS returns an HTTP handler that upgrades to WebSocket.
// Auth is done via ?token=xxx query param (WebSocket can't send headers).
func ServeWS(hub *Hub, jwtSecret string, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenStr := r.URL.Query().Get("token")
		if tokenStr == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		userID, _, ok := middleware.ParseToken(tokenStr, jwtSecret)
		if !ok {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true, // Allow any origin (dev mode)
		})
		if err != nil {
			log.Warn().Err(err).Msg("ws accept error")
			return
		}

		client := NewClient(hub, conn, userID, log)
		hub.register <- client

		go client.WritePump()
		go client.ReadPump()
	}
}
