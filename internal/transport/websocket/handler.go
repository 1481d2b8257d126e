package websocket

import (
	"net/http"
	"slices"

	"github.com/gorilla/websocket"

	"socprobe/internal/config"
	"socprobe/internal/logger"
	"socprobe/internal/transport/http/middleware"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	log      logger.Logger
	verifier middleware.TokenValidator
}

// NewHandler builds the upgrade endpoint. A nil verifier disables the
// token check.
func NewHandler(hub *Hub, log logger.Logger, cfg *config.Config, verifier middleware.TokenValidator) *Handler {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}

			allowed := slices.Contains(cfg.AllowedOrigins, origin) || slices.Contains(cfg.AllowedOrigins, "*")
			if !allowed {
				log.Warn("websocket origin rejected", "origin", origin)
			}

			return allowed
		},
	}

	return &Handler{
		hub:      hub,
		upgrader: upgrader,
		log:      log,
		verifier: verifier,
	}
}

func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	if h.verifier != nil {
		token, ok := middleware.BearerToken(r)
		if !ok {
			token = r.URL.Query().Get("token")
		}

		if token == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if _, err := h.verifier.ValidateToken(token); err != nil {
			h.log.Warn("jwt verification failed", "error", err)
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("upgrade failed", "error", err)
		return
	}

	client := NewClient(h.hub, conn, h.log)
	if !send(h.hub, h.hub.register, client) {
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()

	h.log.Info("client connected", "id", client.ID, "remote_addr", conn.RemoteAddr())
}
