package http

import (
	"net/http"

	"github.com/youhong316/harbor/server/internal/api/respond"
)

// Ping handles GET /api/ping the way Harbor core does.
func Ping(w http.ResponseWriter, _ *http.Request) {
	respond.WriteText(w, http.StatusOK, "Pong")
}
