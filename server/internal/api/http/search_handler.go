package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/youhong316/harbor/server/internal/api/respond"
	"github.com/youhong316/harbor/server/internal/catalog"
)

var searchesServed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "harbor_fixture",
		Name:      "searches_total",
		Help:      "Search requests served, by caller visibility.",
	},
	[]string{"visibility"},
)

// Credentials unlock private projects when presented as HTTP basic auth.
type Credentials struct {
	Username string
	Password string
}

// SearchHandler handles GET /api/search
type SearchHandler struct {
	catalog *catalog.Catalog
	creds   Credentials
	log     zerolog.Logger
}

// NewSearchHandler instantiates the handler with its catalog.
func NewSearchHandler(c *catalog.Catalog, creds Credentials, log zerolog.Logger) *SearchHandler {
	return &SearchHandler{catalog: c, creds: creds, log: log}
}

// HandleSearch answers with projects, repositories and charts whose names
// contain the q parameter. Missing credentials mean anonymous access; wrong
// credentials are rejected with 401.
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	authenticated, ok := h.authenticate(r)
	if !ok {
		respond.WriteUnauthorized(w, "invalid credentials")
		return
	}

	q := r.URL.Query().Get("q")
	res := h.catalog.Search(q, authenticated)

	visibility := "anonymous"
	if authenticated {
		visibility = "authenticated"
	}
	searchesServed.WithLabelValues(visibility).Inc()

	h.log.Debug().
		Str("q", q).
		Str("visibility", visibility).
		Int("projects", len(res.Projects)).
		Int("repositories", len(res.Repositories)).
		Int("charts", len(res.Charts)).
		Msg("search served")

	respond.WriteJSON(w, http.StatusOK, res)
}

// authenticate returns (authenticated, valid).
func (h *SearchHandler) authenticate(r *http.Request) (bool, bool) {
	user, pass, present := r.BasicAuth()
	if !present {
		return false, true
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(h.creds.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(h.creds.Password)) == 1
	if userOK && passOK {
		return true, true
	}
	return false, false
}
