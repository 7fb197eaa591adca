package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/youhong316/harbor/server/internal/api/recovery"
)

// NewRouter wires the fixture routes: search, ping and metrics.
func NewRouter(search *SearchHandler, log zerolog.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(recovery.Middleware(log))
	r.Use(accessLog(log))

	r.HandleFunc("/api/search", search.HandleSearch).Methods(http.MethodGet)
	r.HandleFunc("/api/ping", Ping).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func accessLog(log zerolog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			log.Info().
				Str("method", r.Method).
				Str("url", r.URL.RequestURI()).
				Str("request_id", r.Header.Get("X-Request-Id")).
				Int("status", rec.status).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
