package client

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	apierrors "github.com/youhong316/harbor/client/internal/errors"
)

var (
	searchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "harbor_search_client",
			Name:      "requests_total",
			Help:      "Global search calls by outcome.",
		},
		[]string{"outcome"},
	)

	searchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "harbor_search_client",
			Name:      "request_duration_seconds",
			Help:      "Wall time of global search calls, including retries and decoding.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

// Outcome labels.
const (
	outcomeOK        = "ok"
	outcomeStatus    = "status"
	outcomeDecode    = "decode"
	outcomeCanceled  = "canceled"
	outcomeTransport = "transport"
)

func observeSearch(start time.Time, err error) {
	searchDuration.Observe(time.Since(start).Seconds())
	searchRequestsTotal.WithLabelValues(outcomeOf(err)).Inc()
}

func outcomeOf(err error) string {
	var (
		classified *apierrors.ClassifiedError
		syntax     *json.SyntaxError
		typeErr    *json.UnmarshalTypeError
		target     *json.InvalidUnmarshalError
	)
	switch {
	case err == nil:
		return outcomeOK
	case errors.As(err, &classified):
		return outcomeStatus
	case errors.As(err, &syntax), errors.As(err, &typeErr), errors.As(err, &target):
		return outcomeDecode
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return outcomeCanceled
	default:
		return outcomeTransport
	}
}
