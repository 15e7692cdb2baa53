package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"go.uber.org/zap"

	"example.com/descstat/base/descriptive"
	"example.com/descstat/core/metrics"
	"example.com/descstat/core/summary"
)

const (
	SummaryPath = "/v1/summary"

	maxRequestBodySize = 16 << 20
	shutdownTimeout    = 5 * time.Second
)

type serverMetrics struct {
	reqsReceived prometheus.Counter
	reqsServed   *prometheus.CounterVec
}

func newServerMetrics() *serverMetrics {
	return &serverMetrics{
		reqsReceived: promauto.NewCounter(prometheus.CounterOpts{
			Name: metrics.ServerReqsReceivedN,
			Help: metrics.ServerReqsReceivedH,
		}),
		reqsServed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: metrics.ServerReqsServedN,
			Help: metrics.ServerReqsServedH,
		}, []string{"code"}),
	}
}

var handlerMetrics atomic.Pointer[serverMetrics]

func init() {
	handlerMetrics.Store(newServerMetrics())
}

type errorResponse struct {
	Error string `json:"error"`
}

type handler struct {
	log   *zap.Logger
	s     *summary.Summarizer
	mtrcs *serverMetrics
}

// NewHandler returns a handler computing summaries of JSON arrays posted to
// SummaryPath. A JSON null body is treated as missing input.
func NewHandler(log *zap.Logger, s *summary.Summarizer) http.Handler {
	h := &handler{log: log, s: s, mtrcs: handlerMetrics.Load()}
	mux := http.NewServeMux()
	mux.HandleFunc(SummaryPath, h.handleSummary)
	return mux
}

func (h *handler) reply(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		h.log.Info("failed to write response", zap.Error(err))
	}
	h.mtrcs.reqsServed.WithLabelValues(strconv.Itoa(code)).Inc()
}

func (h *handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	h.mtrcs.reqsReceived.Inc()

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.reply(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	sorted := false
	if v := r.URL.Query().Get("sorted"); v != "" {
		var err error
		sorted, err = strconv.ParseBool(v)
		if err != nil {
			h.reply(w, http.StatusBadRequest, errorResponse{Error: "invalid sorted parameter"})
			return
		}
	}

	var values []float64
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodySize)).Decode(&values)
	if err != nil {
		h.log.Debug("failed to decode request", zap.Error(err))
		h.reply(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	res, err := h.s.Summarize(r.Context(), "", values, sorted)
	if err != nil {
		if errors.Is(err, descriptive.ErrMissingInput) {
			h.reply(w, http.StatusBadRequest, errorResponse{Error: descriptive.ErrMissingInput.Error()})
			return
		}
		h.log.Error("failed to compute summary", zap.Error(err))
		h.reply(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	h.reply(w, http.StatusOK, res)
}

// Serve runs an HTTP server on addr until ctx is done.
func Serve(ctx context.Context, log *zap.Logger, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	log.Info("serving", zap.String("addr", addr))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		if err != nil {
			return err
		}
		err = <-errc
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
