package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/matzehuels/lotcheck/pkg/cache"
	apperrors "github.com/matzehuels/lotcheck/pkg/errors"
	"github.com/matzehuels/lotcheck/pkg/layout"
)

// maxBodyBytes caps the accepted layout document size. Large facility layouts
// run to a few megabytes of JSON; anything beyond this is rejected outright.
const maxBodyBytes = 16 << 20

// handleHealth answers liveness probes.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleValidate decodes a layout, serves a cached report when one exists for
// the same layout and policy, and otherwise runs the full validation.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	l, err := layout.ReadLayout(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidLayout, err, "layout rejected"))
		return
	}

	key := cache.ReportKey(l, s.engine.Policy())

	if data, hit, err := s.cache.Get(r.Context(), key); err == nil && hit {
		w.Header().Set("X-Cache", "hit")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	} else if err != nil {
		s.logger.Warn("report cache read failed", "err", err)
	}

	report := layout.NewReport(s.engine.Validate(l))
	data, err := layout.MarshalReport(report)
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode report"))
		return
	}

	w.Header().Set("X-Cache", "miss")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)

	s.storeReport(key, data)
}

// storeReport persists a report after the response is written. Transient
// backend failures are retried; a report that cannot be stored only costs a
// recomputation later.
func (s *Server) storeReport(key string, data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := cache.RetryWithBackoff(ctx, func() error {
		return s.cache.Set(ctx, key, data, s.ttl)
	})
	if err != nil {
		s.logger.Warn("report cache store failed", "err", err)
	}
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps structured error codes onto HTTP status codes and writes
// the JSON error envelope.
func writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)

	status := http.StatusInternalServerError
	switch code {
	case apperrors.ErrCodeInvalidLayout, apperrors.ErrCodeInvalidPolicy,
		apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case "":
		code = apperrors.ErrCodeInternal
	}

	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(code),
		Message: apperrors.UserMessage(err),
	}})
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
