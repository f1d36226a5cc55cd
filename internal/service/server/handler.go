package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"snapp-packager/internal/logger"
	"snapp-packager/internal/packerrors"
	"snapp-packager/internal/service/packager"
)

// Handler serves packaging requests over HTTP. The project document is the
// request body; the remaining request fields arrive as query parameters.
type Handler struct {
	// orchestrator runs the packaging pipeline.
	orchestrator *packager.Orchestrator
	// timeout bounds a single packaging request.
	timeout time.Duration
	// maxProjectBytes caps the accepted project document size.
	maxProjectBytes int64
}

// errorResponse is the structured failure body.
type errorResponse struct {
	// Code is the stable machine-readable error classification.
	Code string `json:"code"`
	// Message describes the failure.
	Message string `json:"message"`
	// RequestID correlates the response with server logs.
	RequestID string `json:"request_id"`
}

// NewHandler creates a handler over the given orchestrator.
func NewHandler(orchestrator *packager.Orchestrator, timeout time.Duration, maxProjectBytes int64) *Handler {
	return &Handler{
		orchestrator:    orchestrator,
		timeout:         timeout,
		maxProjectBytes: maxProjectBytes,
	}
}

// Routes wires the handler's endpoints.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /package", h.handlePackage)
	mux.HandleFunc("GET /healthz", h.handleHealth)

	return mux
}

// handlePackage runs the pipeline and streams the finished archive back.
func (h *Handler) handlePackage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	requestID := uuid.NewString()
	ctx = logger.WithKV(ctx, "request_id", requestID)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxProjectBytes))
	if err != nil {
		h.writeError(ctx, w, requestID, packerrors.Wrap(packerrors.KindValidation, "read project document", err))

		return
	}

	query := r.URL.Query()

	useCompleteSnap := false
	if raw := query.Get("useCompleteSnap"); raw != "" {
		useCompleteSnap, err = strconv.ParseBool(raw)
		if err != nil {
			h.writeError(ctx, w, requestID, packerrors.Newf(packerrors.KindValidation, "useCompleteSnap %q is not a boolean", raw))

			return
		}
	}

	req, err := packager.ParseRequest(
		query.Get("filename"),
		string(body),
		query.Get("os"),
		query.Get("resolution"),
		useCompleteSnap,
	)
	if err != nil {
		h.writeError(ctx, w, requestID, err)

		return
	}

	stream, err := h.orchestrator.Package(ctx, req)
	if err != nil {
		h.writeError(ctx, w, requestID, err)

		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", req.Filename+".zip"))
	w.Header().Set("X-Request-Id", requestID)

	if _, err = io.Copy(w, stream); err != nil {
		// The response is already partially written; all we can do is log.
		logger.ErrorKV(ctx, "Streaming archive to client failed", "error", err.Error())
	}
}

// handleHealth reports liveness.
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// writeError renders the structured failure body with a status class based
// on whether the request or the environment is at fault.
func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, requestID string, err error) {
	kind := packerrors.KindOf(err)

	status := http.StatusInternalServerError
	if kind.ClientFault() {
		status = http.StatusBadRequest
	}

	if status >= http.StatusInternalServerError {
		logger.ErrorKV(ctx, "Packaging request failed", "code", kind.Code(), "error", err.Error())
	} else {
		logger.WarnKV(ctx, "Packaging request rejected", "code", kind.Code(), "error", err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-Id", requestID)
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(errorResponse{
		Code:      kind.Code(),
		Message:   err.Error(),
		RequestID: requestID,
	})
}
