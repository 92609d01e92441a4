// Package handler provides the HTTP handlers of the snippet review API.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sevigo/snippet-review/internal/core"
	"github.com/sevigo/snippet-review/internal/storage"
)

// ReviewRequest is the body of POST /review.
type ReviewRequest struct {
	Code *string `json:"code"`
}

// ReviewResponse is the body returned by POST /review. Status is "degraded"
// when the provider failed and Feedback carries the error description.
type ReviewResponse struct {
	Feedback  string             `json:"feedback"`
	Status    core.OutcomeStatus `json:"status"`
	SnippetID int64              `json:"snippet_id"`
	ReviewID  int64              `json:"review_id"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ReviewHandler serves the submit and read-back endpoints.
type ReviewHandler struct {
	service         core.ReviewService
	maxRequestBytes int64
	logger          *slog.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(service core.ReviewService, maxRequestBytes int64, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service:         service,
		maxRequestBytes: maxRequestBytes,
		logger:          logger,
	}
}

// Submit handles POST /review.
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if h.maxRequestBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestBytes)
	}

	var req ReviewRequest
	if status, msg := decodeReviewRequest(r.Body, &req); status != 0 {
		h.logger.Debug("rejected review request", "status", status, "reason", msg)
		writeJSON(w, status, ErrorResponse{Error: msg})
		return
	}

	submission, err := h.service.Submit(r.Context(), *req.Code)
	if err != nil {
		h.logger.Error("review request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, ReviewResponse{
		Feedback:  submission.Feedback,
		Status:    submission.Status,
		SnippetID: submission.SnippetID,
		ReviewID:  submission.ReviewID,
	})
}

// decodeReviewRequest returns a zero status when req is usable, otherwise
// the status code and message to reject the request with.
func decodeReviewRequest(body io.Reader, req *ReviewRequest) (int, string) {
	dec := json.NewDecoder(body)
	err := dec.Decode(req)

	var maxBytesErr *http.MaxBytesError
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case err == nil:
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge, "request body too large"
	case errors.Is(err, io.EOF):
		return http.StatusUnprocessableEntity, "request body is required"
	case errors.As(err, &typeErr) && typeErr.Field == "":
		return http.StatusUnprocessableEntity, "request body must be a JSON object"
	case errors.As(err, &typeErr):
		return http.StatusUnprocessableEntity, "field '" + typeErr.Field + "' must be a " + typeErr.Type.String()
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return http.StatusBadRequest, "malformed JSON body"
	default:
		return http.StatusBadRequest, "invalid request body"
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return http.StatusRequestEntityTooLarge, "request body too large"
		}
		return http.StatusBadRequest, "malformed JSON body"
	}

	if req.Code == nil {
		return http.StatusUnprocessableEntity, "field 'code' is required"
	}
	return 0, ""
}

// Snippet handles GET /snippets/{id}.
func (h *ReviewHandler) Snippet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "snippet id must be a positive integer"})
		return
	}

	detail, err := h.service.Snippet(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "snippet not found"})
			return
		}
		h.logger.Error("failed to load snippet", "snippet_id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
