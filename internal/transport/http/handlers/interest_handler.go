package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/liftlink/backend/internal/domain"
	"github.com/liftlink/backend/internal/repository"
	"github.com/liftlink/backend/internal/service"
	"github.com/liftlink/backend/internal/transport/http/middleware"
	"github.com/rs/zerolog"
)

type InterestHandler struct {
	interestService *service.InterestService
	log             zerolog.Logger
}

func NewInterestHandler(interestService *service.InterestService, log zerolog.Logger) *InterestHandler {
	return &InterestHandler{interestService: interestService, log: log}
}

func (h *InterestHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input service.CreateInterestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if input.ReceiverID == nil && input.GymPostID == nil {
		writeError(w, http.StatusBadRequest, "INVALID_TARGET", "Provide receiver_id or gym_post_id")
		return
	}

	req, err := h.interestService.Create(r.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTarget):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Interest target not found")
		case errors.Is(err, service.ErrSelfRequest):
			writeError(w, http.StatusBadRequest, "SELF_REQUEST", "You cannot send a request to yourself")
		case errors.Is(err, service.ErrCrossUniversity):
			writeError(w, http.StatusForbidden, "CROSS_UNIVERSITY", "Requests are limited to your university")
		case errors.Is(err, repository.ErrDuplicatePending):
			writeError(w, http.StatusConflict, "DUPLICATE_PENDING", "You already have a pending request for this target")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			h.log.Error().Err(err).Msg("interest create failed")
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, req)
}

func (h *InterestHandler) Respond(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid request ID")
		return
	}

	var input struct {
		Decision string `json:"decision"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	req, err := h.interestService.Respond(r.Context(), userID, id, input.Decision)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDecision):
			writeError(w, http.StatusBadRequest, "INVALID_DECISION", "Decision must be accepted or rejected")
		case errors.Is(err, service.ErrRequestNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Interest request not found")
		case errors.Is(err, service.ErrNotRequestReceiver):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Only the receiver can respond to this request")
		case errors.Is(err, service.ErrAlreadyResolved):
			writeError(w, http.StatusConflict, "ALREADY_RESOLVED", "This request has already been resolved")
		default:
			h.log.Error().Err(err).Msg("interest respond failed")
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, req)
}

// List returns the caller's requests; ?type=sent|received picks the
// direction.
func (h *InterestHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var (
		reqs []domain.InterestRequest
		err  error
	)
	switch r.URL.Query().Get("type") {
	case "sent":
		reqs, err = h.interestService.ListSent(r.Context(), userID)
	case "received":
		reqs, err = h.interestService.ListReceived(r.Context(), userID)
	default:
		writeError(w, http.StatusBadRequest, "INVALID_QUERY", "type must be sent or received")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("interest list failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"requests": reqs})
}

func (h *InterestHandler) PendingCount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	count, err := h.interestService.PendingCount(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Msg("pending count failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}
