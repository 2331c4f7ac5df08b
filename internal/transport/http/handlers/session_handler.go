package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/liftlink/backend/internal/domain"
	"github.com/liftlink/backend/internal/service"
	"github.com/liftlink/backend/internal/timewindow"
	"github.com/liftlink/backend/internal/transport/http/middleware"
	"github.com/liftlink/backend/pkg/validator"
	"github.com/rs/zerolog"
)

type SessionHandler struct {
	sessionService *service.SessionService
	log            zerolog.Logger
}

func NewSessionHandler(sessionService *service.SessionService, log zerolog.Logger) *SessionHandler {
	return &SessionHandler{sessionService: sessionService, log: log}
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input service.CreateSessionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateSession(input.Title, input.GymLocation, input.WorkoutType, input.PartySize); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	post, err := h.sessionService.Create(r.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, timewindow.ErrInvalidFormat):
			writeError(w, http.StatusBadRequest, "INVALID_DATETIME", "date_time must be YYYY-MM-DDTHH:MM")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			h.log.Error().Err(err).Msg("session create failed")
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	q := r.URL.Query()
	query := domain.SessionQuery{
		WorkoutType: splitCSV(q.Get("workout_type")),
		DateFrom:    q.Get("date_from"),
		DateTo:      q.Get("date_to"),
	}
	if v := q.Get("gender_preference"); v != "" {
		query.GenderPreference = &v
	}
	if v := q.Get("experience_preference"); v != "" {
		query.ExperiencePreference = &v
	}

	posts, err := h.sessionService.List(r.Context(), userID, query)
	if err != nil {
		switch {
		case errors.Is(err, timewindow.ErrInvalidFormat):
			writeError(w, http.StatusBadRequest, "INVALID_DATETIME", "Date filters must be YYYY-MM-DD or YYYY-MM-DDTHH:MM")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			h.log.Error().Err(err).Msg("session list failed")
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"sessions": posts})
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid session ID")
		return
	}

	post, err := h.sessionService.Get(r.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Gym session not found")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			h.log.Error().Err(err).Msg("session get failed")
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid session ID")
		return
	}

	var input service.UpdateSessionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateSessionUpdate(input.Title, input.GymLocation, input.WorkoutType, input.PartySize); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	post, err := h.sessionService.Update(r.Context(), userID, id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Gym session not found")
		case errors.Is(err, service.ErrNotSessionOwner):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Only the creator can modify this session")
		case errors.Is(err, timewindow.ErrInvalidFormat):
			writeError(w, http.StatusBadRequest, "INVALID_DATETIME", "date_time must be YYYY-MM-DDTHH:MM")
		default:
			h.log.Error().Err(err).Msg("session update failed")
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid session ID")
		return
	}

	if err := h.sessionService.Delete(r.Context(), userID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Gym session not found")
		case errors.Is(err, service.ErrNotSessionOwner):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Only the creator can delete this session")
		default:
			h.log.Error().Err(err).Msg("session delete failed")
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
