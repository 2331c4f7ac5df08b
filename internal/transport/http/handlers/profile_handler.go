package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/liftlink/backend/internal/domain"
	"github.com/liftlink/backend/internal/service"
	"github.com/liftlink/backend/internal/transport/http/middleware"
	"github.com/liftlink/backend/pkg/validator"
	"github.com/rs/zerolog"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	log            zerolog.Logger
}

func NewProfileHandler(profileService *service.ProfileService, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, log: log}
}

// Get returns the caller's own profile, contact fields included.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.profileService.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		} else {
			h.log.Error().Err(err).Msg("profile get failed")
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input service.UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateProfileUpdate(input.DisplayName, input.Gender, input.ExperienceLevel, input.Age, input.Bio, input.PhoneNumber); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	user, err := h.profileService.Update(r.Context(), userID, input)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		} else {
			h.log.Error().Err(err).Msg("profile update failed")
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Discover lists same-university profiles matching the query filters.
func (h *ProfileHandler) Discover(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	query, err := parseProfileQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_QUERY", err.Error())
		return
	}

	profiles, err := h.profileService.Discover(r.Context(), userID, query)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		} else {
			h.log.Error().Err(err).Msg("profile discovery failed")
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"profiles": profiles})
}

func parseProfileQuery(r *http.Request) (domain.ProfileQuery, error) {
	q := r.URL.Query()
	var out domain.ProfileQuery

	if v := q.Get("gender"); v != "" {
		out.Gender = &v
	}
	if v := q.Get("experience_level"); v != "" {
		out.ExperienceLevel = &v
	}
	var err error
	if out.AgeMin, err = parseIntParam(q.Get("age_min")); err != nil {
		return out, errors.New("age_min must be a number")
	}
	if out.AgeMax, err = parseIntParam(q.Get("age_max")); err != nil {
		return out, errors.New("age_max must be a number")
	}
	out.FitnessTags = splitCSV(q.Get("fitness_tags"))

	return out, nil
}

func parseIntParam(v string) (*int, error) {
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func splitCSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
