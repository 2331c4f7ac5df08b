package domain

import (
	"time"

	"github.com/google/uuid"
)

// GymPost is a scheduled group workout owned by its creator. DateTime
// is naive wall-clock time; University is copied from the creator at
// creation and immutable afterwards.
type GymPost struct {
	ID                   uuid.UUID `json:"id"`
	CreatorID            uuid.UUID `json:"creator_id"`
	Title                string    `json:"title"`
	WorkoutType          []string  `json:"workout_type"`
	GymLocation          string    `json:"gym_location"`
	DateTime             time.Time `json:"date_time"`
	PartySize            int       `json:"party_size"`
	GenderPreference     *string   `json:"gender_preference,omitempty"`
	ExperiencePreference *string   `json:"experience_preference,omitempty"`
	SameGenderOnly       bool      `json:"same_gender_only"`
	AdditionalNotes      *string   `json:"additional_notes,omitempty"`
	University           string    `json:"university"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
	// Joined fields
	CreatorName        *string `json:"creator_name,omitempty"`
	CreatorDisplayName *string `json:"creator_display_name,omitempty"`
	CreatorGender      string  `json:"creator_gender,omitempty"`
}

// SessionQuery carries the explicit session discovery filters. DateFrom
// and DateTo are the raw filter strings; the temporal window is
// resolved per query.
type SessionQuery struct {
	WorkoutType          []string
	GenderPreference     *string
	ExperiencePreference *string
	DateFrom             string
	DateTo               string
}
