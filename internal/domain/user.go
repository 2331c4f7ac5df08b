package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Experience levels. Stored as plain strings, validated at the edges.
const (
	ExperienceBeginner     = "Beginner"
	ExperienceIntermediate = "Intermediate"
	ExperienceAdvanced     = "Advanced"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         *string   `json:"name,omitempty"`
	DisplayName  *string   `json:"display_name,omitempty"`
	Gender       string    `json:"gender"`
	Age          int       `json:"age"`
	// University is the tenancy code derived from the signup email.
	// Fixed at creation, never updated.
	University      string          `json:"university"`
	ExperienceLevel string          `json:"experience_level"`
	FitnessTags     []string        `json:"fitness_tags"`
	Bio             *string         `json:"bio,omitempty"`
	AdditionalInfo  json.RawMessage `json:"additional_info,omitempty"`
	ProfilePhoto    *string         `json:"profile_photo,omitempty"`
	PhoneNumber     *string         `json:"phone_number,omitempty"`

	ShowProfileToSameGenderOnly bool `json:"show_profile_to_same_gender_only"`
	ViewSameGenderOnly          bool `json:"view_same_gender_only"`

	Verified         bool      `json:"verified"`
	VerificationCode *string   `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DisplayLabel is the name shown to other users.
func (u *User) DisplayLabel() string {
	if u.DisplayName != nil && *u.DisplayName != "" {
		return *u.DisplayName
	}
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return "Someone"
}

// Profile is the discovery view of a user: what other students see in
// the profiles feed. Contact fields are deliberately absent.
type Profile struct {
	ID              uuid.UUID       `json:"id"`
	Name            *string         `json:"name,omitempty"`
	DisplayName     *string         `json:"display_name,omitempty"`
	Gender          string          `json:"gender"`
	Age             int             `json:"age"`
	ExperienceLevel string          `json:"experience_level"`
	FitnessTags     []string        `json:"fitness_tags"`
	Bio             *string         `json:"bio,omitempty"`
	AdditionalInfo  json.RawMessage `json:"additional_info,omitempty"`
	ProfilePhoto    *string         `json:"profile_photo,omitempty"`

	ShowProfileToSameGenderOnly bool `json:"show_profile_to_same_gender_only"`

	CreatedAt time.Time `json:"created_at"`
}

// ProfileQuery carries the explicit profile discovery filters. Absent
// fields impose no constraint.
type ProfileQuery struct {
	Gender          *string
	AgeMin          *int
	AgeMax          *int
	ExperienceLevel *string
	FitnessTags     []string
}
