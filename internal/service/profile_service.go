package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/liftlink/backend/internal/domain"
	"github.com/liftlink/backend/internal/repository"
	"github.com/liftlink/backend/pkg/tags"
)

var ErrUserNotFound = errors.New("user not found")

type ProfileService struct {
	userRepo repository.UserRepository
}

func NewProfileService(userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo}
}

// UpdateProfileInput carries the mutable profile fields. Nil means
// unchanged; for nullable text fields an empty string clears the value.
type UpdateProfileInput struct {
	Name                        *string         `json:"name"`
	DisplayName                 *string         `json:"display_name"`
	Gender                      *string         `json:"gender"`
	Age                         *int            `json:"age"`
	ExperienceLevel             *string         `json:"experience_level"`
	FitnessTags                 []string        `json:"fitness_tags"`
	Bio                         *string         `json:"bio"`
	AdditionalInfo              json.RawMessage `json:"additional_info"`
	ProfilePhoto                *string         `json:"profile_photo"`
	PhoneNumber                 *string         `json:"phone_number"`
	ShowProfileToSameGenderOnly *bool           `json:"show_profile_to_same_gender_only"`
	ViewSameGenderOnly          *bool           `json:"view_same_gender_only"`
}

// Get returns the caller's own record.
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Update writes the mutable profile fields. Email, university, and
// verification state are not touched here.
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	applyText(&user.Name, input.Name)
	applyText(&user.DisplayName, input.DisplayName)
	applyText(&user.Bio, input.Bio)
	applyText(&user.ProfilePhoto, input.ProfilePhoto)
	applyText(&user.PhoneNumber, input.PhoneNumber)

	if input.Gender != nil {
		user.Gender = *input.Gender
	}
	if input.Age != nil {
		user.Age = *input.Age
	}
	if input.ExperienceLevel != nil {
		user.ExperienceLevel = *input.ExperienceLevel
	}
	if input.FitnessTags != nil {
		user.FitnessTags = input.FitnessTags
	}
	if input.AdditionalInfo != nil {
		user.AdditionalInfo = input.AdditionalInfo
	}
	if input.ShowProfileToSameGenderOnly != nil {
		user.ShowProfileToSameGenderOnly = *input.ShowProfileToSameGenderOnly
	}
	if input.ViewSameGenderOnly != nil {
		user.ViewSameGenderOnly = *input.ViewSameGenderOnly
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Discover runs the profile discovery pipeline for a viewer: tenancy
// scope and scalar filters in storage, then tag intersection, then the
// two-sided gender rule last.
func (s *ProfileService) Discover(ctx context.Context, viewerID uuid.UUID, q domain.ProfileQuery) ([]domain.Profile, error) {
	viewer, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if viewer == nil {
		return nil, ErrUserNotFound
	}

	rows, err := s.userRepo.ListProfiles(ctx, repository.ProfileFilter{
		University:      viewer.University,
		ExcludeID:       viewer.ID,
		Gender:          q.Gender,
		AgeMin:          q.AgeMin,
		AgeMax:          q.AgeMax,
		ExperienceLevel: q.ExperienceLevel,
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.Profile, 0, len(rows))
	for _, p := range rows {
		if len(q.FitnessTags) > 0 && !tags.ContainsAny(p.FitnessTags, q.FitnessTags) {
			continue
		}
		if !genderVisible(viewer.Gender, viewer.ViewSameGenderOnly, p.Gender, p.ShowProfileToSameGenderOnly) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// applyText handles the nil=unchanged, ""=clear convention for
// nullable text fields.
func applyText(dst **string, src *string) {
	if src == nil {
		return
	}
	if *src == "" {
		*dst = nil
		return
	}
	v := *src
	*dst = &v
}
