package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/liftlink/backend/internal/domain"
	"github.com/liftlink/backend/internal/repository"
	"github.com/liftlink/backend/internal/timewindow"
	"github.com/liftlink/backend/pkg/tags"
)

var (
	ErrSessionNotFound = errors.New("gym session not found")
	ErrNotSessionOwner = errors.New("only the session creator can modify it")
)

type SessionService struct {
	postRepo repository.GymPostRepository
	userRepo repository.UserRepository
}

func NewSessionService(postRepo repository.GymPostRepository, userRepo repository.UserRepository) *SessionService {
	return &SessionService{postRepo: postRepo, userRepo: userRepo}
}

type CreateSessionInput struct {
	Title                string   `json:"title"`
	WorkoutType          []string `json:"workout_type"`
	GymLocation          string   `json:"gym_location"`
	DateTime             string   `json:"date_time"`
	PartySize            int      `json:"party_size"`
	GenderPreference     *string  `json:"gender_preference"`
	ExperiencePreference *string  `json:"experience_preference"`
	SameGenderOnly       bool     `json:"same_gender_only"`
	AdditionalNotes      *string  `json:"additional_notes"`
}

// UpdateSessionInput carries the mutable session fields. Nil means
// unchanged; for nullable text fields an empty string clears the value.
type UpdateSessionInput struct {
	Title                *string  `json:"title"`
	WorkoutType          []string `json:"workout_type"`
	GymLocation          *string  `json:"gym_location"`
	DateTime             *string  `json:"date_time"`
	PartySize            *int     `json:"party_size"`
	GenderPreference     *string  `json:"gender_preference"`
	ExperiencePreference *string  `json:"experience_preference"`
	SameGenderOnly       *bool    `json:"same_gender_only"`
	AdditionalNotes      *string  `json:"additional_notes"`
}

// Create schedules a session. The session inherits the creator's
// university and keeps it for life.
func (s *SessionService) Create(ctx context.Context, creatorID uuid.UUID, input CreateSessionInput) (*domain.GymPost, error) {
	creator, err := s.userRepo.GetByID(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, ErrUserNotFound
	}

	when, err := timewindow.ParseDateTime(input.DateTime)
	if err != nil {
		return nil, err
	}

	workoutType := input.WorkoutType
	if workoutType == nil {
		workoutType = []string{}
	}

	now := time.Now()
	post := &domain.GymPost{
		ID:                   uuid.New(),
		CreatorID:            creator.ID,
		Title:                input.Title,
		WorkoutType:          workoutType,
		GymLocation:          input.GymLocation,
		DateTime:             when,
		PartySize:            input.PartySize,
		GenderPreference:     normalizeOptional(input.GenderPreference),
		ExperiencePreference: normalizeOptional(input.ExperiencePreference),
		SameGenderOnly:       input.SameGenderOnly,
		AdditionalNotes:      normalizeOptional(input.AdditionalNotes),
		University:           creator.University,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	post.CreatorName = creator.Name
	post.CreatorDisplayName = creator.DisplayName
	post.CreatorGender = creator.Gender
	return post, nil
}

// Get returns a session visible to the viewer. Sessions outside the
// viewer's university are indistinguishable from missing ones.
func (s *SessionService) Get(ctx context.Context, viewerID, id uuid.UUID) (*domain.GymPost, error) {
	viewer, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if viewer == nil {
		return nil, ErrUserNotFound
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil || post.University != viewer.University {
		return nil, ErrSessionNotFound
	}
	return post, nil
}

// List runs the session discovery pipeline: tenancy, temporal window,
// and scalar filters in storage, then workout-type intersection, then
// the two-sided gender rule last.
func (s *SessionService) List(ctx context.Context, viewerID uuid.UUID, q domain.SessionQuery) ([]domain.GymPost, error) {
	viewer, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if viewer == nil {
		return nil, ErrUserNotFound
	}

	window, err := timewindow.Resolve(q.DateFrom, q.DateTo, time.Now())
	if err != nil {
		return nil, err
	}

	rows, err := s.postRepo.List(ctx, repository.SessionFilter{
		University:           viewer.University,
		GenderPreference:     q.GenderPreference,
		ExperiencePreference: q.ExperiencePreference,
		From:                 window.From,
		To:                   window.To,
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.GymPost, 0, len(rows))
	for _, post := range rows {
		if len(q.WorkoutType) > 0 && !tags.ContainsAny(post.WorkoutType, q.WorkoutType) {
			continue
		}
		if !genderVisible(viewer.Gender, viewer.ViewSameGenderOnly, post.CreatorGender, post.SameGenderOnly) {
			continue
		}
		out = append(out, post)
	}
	return out, nil
}

// Update modifies an owned session. The ownership check rides the
// UPDATE itself, so a concurrent delete cannot race it.
func (s *SessionService) Update(ctx context.Context, userID, id uuid.UUID, input UpdateSessionInput) (*domain.GymPost, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrSessionNotFound
	}
	if post.CreatorID != userID {
		return nil, ErrNotSessionOwner
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.WorkoutType != nil {
		post.WorkoutType = input.WorkoutType
	}
	if input.GymLocation != nil {
		post.GymLocation = *input.GymLocation
	}
	if input.DateTime != nil {
		when, err := timewindow.ParseDateTime(*input.DateTime)
		if err != nil {
			return nil, err
		}
		post.DateTime = when
	}
	if input.PartySize != nil {
		post.PartySize = *input.PartySize
	}
	applyText(&post.GenderPreference, input.GenderPreference)
	applyText(&post.ExperiencePreference, input.ExperiencePreference)
	applyText(&post.AdditionalNotes, input.AdditionalNotes)
	if input.SameGenderOnly != nil {
		post.SameGenderOnly = *input.SameGenderOnly
	}
	post.UpdatedAt = time.Now()

	ok, err := s.postRepo.UpdateOwned(ctx, post)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSessionNotFound
	}
	return post, nil
}

// Delete removes an owned session.
func (s *SessionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrSessionNotFound
	}
	if post.CreatorID != userID {
		return ErrNotSessionOwner
	}

	ok, err := s.postRepo.DeleteOwned(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSessionNotFound
	}
	return nil
}

func normalizeOptional(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
