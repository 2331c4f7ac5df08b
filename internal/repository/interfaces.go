package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/liftlink/backend/internal/domain"
)

// ErrDuplicatePending is returned by InterestRepository.Create when a
// pending request for the same (sender, receiver, session) triple
// already exists. Enforced by a partial unique index, so concurrent
// identical creates cannot both succeed.
var ErrDuplicatePending = errors.New("a pending interest request already exists")

// ProfileFilter is the storage-level slice of the profile discovery
// pipeline: tenancy scope, self-exclusion, and the scalar filters. Tag
// intersection and gender visibility are applied by the service.
type ProfileFilter struct {
	University      string
	ExcludeID       uuid.UUID
	Gender          *string
	AgeMin          *int
	AgeMax          *int
	ExperienceLevel *string
}

// SessionFilter is the storage-level slice of the session discovery
// pipeline. From is always set; To nil means open-ended.
type SessionFilter struct {
	University           string
	GenderPreference     *string
	ExperiencePreference *string
	From                 time.Time
	To                   *time.Time
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByVerificationCode(ctx context.Context, code string) (*domain.User, error)
	// UpdateProfile persists the mutable profile fields. Identity,
	// tenancy, and verification are never written here.
	UpdateProfile(ctx context.Context, user *domain.User) error
	MarkVerified(ctx context.Context, id uuid.UUID) error
	SetVerificationCode(ctx context.Context, id uuid.UUID, code string) error
	// ListProfiles returns verified same-university profiles matching
	// the scalar filters, most recently created first.
	ListProfiles(ctx context.Context, f ProfileFilter) ([]domain.Profile, error)
}

type GymPostRepository interface {
	Create(ctx context.Context, post *domain.GymPost) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.GymPost, error)
	// List returns sessions matching the filter ordered by dateTime
	// ascending, with creator display fields joined.
	List(ctx context.Context, f SessionFilter) ([]domain.GymPost, error)
	// UpdateOwned writes the mutable fields only when creatorID still
	// owns the row; reports whether a row was written.
	UpdateOwned(ctx context.Context, post *domain.GymPost) (bool, error)
	// DeleteOwned deletes only when creatorID owns the row.
	DeleteOwned(ctx context.Context, id, creatorID uuid.UUID) (bool, error)
}

type InterestRepository interface {
	// Create inserts a pending request. Returns ErrDuplicatePending if
	// an identical pending request already exists.
	Create(ctx context.Context, req *domain.InterestRequest) error
	// GetByID loads a request with sender display and contact fields
	// joined (redaction is the service's responsibility).
	GetByID(ctx context.Context, id uuid.UUID) (*domain.InterestRequest, error)
	// Resolve transitions a request out of pending atomically; reports
	// whether the row was still pending.
	Resolve(ctx context.Context, id uuid.UUID, status string) (bool, error)
	ListSent(ctx context.Context, senderID uuid.UUID) ([]domain.InterestRequest, error)
	ListReceived(ctx context.Context, receiverID uuid.UUID) ([]domain.InterestRequest, error)
	CountPending(ctx context.Context, receiverID uuid.UUID) (int, error)
}
