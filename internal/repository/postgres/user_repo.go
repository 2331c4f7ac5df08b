package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/liftlink/backend/internal/domain"
	"github.com/liftlink/backend/internal/repository"
	"github.com/liftlink/backend/pkg/tags"
)

const userColumns = `id, email, password_hash, name, display_name, gender, age, university,
	experience_level, fitness_tags, bio, additional_info, profile_photo, phone_number,
	show_profile_to_same_gender_only, view_same_gender_only,
	verified, verification_code, created_at, updated_at`

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, display_name, gender, age, university,
			experience_level, fitness_tags, bio, additional_info, profile_photo, phone_number,
			show_profile_to_same_gender_only, view_same_gender_only,
			verified, verification_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.DisplayName,
		user.Gender, user.Age, user.University, user.ExperienceLevel,
		tags.Encode(user.FitnessTags), user.Bio, nullableRaw(user.AdditionalInfo),
		user.ProfilePhoto, user.PhoneNumber,
		user.ShowProfileToSameGenderOnly, user.ViewSameGenderOnly,
		user.Verified, user.VerificationCode, user.CreatedAt, user.UpdatedAt,
	)
	return err
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", strings.ToLower(email))
}

func (r *UserRepo) GetByVerificationCode(ctx context.Context, code string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE verification_code = $1", code)
}

func (r *UserRepo) UpdateProfile(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET name = $1, display_name = $2, gender = $3, age = $4, bio = $5,
			experience_level = $6, fitness_tags = $7, additional_info = $8,
			profile_photo = $9, phone_number = $10,
			show_profile_to_same_gender_only = $11, view_same_gender_only = $12, updated_at = $13
		WHERE id = $14`

	_, err := r.pool.Exec(ctx, query,
		user.Name, user.DisplayName, user.Gender, user.Age, user.Bio,
		user.ExperienceLevel, tags.Encode(user.FitnessTags), nullableRaw(user.AdditionalInfo),
		user.ProfilePhoto, user.PhoneNumber,
		user.ShowProfileToSameGenderOnly, user.ViewSameGenderOnly, user.UpdatedAt,
		user.ID,
	)
	return err
}

func (r *UserRepo) MarkVerified(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET verified = TRUE, verification_code = NULL WHERE id = $1`, id)
	return err
}

func (r *UserRepo) SetVerificationCode(ctx context.Context, id uuid.UUID, code string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET verification_code = $1 WHERE id = $2`, code, id)
	return err
}

func (r *UserRepo) ListProfiles(ctx context.Context, f repository.ProfileFilter) ([]domain.Profile, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, name, display_name, gender, age, experience_level, fitness_tags,
			bio, additional_info, profile_photo, show_profile_to_same_gender_only, created_at
		FROM users
		WHERE verified = TRUE AND university = $1 AND id <> $2`)
	args := []any{f.University, f.ExcludeID}

	if f.Gender != nil {
		args = append(args, *f.Gender)
		fmt.Fprintf(&sb, " AND gender = $%d", len(args))
	}
	if f.AgeMin != nil {
		args = append(args, *f.AgeMin)
		fmt.Fprintf(&sb, " AND age >= $%d", len(args))
	}
	if f.AgeMax != nil {
		args = append(args, *f.AgeMax)
		fmt.Fprintf(&sb, " AND age <= $%d", len(args))
	}
	if f.ExperienceLevel != nil {
		args = append(args, *f.ExperienceLevel)
		fmt.Fprintf(&sb, " AND experience_level = $%d", len(args))
	}
	sb.WriteString(" ORDER BY created_at DESC")

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var p domain.Profile
		var fitnessTags string
		var additionalInfo *string
		if err := rows.Scan(
			&p.ID, &p.Name, &p.DisplayName, &p.Gender, &p.Age, &p.ExperienceLevel,
			&fitnessTags, &p.Bio, &additionalInfo, &p.ProfilePhoto,
			&p.ShowProfileToSameGenderOnly, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		p.FitnessTags = tags.Decode(fitnessTags)
		if additionalInfo != nil {
			p.AdditionalInfo = []byte(*additionalInfo)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *UserRepo) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	var fitnessTags string
	var additionalInfo *string
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.DisplayName,
		&u.Gender, &u.Age, &u.University, &u.ExperienceLevel,
		&fitnessTags, &u.Bio, &additionalInfo, &u.ProfilePhoto, &u.PhoneNumber,
		&u.ShowProfileToSameGenderOnly, &u.ViewSameGenderOnly,
		&u.Verified, &u.VerificationCode, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.FitnessTags = tags.Decode(fitnessTags)
	if additionalInfo != nil {
		u.AdditionalInfo = []byte(*additionalInfo)
	}
	return &u, nil
}

// nullableRaw stores empty JSON payloads as NULL rather than "".
func nullableRaw(raw []byte) *string {
	if len(raw) == 0 {
		return nil
	}
	s := string(raw)
	return &s
}
