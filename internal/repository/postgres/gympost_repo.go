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

type GymPostRepo struct {
	pool *pgxpool.Pool
}

func NewGymPostRepo(pool *pgxpool.Pool) *GymPostRepo {
	return &GymPostRepo{pool: pool}
}

func (r *GymPostRepo) Create(ctx context.Context, post *domain.GymPost) error {
	query := `
		INSERT INTO gym_posts (id, creator_id, title, workout_type, gym_location, date_time,
			party_size, gender_preference, experience_preference, same_gender_only,
			additional_notes, university, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.pool.Exec(ctx, query,
		post.ID, post.CreatorID, post.Title, tags.Encode(post.WorkoutType),
		post.GymLocation, post.DateTime, post.PartySize,
		post.GenderPreference, post.ExperiencePreference, post.SameGenderOnly,
		post.AdditionalNotes, post.University, post.CreatedAt, post.UpdatedAt,
	)
	return err
}

func (r *GymPostRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.GymPost, error) {
	query := `
		SELECT p.id, p.creator_id, p.title, p.workout_type, p.gym_location, p.date_time,
			p.party_size, p.gender_preference, p.experience_preference, p.same_gender_only,
			p.additional_notes, p.university, p.created_at, p.updated_at,
			u.name, u.display_name, u.gender
		FROM gym_posts p
		JOIN users u ON p.creator_id = u.id
		WHERE p.id = $1`

	var p domain.GymPost
	var workoutType string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.CreatorID, &p.Title, &workoutType, &p.GymLocation, &p.DateTime,
		&p.PartySize, &p.GenderPreference, &p.ExperiencePreference, &p.SameGenderOnly,
		&p.AdditionalNotes, &p.University, &p.CreatedAt, &p.UpdatedAt,
		&p.CreatorName, &p.CreatorDisplayName, &p.CreatorGender,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.WorkoutType = tags.Decode(workoutType)
	return &p, nil
}

func (r *GymPostRepo) List(ctx context.Context, f repository.SessionFilter) ([]domain.GymPost, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT p.id, p.creator_id, p.title, p.workout_type, p.gym_location, p.date_time,
			p.party_size, p.gender_preference, p.experience_preference, p.same_gender_only,
			p.additional_notes, p.university, p.created_at, p.updated_at,
			u.name, u.display_name, u.gender
		FROM gym_posts p
		JOIN users u ON p.creator_id = u.id
		WHERE p.university = $1 AND p.date_time >= $2`)
	args := []any{f.University, f.From}

	if f.To != nil {
		args = append(args, *f.To)
		fmt.Fprintf(&sb, " AND p.date_time <= $%d", len(args))
	}
	if f.GenderPreference != nil {
		args = append(args, *f.GenderPreference)
		fmt.Fprintf(&sb, " AND p.gender_preference = $%d", len(args))
	}
	if f.ExperiencePreference != nil {
		args = append(args, *f.ExperiencePreference)
		fmt.Fprintf(&sb, " AND p.experience_preference = $%d", len(args))
	}
	sb.WriteString(" ORDER BY p.date_time ASC")

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.GymPost
	for rows.Next() {
		var p domain.GymPost
		var workoutType string
		if err := rows.Scan(
			&p.ID, &p.CreatorID, &p.Title, &workoutType, &p.GymLocation, &p.DateTime,
			&p.PartySize, &p.GenderPreference, &p.ExperiencePreference, &p.SameGenderOnly,
			&p.AdditionalNotes, &p.University, &p.CreatedAt, &p.UpdatedAt,
			&p.CreatorName, &p.CreatorDisplayName, &p.CreatorGender,
		); err != nil {
			return nil, err
		}
		p.WorkoutType = tags.Decode(workoutType)
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// UpdateOwned keys the write on (id, creator_id) so the ownership check
// and the mutation are a single atomic statement.
func (r *GymPostRepo) UpdateOwned(ctx context.Context, post *domain.GymPost) (bool, error) {
	query := `
		UPDATE gym_posts
		SET title = $1, workout_type = $2, gym_location = $3, date_time = $4, party_size = $5,
			gender_preference = $6, experience_preference = $7, same_gender_only = $8,
			additional_notes = $9, updated_at = $10
		WHERE id = $11 AND creator_id = $12`

	tag, err := r.pool.Exec(ctx, query,
		post.Title, tags.Encode(post.WorkoutType), post.GymLocation, post.DateTime,
		post.PartySize, post.GenderPreference, post.ExperiencePreference,
		post.SameGenderOnly, post.AdditionalNotes, post.UpdatedAt,
		post.ID, post.CreatorID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *GymPostRepo) DeleteOwned(ctx context.Context, id, creatorID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM gym_posts WHERE id = $1 AND creator_id = $2`, id, creatorID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
