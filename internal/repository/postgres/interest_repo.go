package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/liftlink/backend/internal/domain"
	"github.com/liftlink/backend/internal/repository"
)

type InterestRepo struct {
	pool *pgxpool.Pool
}

func NewInterestRepo(pool *pgxpool.Pool) *InterestRepo {
	return &InterestRepo{pool: pool}
}

// Create inserts a pending request. The at-most-one-pending invariant
// rides on the partial unique index over (sender, receiver, session)
// WHERE status = 'pending': concurrent identical inserts race on the
// index, not on an application-level check.
func (r *InterestRepo) Create(ctx context.Context, req *domain.InterestRequest) error {
	query := `
		INSERT INTO interest_requests (id, sender_id, receiver_id, gym_post_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		req.ID, req.SenderID, req.ReceiverID, req.GymPostID, req.Status, req.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return repository.ErrDuplicatePending
	}
	return err
}

func (r *InterestRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.InterestRequest, error) {
	query := `
		SELECT r.id, r.sender_id, r.receiver_id, r.gym_post_id, r.status, r.created_at,
			s.name, s.display_name, s.email, s.phone_number, g.title
		FROM interest_requests r
		JOIN users s ON r.sender_id = s.id
		LEFT JOIN gym_posts g ON r.gym_post_id = g.id
		WHERE r.id = $1`

	var req domain.InterestRequest
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.SenderID, &req.ReceiverID, &req.GymPostID, &req.Status, &req.CreatedAt,
		&req.SenderName, &req.SenderDisplayName, &req.SenderEmail, &req.SenderPhone,
		&req.GymPostTitle,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Resolve is the single conditional update that takes a request out of
// pending. Two concurrent responses cannot both see rows=1.
func (r *InterestRepo) Resolve(ctx context.Context, id uuid.UUID, status string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE interest_requests SET status = $1 WHERE id = $2 AND status = 'pending'`,
		status, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *InterestRepo) ListSent(ctx context.Context, senderID uuid.UUID) ([]domain.InterestRequest, error) {
	query := `
		SELECT r.id, r.sender_id, r.receiver_id, r.gym_post_id, r.status, r.created_at,
			u.name, u.display_name, u.email, u.phone_number, g.title
		FROM interest_requests r
		JOIN users u ON r.receiver_id = u.id
		LEFT JOIN gym_posts g ON r.gym_post_id = g.id
		WHERE r.sender_id = $1
		ORDER BY r.created_at DESC`

	rows, err := r.pool.Query(ctx, query, senderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.InterestRequest
	for rows.Next() {
		var req domain.InterestRequest
		if err := rows.Scan(
			&req.ID, &req.SenderID, &req.ReceiverID, &req.GymPostID, &req.Status, &req.CreatedAt,
			&req.ReceiverName, &req.ReceiverDisplayName, &req.ReceiverEmail, &req.ReceiverPhone,
			&req.GymPostTitle,
		); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func (r *InterestRepo) ListReceived(ctx context.Context, receiverID uuid.UUID) ([]domain.InterestRequest, error) {
	query := `
		SELECT r.id, r.sender_id, r.receiver_id, r.gym_post_id, r.status, r.created_at,
			u.name, u.display_name, u.email, u.phone_number, g.title
		FROM interest_requests r
		JOIN users u ON r.sender_id = u.id
		LEFT JOIN gym_posts g ON r.gym_post_id = g.id
		WHERE r.receiver_id = $1
		ORDER BY r.created_at DESC`

	rows, err := r.pool.Query(ctx, query, receiverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.InterestRequest
	for rows.Next() {
		var req domain.InterestRequest
		if err := rows.Scan(
			&req.ID, &req.SenderID, &req.ReceiverID, &req.GymPostID, &req.Status, &req.CreatedAt,
			&req.SenderName, &req.SenderDisplayName, &req.SenderEmail, &req.SenderPhone,
			&req.GymPostTitle,
		); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func (r *InterestRepo) CountPending(ctx context.Context, receiverID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM interest_requests WHERE receiver_id = $1 AND status = 'pending'`,
		receiverID).Scan(&count)
	return count, err
}
