package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/liftlink/backend/internal/domain"
	"github.com/liftlink/backend/internal/repository"
	"github.com/rs/zerolog"
)

var (
	ErrInvalidTarget      = errors.New("interest target not found")
	ErrSelfRequest        = errors.New("cannot send an interest request to yourself")
	ErrCrossUniversity    = errors.New("interest requests are limited to your university")
	ErrRequestNotFound    = errors.New("interest request not found")
	ErrNotRequestReceiver = errors.New("only the receiver can respond to a request")
	ErrAlreadyResolved    = errors.New("interest request is already resolved")
	ErrInvalidDecision    = errors.New("decision must be accepted or rejected")
)

// Notifier pushes realtime interest events. Implementations must not
// block; failures are the implementation's problem, not the caller's.
type Notifier interface {
	InterestCreated(req *domain.InterestRequest, pendingCount int)
	InterestResolved(req *domain.InterestRequest)
}

type InterestService struct {
	interestRepo repository.InterestRepository
	postRepo     repository.GymPostRepository
	userRepo     repository.UserRepository
	mailer       Mailer
	notifier     Notifier
	log          zerolog.Logger
}

func NewInterestService(
	interestRepo repository.InterestRepository,
	postRepo repository.GymPostRepository,
	userRepo repository.UserRepository,
	mailer Mailer,
	notifier Notifier,
	log zerolog.Logger,
) *InterestService {
	return &InterestService{
		interestRepo: interestRepo,
		postRepo:     postRepo,
		userRepo:     userRepo,
		mailer:       mailer,
		notifier:     notifier,
		log:          log,
	}
}

// CreateInterestInput targets either a user directly or a gym session.
// When GymPostID is set the receiver is the session's creator and
// ReceiverID is ignored.
type CreateInterestInput struct {
	ReceiverID *uuid.UUID `json:"receiver_id"`
	GymPostID  *uuid.UUID `json:"gym_post_id"`
}

// Create records a pending interest request. At most one pending
// request may exist per (sender, receiver, session); the storage
// layer enforces this even under concurrent submits. Notification
// delivery never fails the request.
func (s *InterestService) Create(ctx context.Context, senderID uuid.UUID, input CreateInterestInput) (*domain.InterestRequest, error) {
	sender, err := s.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, ErrUserNotFound
	}

	var receiverID uuid.UUID
	var sessionTitle *string
	if input.GymPostID != nil {
		post, err := s.postRepo.GetByID(ctx, *input.GymPostID)
		if err != nil {
			return nil, err
		}
		if post == nil {
			return nil, ErrInvalidTarget
		}
		receiverID = post.CreatorID
		sessionTitle = &post.Title
	} else {
		if input.ReceiverID == nil {
			return nil, ErrInvalidTarget
		}
		receiverID = *input.ReceiverID
	}

	if receiverID == senderID {
		return nil, ErrSelfRequest
	}

	receiver, err := s.userRepo.GetByID(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, ErrInvalidTarget
	}
	if receiver.University != sender.University {
		return nil, ErrCrossUniversity
	}

	req := &domain.InterestRequest{
		ID:         uuid.New(),
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		GymPostID:  input.GymPostID,
		Status:     domain.InterestPending,
		CreatedAt:  time.Now(),
	}
	if err := s.interestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	req.SenderName = sender.Name
	req.SenderDisplayName = sender.DisplayName
	req.ReceiverName = receiver.Name
	req.ReceiverDisplayName = receiver.DisplayName
	req.GymPostTitle = sessionTitle

	s.notifyCreated(ctx, req, sender, receiver, sessionTitle)
	return req, nil
}

// Respond resolves a pending request. Only the receiver may respond,
// exactly once. Sender contact details are disclosed only on accept.
func (s *InterestService) Respond(ctx context.Context, userID, requestID uuid.UUID, decision string) (*domain.InterestRequest, error) {
	if decision != domain.InterestAccepted && decision != domain.InterestRejected {
		return nil, ErrInvalidDecision
	}

	req, err := s.interestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	if req.ReceiverID != userID {
		return nil, ErrNotRequestReceiver
	}
	if req.Status != domain.InterestPending {
		return nil, ErrAlreadyResolved
	}

	ok, err := s.interestRepo.Resolve(ctx, requestID, decision)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race to another response.
		return nil, ErrAlreadyResolved
	}
	req.Status = decision
	redactContacts(req)

	s.notifyResolved(ctx, req)
	return req, nil
}

// ListSent returns the caller's outgoing requests, newest first.
func (s *InterestService) ListSent(ctx context.Context, userID uuid.UUID) ([]domain.InterestRequest, error) {
	reqs, err := s.interestRepo.ListSent(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range reqs {
		redactContacts(&reqs[i])
	}
	return reqs, nil
}

// ListReceived returns the caller's incoming requests, newest first.
func (s *InterestService) ListReceived(ctx context.Context, userID uuid.UUID) ([]domain.InterestRequest, error) {
	reqs, err := s.interestRepo.ListReceived(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range reqs {
		redactContacts(&reqs[i])
	}
	return reqs, nil
}

// PendingCount returns the number of unresolved incoming requests.
func (s *InterestService) PendingCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.interestRepo.CountPending(ctx, userID)
}

func (s *InterestService) notifyCreated(ctx context.Context, req *domain.InterestRequest, sender, receiver *domain.User, sessionTitle *string) {
	if s.mailer != nil {
		if err := s.mailer.SendInterestNotification(receiver.Email, sender.DisplayLabel(), "new", sessionTitle); err != nil {
			s.log.Warn().Err(err).Str("request_id", req.ID.String()).Msg("interest email failed")
		}
	}
	if s.notifier != nil {
		count, err := s.interestRepo.CountPending(ctx, req.ReceiverID)
		if err != nil {
			s.log.Warn().Err(err).Str("request_id", req.ID.String()).Msg("pending count failed")
		}
		s.notifier.InterestCreated(req, count)
	}
}

func (s *InterestService) notifyResolved(ctx context.Context, req *domain.InterestRequest) {
	if s.mailer != nil {
		sender, err := s.userRepo.GetByID(ctx, req.SenderID)
		if err != nil || sender == nil {
			s.log.Warn().Err(err).Str("request_id", req.ID.String()).Msg("sender lookup for notification failed")
		} else if err := s.mailer.SendInterestNotification(sender.Email, "", req.Status, req.GymPostTitle); err != nil {
			s.log.Warn().Err(err).Str("request_id", req.ID.String()).Msg("interest email failed")
		}
	}
	if s.notifier != nil {
		s.notifier.InterestResolved(req)
	}
}

// redactContacts strips both parties' contact fields unless the
// request has been accepted.
func redactContacts(req *domain.InterestRequest) {
	if req.Status == domain.InterestAccepted {
		return
	}
	req.SenderEmail = nil
	req.SenderPhone = nil
	req.ReceiverEmail = nil
	req.ReceiverPhone = nil
}
