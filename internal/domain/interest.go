package domain

import (
	"time"

	"github.com/google/uuid"
)

// Interest request states. pending is the only non-terminal state; a
// request is resolved exactly once and never reopened.
const (
	InterestPending  = "pending"
	InterestAccepted = "accepted"
	InterestRejected = "rejected"
)

// InterestRequest is a directed connection proposal, optionally
// anchored to a gym session. Contact fields of either side are only
// populated on views of an accepted request.
type InterestRequest struct {
	ID         uuid.UUID  `json:"id"`
	SenderID   uuid.UUID  `json:"sender_id"`
	ReceiverID uuid.UUID  `json:"receiver_id"`
	GymPostID  *uuid.UUID `json:"gym_post_id,omitempty"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	// Joined fields
	SenderName          *string `json:"sender_name,omitempty"`
	SenderDisplayName   *string `json:"sender_display_name,omitempty"`
	SenderEmail         *string `json:"sender_email,omitempty"`
	SenderPhone         *string `json:"sender_phone,omitempty"`
	ReceiverName        *string `json:"receiver_name,omitempty"`
	ReceiverDisplayName *string `json:"receiver_display_name,omitempty"`
	ReceiverEmail       *string `json:"receiver_email,omitempty"`
	ReceiverPhone       *string `json:"receiver_phone,omitempty"`
	GymPostTitle        *string `json:"gym_post_title,omitempty"`
}
