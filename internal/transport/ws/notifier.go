package ws

import (
	"github.com/liftlink/backend/internal/domain"
	"github.com/rs/zerolog"
)

// HubNotifier implements service.Notifier using the WebSocket Hub. The
// receiver of a new request also gets a pending_count event so badge
// counters stay current without a refetch.
type HubNotifier struct {
	hub *Hub
	log zerolog.Logger
}

func NewHubNotifier(hub *Hub, log zerolog.Logger) *HubNotifier {
	return &HubNotifier{hub: hub, log: log}
}

func (n *HubNotifier) InterestCreated(req *domain.InterestRequest, pendingCount int) {
	evt, err := NewEvent(EventTypeInterestNew, InterestPayload{InterestRequest: *req})
	if err != nil {
		n.log.Error().Err(err).Msg("ws notifier: marshal error")
		return
	}
	n.hub.SendToUser(req.ReceiverID, evt)

	countEvt, err := NewEvent(EventTypePendingCount, PendingCountPayload{Count: pendingCount})
	if err != nil {
		return
	}
	n.hub.SendToUser(req.ReceiverID, countEvt)
}

func (n *HubNotifier) InterestResolved(req *domain.InterestRequest) {
	evt, err := NewEvent(EventTypeInterestResolved, InterestPayload{InterestRequest: *req})
	if err != nil {
		n.log.Error().Err(err).Msg("ws notifier: marshal error")
		return
	}
	n.hub.SendToUser(req.SenderID, evt)
}
