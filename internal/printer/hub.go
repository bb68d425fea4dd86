package printer

import (
	"context"
	"fmt"

	"github.com/vold333/kitchen-order-ticket/internal/enum"
	"github.com/vold333/kitchen-order-ticket/internal/ws"
)

// Broadcaster is satisfied by *ws.Hub.
type Broadcaster interface {
	BroadcastToRoom(room string, event ws.Event)
	HasSubscribers(room string) bool
}

// HubSink pushes jobs to websocket listeners: kitchen tickets go to the
// kitchen room, payment bills to the cashier room.
type HubSink struct {
	hub Broadcaster
}

func NewHubSink(hub Broadcaster) *HubSink {
	return &HubSink{hub: hub}
}

// Room returns the websocket room a receipt kind is delivered to.
func Room(kind string) string {
	if kind == KindPaymentBill {
		return enum.RoomCashier
	}
	return enum.RoomKitchen
}

func (s *HubSink) Print(ctx context.Context, job Job) error {
	room := Room(job.Receipt.Kind)
	if !s.hub.HasSubscribers(room) {
		return fmt.Errorf("%w: no %s display connected", ErrUnavailable, room)
	}

	event, err := ws.NewEvent("receipt."+job.Receipt.Kind, job)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	s.hub.BroadcastToRoom(room, event)
	return nil
}
