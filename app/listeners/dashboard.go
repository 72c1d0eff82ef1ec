// Package listeners connects domain events to their side effects.
package listeners

import (
	"time"

	"github.com/shashiranjanraj/staybook/app/services"
	"github.com/shashiranjanraj/staybook/pkg/event"
)

// Publisher receives dashboard messages. *ws.Hub satisfies it.
type Publisher interface {
	Publish(v any)
}

// Message is what the admin dashboard receives over the websocket.
type Message struct {
	Event   string    `json:"event"`
	Payload any       `json:"payload"`
	At      time.Time `json:"at"`
}

// DashboardEvents are forwarded to connected admin dashboards.
var DashboardEvents = []string{
	services.EventBookingCreated,
	services.EventBookingCancelled,
	services.EventRoomCreated,
	services.EventRoomDeleted,
}

// Dashboard forwards booking and inventory events to pub.
func Dashboard(bus *event.Bus, pub Publisher) {
	for _, name := range DashboardEvents {
		bus.Listen(name, func(e event.Event) {
			pub.Publish(Message{Event: e.Name, Payload: e.Payload, At: e.At})
		})
	}
}
