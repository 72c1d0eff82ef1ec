package listeners

import (
	"github.com/shashiranjanraj/staybook/pkg/audit"
	"github.com/shashiranjanraj/staybook/pkg/event"
)

// Recorder stores activity entries. *audit.Writer satisfies it.
type Recorder interface {
	Record(e audit.Entry)
}

// Audit records every event fired on bus.
func Audit(bus *event.Bus, rec Recorder) {
	bus.Listen("*", func(e event.Event) {
		rec.Record(audit.NewEntry(e.Name, e.At, e.Payload))
	})
}
