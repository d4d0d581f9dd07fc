package dashboard

import (
	"context"

	"github.com/ziadkadry99/opsdash/internal/panels"
)

// LoadEvents fetches the recent request events into the events panel.
func (d *Dashboard) LoadEvents(ctx context.Context) Update {
	var u Update
	events, err := d.backend.Events(ctx)
	if err != nil {
		u.add(targetEvents, panels.Error("Error loading events: "+err.Error()))
		return u
	}
	u.add(targetEvents, panels.Events(events, d.cfg.Events.EmptyMessage))
	return u
}
