package dashboard

import (
	"context"
	"fmt"

	"github.com/ziadkadry99/opsdash/internal/panels"
)

// LoadRoutes fetches the route documentation into the routes panel.
func (d *Dashboard) LoadRoutes(ctx context.Context) Update {
	var u Update
	routes, err := d.backend.Routes(ctx)
	if err != nil {
		u.add(targetRoutes, panels.ErrorWithHint(
			"Error loading documentation:",
			err.Error(),
			"Make sure the API server is running at "+d.backend.BaseURL(),
		))
		u.text(targetRoutesStatus, "✗ Failed to load")
		return u
	}
	u.add(targetRoutes, panels.Routes(routes))
	u.text(targetRoutesStatus, fmt.Sprintf("✓ Loaded %d routes", routes.Len()))
	return u
}

// LoadSource fetches the server source file into the source panel.
func (d *Dashboard) LoadSource(ctx context.Context) Update {
	var u Update
	src, err := d.backend.Source(ctx)
	if err != nil {
		u.add(targetSource, panels.Error("Error loading source: "+err.Error()))
		return u
	}
	u.add(targetSource, d.source.Source(src.File, src.Source))
	return u
}
