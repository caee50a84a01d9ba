package expertbi

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrWidgetNotFound is returned by builder operations naming an unknown widget.
var ErrWidgetNotFound = errors.New("expertbi: widget not found")

// DashboardBuilder edits a dashboard's widget layout locally and persists
// the whole layout with Save. It is not safe for concurrent use.
type DashboardBuilder struct {
	client    *Client
	dashboard *Dashboard
}

// EditDashboard starts a builder over the given dashboard.
func (c *Client) EditDashboard(dashboard *Dashboard) *DashboardBuilder {
	return &DashboardBuilder{client: c, dashboard: dashboard}
}

// Dashboard returns the layout being edited.
func (b *DashboardBuilder) Dashboard() *Dashboard {
	return b.dashboard
}

// AddWidget places a widget on the dashboard under a fresh ID and
// returns the assigned ID.
func (b *DashboardBuilder) AddWidget(widget Widget) string {
	widget.ID = uuid.NewString()
	if widget.Filters == nil {
		widget.Filters = []Filter{}
	}
	b.dashboard.Widgets = append(b.dashboard.Widgets, widget)
	return widget.ID
}

// DuplicateWidget copies a widget under a fresh ID, appending " (Copy)"
// to its title, and returns the new ID.
func (b *DashboardBuilder) DuplicateWidget(widgetID string) (string, error) {
	for _, widget := range b.dashboard.Widgets {
		if widget.ID == widgetID {
			clone := widget
			clone.ID = uuid.NewString()
			clone.Title = widget.Title + " (Copy)"
			clone.Filters = append([]Filter{}, widget.Filters...)
			b.dashboard.Widgets = append(b.dashboard.Widgets, clone)
			return clone.ID, nil
		}
	}
	return "", ErrWidgetNotFound
}

// RemoveWidget deletes a widget from the layout.
func (b *DashboardBuilder) RemoveWidget(widgetID string) error {
	for i, widget := range b.dashboard.Widgets {
		if widget.ID == widgetID {
			b.dashboard.Widgets = append(b.dashboard.Widgets[:i], b.dashboard.Widgets[i+1:]...)
			return nil
		}
	}
	return ErrWidgetNotFound
}

// MoveWidget reorders the layout by splicing the widget, identified by
// ID, to the target index. IDs are untouched; out-of-range indexes clamp
// to the list bounds.
func (b *DashboardBuilder) MoveWidget(widgetID string, toIndex int) error {
	widgets := b.dashboard.Widgets
	from := -1
	for i := range widgets {
		if widgets[i].ID == widgetID {
			from = i
			break
		}
	}
	if from == -1 {
		return ErrWidgetNotFound
	}

	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex > len(widgets)-1 {
		toIndex = len(widgets) - 1
	}
	if toIndex == from {
		return nil
	}

	moved := widgets[from]
	widgets = append(widgets[:from], widgets[from+1:]...)
	widgets = append(widgets, Widget{})
	copy(widgets[toIndex+1:], widgets[toIndex:])
	widgets[toIndex] = moved
	b.dashboard.Widgets = widgets
	return nil
}

// SetWidgetPosition repositions a widget, identified by ID, on the grid.
func (b *DashboardBuilder) SetWidgetPosition(widgetID string, position WidgetPosition) error {
	for i := range b.dashboard.Widgets {
		if b.dashboard.Widgets[i].ID == widgetID {
			b.dashboard.Widgets[i].Position = position
			return nil
		}
	}
	return ErrWidgetNotFound
}

// Save persists the whole layout and refreshes the builder's dashboard
// with the server's copy.
func (b *DashboardBuilder) Save(ctx context.Context) (*Dashboard, error) {
	saved, err := b.client.UpdateDashboard(ctx, b.dashboard)
	if err != nil {
		return nil, err
	}
	b.dashboard = saved
	return saved, nil
}
