package expertbi

import (
	"context"
	"fmt"
)

// WidgetPosition is a widget's slot on the dashboard grid.
type WidgetPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// ChartConfig mirrors the server-side widget configuration.
type ChartConfig struct {
	XAxis       string `json:"x_axis"`
	YAxis       string `json:"y_axis"`
	Aggregation string `json:"aggregation"`
	GroupBy     string `json:"group_by,omitempty"`
	Label       string `json:"label,omitempty"`
	SortOrder   string `json:"sort_order,omitempty"`
	Limit       int    `json:"limit,omitempty"`
	ColorScheme string `json:"color_scheme,omitempty"`
}

// Filter narrows the rows a widget charts.
type Filter struct {
	ID       string      `json:"id"`
	Column   string      `json:"column"`
	Operator string      `json:"operator"`
	Value    interface{} `json:"value"`
}

// Widget is a single chart placed on a dashboard.
type Widget struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	DatasetID int64          `json:"dataset_id,omitempty"`
	Config    ChartConfig    `json:"config"`
	Position  WidgetPosition `json:"position"`
	Filters   []Filter       `json:"filters"`
}

// Dashboard is a named collection of widgets.
type Dashboard struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Widgets     []Widget `json:"widgets"`
}

// DashboardList is a page of dashboards.
type DashboardList struct {
	Object  string      `json:"object"`
	Data    []Dashboard `json:"data"`
	HasMore bool        `json:"has_more"`
	Total   int64       `json:"total"`
}

type dashboardRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Widgets     []Widget `json:"widgets"`
}

// CreateDashboard creates a dashboard with the given widget layout.
func (c *Client) CreateDashboard(ctx context.Context, name, description string, widgets []Widget) (*Dashboard, error) {
	if widgets == nil {
		widgets = []Widget{}
	}
	var out Dashboard
	resp, err := c.newRequest(ctx).
		SetBody(dashboardRequest{Name: name, Description: description, Widgets: widgets}).
		SetResult(&out).
		Post("/dashboards")
	if err := c.checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDashboard fetches a dashboard by ID.
func (c *Client) GetDashboard(ctx context.Context, dashboardID string) (*Dashboard, error) {
	var out Dashboard
	resp, err := c.newRequest(ctx).
		SetResult(&out).
		Get("/dashboards/" + dashboardID)
	if err := c.checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListDashboards fetches one page of dashboards.
func (c *Client) ListDashboards(ctx context.Context, page, limit int) (*DashboardList, error) {
	var out DashboardList
	resp, err := c.newRequest(ctx).
		SetQueryParams(map[string]string{
			"page":  fmt.Sprintf("%d", page),
			"limit": fmt.Sprintf("%d", limit),
		}).
		SetResult(&out).
		Get("/dashboards")
	if err := c.checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateDashboard replaces a dashboard's name, description and widgets.
func (c *Client) UpdateDashboard(ctx context.Context, dashboard *Dashboard) (*Dashboard, error) {
	widgets := dashboard.Widgets
	if widgets == nil {
		widgets = []Widget{}
	}
	var out Dashboard
	resp, err := c.newRequest(ctx).
		SetBody(dashboardRequest{
			Name:        dashboard.Name,
			Description: dashboard.Description,
			Widgets:     widgets,
		}).
		SetResult(&out).
		Put("/dashboards/" + dashboard.ID)
	if err := c.checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteDashboard removes a dashboard.
func (c *Client) DeleteDashboard(ctx context.Context, dashboardID string) error {
	resp, err := c.newRequest(ctx).Delete("/dashboards/" + dashboardID)
	return c.checkResponse(resp, err)
}
