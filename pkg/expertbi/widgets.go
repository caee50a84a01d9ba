package expertbi

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

// ErrStale is returned when a newer fetch for the same widget started
// while this one was in flight. The caller should drop the result.
var ErrStale = errors.New("expertbi: widget data is stale")

// ChartDataset is one series of a generated chart.
type ChartDataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// ChartData is the aggregated label/series payload for a widget.
type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// WidgetData is the server's chart response for one widget.
type WidgetData struct {
	ChartData  ChartData       `json:"chart_data"`
	RenderSpec json.RawMessage `json:"render_spec"`
}

// ChartDataRequest is an ad hoc widget configuration for chart data.
type ChartDataRequest struct {
	Type    string      `json:"type"`
	Title   string      `json:"title,omitempty"`
	Config  ChartConfig `json:"config"`
	Filters []Filter    `json:"filters,omitempty"`
}

// WidgetDataFetcher serializes widget data fetches so rapid config edits
// cannot surface an older response over a newer one. Each FetchWidgetData
// call claims a per-widget sequence number; a response whose sequence is
// no longer current is reported as ErrStale.
type WidgetDataFetcher struct {
	client *Client

	mu   sync.Mutex
	seqs map[string]uint64
}

// NewWidgetDataFetcher creates a fetcher backed by the given client.
func NewWidgetDataFetcher(client *Client) *WidgetDataFetcher {
	return &WidgetDataFetcher{client: client, seqs: make(map[string]uint64)}
}

func (f *WidgetDataFetcher) claim(widgetID string) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seqs[widgetID]++
	return f.seqs[widgetID]
}

func (f *WidgetDataFetcher) current(widgetID string) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seqs[widgetID]
}

// FetchWidgetData computes chart data for a widget against its dataset.
// If another fetch for the same widget starts before this one returns,
// the result is discarded and ErrStale is returned.
func (f *WidgetDataFetcher) FetchWidgetData(ctx context.Context, widget Widget) (*WidgetData, error) {
	seq := f.claim(widget.ID)

	data, err := f.client.GetChartData(ctx, widget.DatasetID, ChartDataRequest{
		Type:    widget.Type,
		Title:   widget.Title,
		Config:  widget.Config,
		Filters: widget.Filters,
	})
	if err != nil {
		return nil, err
	}

	if f.current(widget.ID) != seq {
		return nil, ErrStale
	}
	return data, nil
}

// GetChartData computes chart data for an ad hoc widget configuration.
func (c *Client) GetChartData(ctx context.Context, datasetID int64, req ChartDataRequest) (*WidgetData, error) {
	var out WidgetData
	resp, err := c.newRequest(ctx).
		SetBody(req).
		SetResult(&out).
		Post(fmt.Sprintf("/datasets/%d/chart-data", datasetID))
	if err := c.checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}
