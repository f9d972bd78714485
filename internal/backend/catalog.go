package backend

import (
	"context"
	"fmt"
	"strings"

	"busfront/internal/domain"
	"busfront/internal/utils"
)

// ListBuses returns the unfiltered bus catalog.
func (c *Client) ListBuses(ctx context.Context) ([]domain.Bus, error) {
	var out []domain.Bus
	if err := c.get(ctx, "/api/buses", "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetBus(ctx context.Context, id int64) (domain.Bus, error) {
	var out domain.Bus
	err := c.get(ctx, fmt.Sprintf("/api/buses/%d", id), "", &out)
	if domain.IsNotFound(err) {
		return out, domain.NotFoundError{Resource: "bus"}
	}
	if err != nil {
		return out, err
	}
	return out, nil
}

// SearchBuses queries by route and travel date. date may carry a time-of-day
// component ("2024-03-01T10:00"); it is truncated to the calendar day before
// being sent.
func (c *Client) SearchBuses(ctx context.Context, source, destination, date string) ([]domain.Bus, error) {
	q := query(map[string]string{
		"source":      strings.TrimSpace(source),
		"destination": strings.TrimSpace(destination),
		"date":        utils.DateOnly(date),
	})
	var out []domain.Bus
	if err := c.get(ctx, "/api/buses/search?"+q, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}
