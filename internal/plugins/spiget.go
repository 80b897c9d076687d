package plugins

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type spigetResource struct {
	Name string `json:"name"`
	File struct {
		Type string `json:"type"`
	} `json:"file"`
}

// ResolveSpiget resolves a plugin by its numeric Spiget resource id.
func (c *Client) ResolveSpiget(ctx context.Context, id int) (Plugin, error) {
	url := fmt.Sprintf("%s/v2/resources/%d", c.spigetAPI, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return Plugin{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Plugin{}, fmt.Errorf("fetching Spiget resource %d: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Plugin{}, fmt.Errorf("HTTP %d from Spiget for resource %d", resp.StatusCode, id)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Plugin{}, err
	}
	var res spigetResource
	if err := json.Unmarshal(body, &res); err != nil {
		return Plugin{}, fmt.Errorf("parsing Spiget resource %d: %w", id, err)
	}
	if res.Name == "" {
		return Plugin{}, fmt.Errorf("spiget resource %d has no name", id)
	}

	return Plugin{
		Name: res.Name,
		URL:  fmt.Sprintf("%s/v2/resources/%d/download", c.spigetAPI, id),
	}, nil
}
