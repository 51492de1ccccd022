// Package feargreed fetches the crypto Fear & Greed index from
// alternative.me.
package feargreed

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	platformhttp "github.com/Alias1177/MoodTracker/internal/platform/http"
	"github.com/Alias1177/MoodTracker/models"
)

// Client is a Fear & Greed index client
type Client struct {
	httpClient *platformhttp.Client
	baseURL    string
	logger     zerolog.Logger
}

func NewClient(httpClient *platformhttp.Client, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     log.With().Str("component", "feargreed").Logger(),
	}
}

type indexResponse struct {
	Data []struct {
		Value          string `json:"value"`
		Classification string `json:"value_classification"`
	} `json:"data"`
}

// GetIndex fetches the current index value (0 = extreme fear, 100 = extreme
// greed) with its classification label.
func (c *Client) GetIndex(ctx context.Context) (models.FearGreedData, error) {
	var resp indexResponse
	if err := c.httpClient.GetJSON(ctx, c.baseURL, &resp); err != nil {
		return models.FearGreedData{}, fmt.Errorf("fetching fear & greed index: %w", err)
	}
	if len(resp.Data) == 0 {
		return models.FearGreedData{}, fmt.Errorf("fear & greed response has no data")
	}

	value, err := strconv.Atoi(resp.Data[0].Value)
	if err != nil {
		return models.FearGreedData{}, fmt.Errorf("parsing index value %q: %w", resp.Data[0].Value, err)
	}

	data := models.FearGreedData{
		Value:          value,
		Classification: resp.Data[0].Classification,
		FetchedAt:      time.Now().UTC(),
	}
	c.logger.Debug().Int("value", value).Str("classification", data.Classification).Msg("fetched index")
	return data, nil
}
