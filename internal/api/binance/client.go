// Package binance fetches candle series and ticker prices from the Binance
// public REST API.
package binance

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	platformhttp "github.com/Alias1177/MoodTracker/internal/platform/http"
	"github.com/Alias1177/MoodTracker/models"
)

// Client is a Binance market data client
type Client struct {
	httpClient *platformhttp.Client
	baseURL    string
	symbol     string
	logger     zerolog.Logger
}

func NewClient(httpClient *platformhttp.Client, baseURL, symbol string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		symbol:     symbol,
		logger:     log.With().Str("component", "binance").Str("symbol", symbol).Logger(),
	}
}

// GetCandles fetches a kline series for the given interval (e.g. "4h",
// "1d"), sorted oldest first.
func (c *Client) GetCandles(ctx context.Context, interval string, limit int) ([]models.Candle, error) {
	url := fmt.Sprintf("%s/klines?symbol=%s&interval=%s&limit=%d", c.baseURL, c.symbol, interval, limit)

	// Klines arrive as mixed-type arrays:
	// [openTime, "open", "high", "low", "close", "volume", closeTime, ...]
	var raw [][]any
	if err := c.httpClient.GetJSON(ctx, url, &raw); err != nil {
		return nil, fmt.Errorf("fetching klines: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty kline data returned")
	}

	candles := make([]models.Candle, 0, len(raw))
	for i, k := range raw {
		candle, err := parseKline(k)
		if err != nil {
			return nil, fmt.Errorf("parsing kline %d: %w", i, err)
		}
		candles = append(candles, candle)
	}

	// Sort candles oldest first for proper calculations
	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Timestamp.Before(candles[j].Timestamp)
	})

	if err := models.ValidateSeries(candles); err != nil {
		return nil, fmt.Errorf("invalid candle series: %w", err)
	}

	c.logger.Debug().Str("interval", interval).Int("count", len(candles)).Msg("fetched candles")
	return candles, nil
}

func parseKline(k []any) (models.Candle, error) {
	if len(k) < 6 {
		return models.Candle{}, fmt.Errorf("kline has %d fields, want at least 6", len(k))
	}

	openTime, ok := k[0].(float64)
	if !ok {
		return models.Candle{}, fmt.Errorf("open time is not a number")
	}

	fields := make([]float64, 5)
	for i := 1; i <= 5; i++ {
		s, ok := k[i].(string)
		if !ok {
			return models.Candle{}, fmt.Errorf("field %d is not a string", i)
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return models.Candle{}, fmt.Errorf("field %d: %w", i, err)
		}
		fields[i-1] = v
	}

	return models.Candle{
		Timestamp: time.UnixMilli(int64(openTime)).UTC(),
		Open:      fields[0],
		High:      fields[1],
		Low:       fields[2],
		Close:     fields[3],
		Volume:    fields[4],
	}, nil
}

type tickerResponse struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

// GetPrice fetches the last traded price for the configured symbol
func (c *Client) GetPrice(ctx context.Context) (float64, error) {
	url := fmt.Sprintf("%s/ticker/price?symbol=%s", c.baseURL, c.symbol)

	var resp tickerResponse
	if err := c.httpClient.GetJSON(ctx, url, &resp); err != nil {
		return 0, fmt.Errorf("fetching ticker: %w", err)
	}

	price, err := strconv.ParseFloat(resp.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing ticker price %q: %w", resp.Price, err)
	}
	if price <= 0 {
		return 0, fmt.Errorf("ticker returned non-positive price %f", price)
	}

	c.logger.Debug().Float64("price", price).Msg("fetched ticker price")
	return price, nil
}
