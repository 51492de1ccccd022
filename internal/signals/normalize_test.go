package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Alias1177/MoodTracker/models"
)

func TestFearGreedScore(t *testing.T) {
	tests := []struct {
		name  string
		value int
		want  float64
	}{
		{"extreme fear is contrarian bullish", 0, 1.0},
		{"midpoint is neutral", 50, 0.0},
		{"extreme greed is contrarian bearish", 100, -1.0},
		{"fear zone", 25, 0.5},
		{"greed zone", 75, -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FearGreedScore(models.FearGreedData{Value: tt.value})
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestOnChainScore(t *testing.T) {
	tests := []struct {
		name string
		data models.OnChainData
		want float64
	}{
		{
			name: "everything bullish",
			data: models.OnChainData{
				DEX: models.DexMetrics{BuyPressure: models.PressureStrongBuy},
				TVL: models.TVLMetrics{Trend: models.TVLGrowing, Change7dPct: 8},
			},
			want: (0.8 + 0.5 + 0.4) / 3,
		},
		{
			name: "everything bearish",
			data: models.OnChainData{
				DEX: models.DexMetrics{BuyPressure: models.PressureStrongSell},
				TVL: models.TVLMetrics{Trend: models.TVLDeclining, Change7dPct: -8},
			},
			want: (-0.8 - 0.5 - 0.4) / 3,
		},
		{
			name: "mild change bucket",
			data: models.OnChainData{
				DEX: models.DexMetrics{BuyPressure: models.PressureBuy},
				TVL: models.TVLMetrics{Trend: models.TVLStable, Change7dPct: 3},
			},
			want: (0.4 + 0.0 + 0.2) / 3,
		},
		{
			name: "unknown categories score zero",
			data: models.OnChainData{
				DEX: models.DexMetrics{BuyPressure: "garbage"},
				TVL: models.TVLMetrics{Trend: "sideways-ish", Change7dPct: 1},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, OnChainScore(tt.data), 1e-9)
		})
	}
}

func TestWhaleScore(t *testing.T) {
	tests := []struct {
		name      string
		direction string
		netFlow   float64
		want      float64
	}{
		{"large accumulation", models.FlowAccumulating, 8000, 0.8},
		{"medium accumulation", models.FlowAccumulating, 2000, 0.5},
		{"small accumulation", models.FlowAccumulating, 500, 0.3},
		{"large distribution", models.FlowDistributing, -8000, -0.8},
		{"medium distribution", models.FlowDistributing, -2000, -0.5},
		{"small distribution", models.FlowDistributing, -500, -0.3},
		{"neutral direction ignores magnitude", models.FlowNeutral, 9000, 0},
		{"boundary 5000 falls in medium bucket", models.FlowAccumulating, 5000, 0.5},
		{"boundary 1000 falls in small bucket", models.FlowAccumulating, 1000, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WhaleScore(models.WhaleData{FlowDirection: tt.direction, NetFlow: tt.netFlow})
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestSentimentScoreClamps(t *testing.T) {
	assert.Equal(t, 1.0, SentimentScore(models.SentimentResult{Score: 1.5}))
	assert.Equal(t, -1.0, SentimentScore(models.SentimentResult{Score: -2}))
	assert.Equal(t, 0.4, SentimentScore(models.SentimentResult{Score: 0.4}))
	assert.Equal(t, 0.0, SentimentScore(models.SentimentResult{}))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, models.Clamp(3.7))
	assert.Equal(t, -1.0, models.Clamp(-1.01))
	assert.Equal(t, 0.25, models.Clamp(0.25))
}

func TestKeywordScore(t *testing.T) {
	tests := []struct {
		name string
		text string
		sign int // -1, 0, +1
	}{
		{"bullish vocabulary", "massive rally and breakout, new partnership announced", 1},
		{"bearish vocabulary", "exploit confirmed, fear of another dump and selloff", -1},
		{"no keywords", "the sky over lisbon is clear this week", 0},
		{"empty text", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KeywordScore(tt.text)
			switch tt.sign {
			case 1:
				assert.Positive(t, got)
			case -1:
				assert.Negative(t, got)
			default:
				assert.Zero(t, got)
			}
			assert.GreaterOrEqual(t, got, -1.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}
