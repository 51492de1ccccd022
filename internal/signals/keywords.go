package signals

import "strings"

// Keyword lists for the heuristic sentiment fallback, used when the
// sentiment model times out or returns unparsable output.
var bullishKeywords = []string{
	"bullish", "moon", "pump", "breakout", "buy", "accumulate",
	"undervalued", "gem", "rally", "green", "long", "hodl",
	"ath", "all time high", "adoption", "partnership", "upgrade",
}

var bearishKeywords = []string{
	"bearish", "dump", "crash", "sell", "short", "overvalued",
	"scam", "rug", "red", "dead", "bleeding", "collapse",
	"hack", "exploit", "lawsuit", "sec", "regulation",
}

// KeywordScore derives a rough sentiment score from bullish/bearish keyword
// counts in free text. The result is bounded by construction; empty or
// keyword-free text scores 0.
func KeywordScore(text string) float64 {
	lower := strings.ToLower(text)

	var bull, bear int
	for _, kw := range bullishKeywords {
		bull += strings.Count(lower, kw)
	}
	for _, kw := range bearishKeywords {
		bear += strings.Count(lower, kw)
	}

	total := bull + bear
	if total == 0 {
		return 0.0
	}
	return float64(bull-bear) / float64(total)
}
