package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration wraps time.Duration so that prediction timeframes serialize
// as human-readable strings ("24h0m0s") instead of nanosecond counts.
type Duration time.Duration

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Older logs stored raw nanoseconds
		var ns int64
		if err2 := json.Unmarshal(data, &ns); err2 == nil {
			*d = Duration(ns)
			return nil
		}
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parsing timeframe %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}
