package model

import "time"

// PriceTick is one update of a security's price/volume/indicator values.
// Ephemeral: produced by the market-data feed, consumed once, not persisted.
type PriceTick struct {
	Symbol           string  `json:"symbol"`
	CurrentPrice     float64 `json:"current_price"`
	PreviousClose    float64 `json:"previous_close"`
	DayChange        float64 `json:"day_change"`
	DayChangePercent float64 `json:"day_change_percent"`
	Volume           float64 `json:"volume"`

	// Technical indicators are optional; the feed may omit them and the
	// market ingester back-fills what it can from its rolling window.
	RSI          *float64 `json:"rsi,omitempty"`
	ShortMA      *float64 `json:"short_ma,omitempty"`
	LongMA       *float64 `json:"long_ma,omitempty"`
	FiftyTwoHigh *float64 `json:"fifty_two_week_high,omitempty"`
	FiftyTwoLow  *float64 `json:"fifty_two_week_low,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}
