package market

// Config tunes the indicator enrichment windows.
type Config struct {
	// RSIPeriod is the lookback for RSI back-fill (default 14).
	RSIPeriod int
	// ShortMAPeriod/LongMAPeriod are the moving-average windows used when
	// the feed does not carry its own averages (defaults 10 and 30).
	ShortMAPeriod int
	LongMAPeriod  int
	// HistoryWindow caps the per-symbol close history (default 128).
	HistoryWindow int
}

// Normalize fills zero values with working defaults.
func (c Config) Normalize() Config {
	if c.RSIPeriod <= 0 {
		c.RSIPeriod = 14
	}
	if c.ShortMAPeriod <= 0 {
		c.ShortMAPeriod = 10
	}
	if c.LongMAPeriod <= 0 {
		c.LongMAPeriod = 30
	}
	if c.HistoryWindow <= 0 {
		c.HistoryWindow = 128
	}
	if c.HistoryWindow <= c.LongMAPeriod {
		c.HistoryWindow = c.LongMAPeriod * 2
	}
	return c
}
