package engine

import "time"

// Ticker is the clock that drives the runner. It matches the subset of
// *time.Ticker the runner needs so tests can tick by hand.
type Ticker interface {
	C() <-chan time.Time
	Reset(d time.Duration)
	Stop()
}

type wallTicker struct {
	ticker *time.Ticker
}

// NewTicker returns a Ticker backed by time.Ticker.
func NewTicker(d time.Duration) Ticker {
	return &wallTicker{ticker: time.NewTicker(d)}
}

func (t *wallTicker) C() <-chan time.Time   { return t.ticker.C }
func (t *wallTicker) Reset(d time.Duration) { t.ticker.Reset(d) }
func (t *wallTicker) Stop()                 { t.ticker.Stop() }
