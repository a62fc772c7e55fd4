package model

import "time"

// Pacing holds the scripted delays between scene milestones.
type Pacing struct {
	// Speed divides every scripted duration. Values <= 0 mean 1.
	Speed float64

	ScanSettle       time.Duration
	ExtractionReveal time.Duration
	ExtractionHold   time.Duration
	MapLoad          time.Duration
	LocationHold     time.Duration
	CountdownFrom    int
	CountdownDelay   time.Duration
	CountdownSettle  time.Duration
	WarningsDelay    time.Duration
	DisclosureDelay  time.Duration
}

// DefaultPacing returns the stock script timings.
func DefaultPacing() Pacing {
	return Pacing{
		Speed:            1,
		ScanSettle:       1000 * time.Millisecond,
		ExtractionReveal: 800 * time.Millisecond,
		ExtractionHold:   7000 * time.Millisecond,
		MapLoad:          1500 * time.Millisecond,
		LocationHold:     8000 * time.Millisecond,
		CountdownFrom:    10,
		CountdownDelay:   4000 * time.Millisecond,
		CountdownSettle:  2000 * time.Millisecond,
		WarningsDelay:    2000 * time.Millisecond,
		DisclosureDelay:  6000 * time.Millisecond,
	}
}

// Scale applies Speed to a scripted duration.
func (p Pacing) Scale(d time.Duration) time.Duration {
	if p.Speed <= 0 || p.Speed == 1 {
		return d
	}
	return time.Duration(float64(d) / p.Speed)
}

// Ms scales a duration given in milliseconds.
func (p Pacing) Ms(ms int) time.Duration {
	return p.Scale(time.Duration(ms) * time.Millisecond)
}
