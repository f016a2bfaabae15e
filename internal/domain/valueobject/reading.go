package valueobject

// Delta is one precomputed trend change carried alongside a reading.
// Additive deltas hold the change in the indicator's native scale; return
// comparisons hold a ratio-based percent change. Either way the source
// adapter computes it, downstream code only formats it.
type Delta struct {
	Label string  // e.g. "1-year change", "6-month change"
	Value float64 // full precision; rounded at render time
	Unit  string  // "%", "$B" or "" for index points
}

// Detail is an auxiliary display row attached to a reading, such as the
// observation period or a component amount. Never used for status.
type Detail struct {
	Label string
	Value string
}

// Reading is the normalized observation an adapter produced for one
// indicator. A failed fetch yields Valid=false with Err populated; this is
// expected data, not an error condition.
type Reading struct {
	Valid     bool
	Value     float64
	AsOf      string // period label of the latest observation
	Freshness string // how fresh the upstream dataset is
	Source    string // human-readable source label
	Err       string // failure description when Valid is false
	Deltas    []Delta
	Details   []Detail
}

// FailedReading builds a reading for an upstream failure
func FailedReading(source, errMsg string) Reading {
	return Reading{
		Source: source,
		Err:    errMsg,
	}
}
