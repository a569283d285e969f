package swr

// Freshness describes whether a value may be served, and how.
type Freshness uint8

const (
	// Fresh values are served without any background work.
	Fresh Freshness = iota + 1
	// Stale values are served while a refresh runs in the background.
	Stale
	// Expired values must not be served.
	Expired
)

func (f Freshness) String() string {
	switch f {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// Classify reports the freshness of a value created at createdAt (unix
// seconds) as seen at now (unix seconds).
func Classify(now, createdAt int64, cc CacheControl) Freshness {
	maxAge, swr := cc.seconds()
	switch {
	case now <= createdAt+maxAge:
		return Fresh
	case now <= createdAt+maxAge+swr:
		return Stale
	default:
		return Expired
	}
}
