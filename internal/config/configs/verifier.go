package configs

import "time"

// Verifier configures the outbound fetcher used to inspect proof pages.
// Timeout bounds a whole fetch including redirects. RatePerSecond and Burst
// throttle fetches across all callers so the service cannot be used to flood
// a third-party site.
type Verifier struct {
	Timeout      time.Duration `env:"TIMEOUT" envDefault:"15s"`
	UserAgent    string        `env:"USER_AGENT" envDefault:"LinkswapBot/1.0 (+https://linkswap.io/bot; backlink verification)"`
	MaxRedirects int           `env:"MAX_REDIRECTS" envDefault:"5"`
	// MaxBodyBytes caps how much of a proof page is read and parsed.
	MaxBodyBytes  int64   `env:"MAX_BODY_BYTES" envDefault:"5242880"`
	RatePerSecond float64 `env:"RATE_PER_SECOND" envDefault:"10"`
	Burst         int     `env:"BURST" envDefault:"20"`
}
