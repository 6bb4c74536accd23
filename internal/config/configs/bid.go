package configs

import "time"

// Bid configures the selection engine. CallTimeout bounds each catalog
// and journal call issued while serving one bid. RateLimit and RatePeriod
// feed the request rate limiter on the bid endpoint; a RateLimit of 0
// disables it.
type Bid struct {
	CallTimeout time.Duration `env:"CALL_TIMEOUT" envDefault:"2s"`
	RateLimit   int           `env:"RATE_LIMIT" envDefault:"0"`
	RatePeriod  time.Duration `env:"RATE_PERIOD" envDefault:"1m"`
}
