package request

import (
	"net/http"
	"time"
)

// ParseChartRange resolves the dashboard chart window. Explicit from/to
// bounds win; otherwise a named range (1d, 7d, 30d, 90d, 1y) applies,
// defaulting to the trailing week.
func ParseChartRange(r *http.Request) (time.Time, time.Time) {
	q := r.URL.Query()

	from := parseDate(q.Get("from"))
	to := parseDate(q.Get("to"))
	if from != nil && to != nil {
		return *from, *to
	}

	end := time.Now()
	var span time.Duration
	switch q.Get("range") {
	case "1d":
		span = 24 * time.Hour
	case "30d":
		span = 30 * 24 * time.Hour
	case "90d":
		span = 90 * 24 * time.Hour
	case "1y":
		span = 365 * 24 * time.Hour
	default: // "7d" and anything unrecognized
		span = 7 * 24 * time.Hour
	}
	return end.Add(-span), end
}
