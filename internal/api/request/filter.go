package request

import (
	"net/http"
	"strconv"
	"time"
)

// analyticsDefaultWindow is the trailing window used when no explicit date
// range is given.
const analyticsDefaultWindow = 30 * 24 * time.Hour

// OrderFilter holds the typed filter axes of the order list endpoint.
// Empty fields mean "no constraint".
type OrderFilter struct {
	Status        string
	PaymentMethod string
	From          *time.Time
	To            *time.Time
	Search        string
}

// ParseOrderFilter extracts order list filters from the query string.
func ParseOrderFilter(r *http.Request) OrderFilter {
	q := r.URL.Query()
	return OrderFilter{
		Status:        allAsEmpty(q.Get("status")),
		PaymentMethod: allAsEmpty(q.Get("paymentMethod")),
		From:          parseDate(q.Get("dateFrom")),
		To:            parseDate(q.Get("dateTo")),
		Search:        q.Get("q"),
	}
}

// MenuItemFilter holds the typed filter axes of the menu item list endpoint.
type MenuItemFilter struct {
	Category  string
	Available *bool
	Search    string
}

// ParseMenuItemFilter extracts menu item list filters from the query string.
func ParseMenuItemFilter(r *http.Request) MenuItemFilter {
	q := r.URL.Query()
	f := MenuItemFilter{
		Category: allAsEmpty(q.Get("category")),
		Search:   q.Get("q"),
	}
	if s := q.Get("available"); s != "" {
		if b, err := strconv.ParseBool(s); err == nil {
			f.Available = &b
		}
	}
	return f
}

// BillingFilter holds the typed filter axes of the billing list endpoint.
// Status narrows within the completed/paid set; empty means both.
type BillingFilter struct {
	Status        string
	PaymentMethod string
	From          *time.Time
	To            *time.Time
	Search        string
}

// ParseBillingFilter extracts billing list filters from the query string.
func ParseBillingFilter(r *http.Request) BillingFilter {
	q := r.URL.Query()
	return BillingFilter{
		Status:        allAsEmpty(q.Get("status")),
		PaymentMethod: allAsEmpty(q.Get("paymentMethod")),
		From:          parseDate(q.Get("dateFrom")),
		To:            parseDate(q.Get("dateTo")),
		Search:        q.Get("q"),
	}
}

// AnalyticsFilter is the resolved filter specification for the reporting
// engine. From and To are always set; the zero values of the remaining
// fields mean "no constraint". An empty Status still excludes cancelled
// orders downstream, which is the register's implicit default.
type AnalyticsFilter struct {
	From          time.Time
	To            time.Time
	PaymentMethod string
	Status        string
	Category      string
	MinAmount     *float64
	MaxAmount     *float64
}

// ParseAnalyticsFilter extracts the analytics filter set. When either date
// bound is missing or unparseable the filter falls back to the trailing
// 30-day window ending now.
func ParseAnalyticsFilter(r *http.Request) AnalyticsFilter {
	q := r.URL.Query()

	f := AnalyticsFilter{
		PaymentMethod: allAsEmpty(q.Get("paymentMethod")),
		Status:        allAsEmpty(q.Get("orderStatus")),
		Category:      allAsEmpty(q.Get("category")),
		MinAmount:     parseAmount(q.Get("minAmount")),
		MaxAmount:     parseAmount(q.Get("maxAmount")),
	}

	from := parseDate(q.Get("dateFrom"))
	to := parseDate(q.Get("dateTo"))
	if from != nil && to != nil {
		f.From, f.To = *from, *to
	} else {
		f.To = time.Now()
		f.From = f.To.Add(-analyticsDefaultWindow)
	}

	return f
}

// PreviousWindow returns the immediately preceding window of equal length,
// used for period-over-period growth.
func (f AnalyticsFilter) PreviousWindow() (time.Time, time.Time) {
	d := f.To.Sub(f.From)
	return f.From.Add(-d), f.From
}

func allAsEmpty(s string) string {
	if s == "all" {
		return ""
	}
	return s
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t
	}
	return nil
}

func parseAmount(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
