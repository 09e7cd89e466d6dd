package core

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/edvin/pos/internal/api/request"
)

// AnalyticsService computes the sales analytics snapshot: daily revenue,
// top items, payment distribution, hourly histogram, summary with
// period-over-period growth, and the dynamic filter option lists.
type AnalyticsService struct {
	db DB
}

func NewAnalyticsService(db DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// DailyRevenue is one calendar day's revenue and order count. Days with no
// matching orders do not appear.
type DailyRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// TopMenuItem is a line-item roll-up keyed by item name.
type TopMenuItem struct {
	Name    string  `json:"name"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// PaymentMethodCount is one payment method's share of the matched orders.
type PaymentMethodCount struct {
	Method     string  `json:"method"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// HourlyOrders is one hour-of-day bucket.
type HourlyOrders struct {
	Hour   string `json:"hour"`
	Orders int    `json:"orders"`
}

// Summary holds window totals and growth against the immediately preceding
// window of equal length.
type Summary struct {
	TotalRevenue      float64 `json:"total_revenue"`
	TotalOrders       int     `json:"total_orders"`
	AverageOrderValue float64 `json:"average_order_value"`
	RevenueGrowth     float64 `json:"revenue_growth"`
	OrdersGrowth      float64 `json:"orders_growth"`
}

// FilterOptions lists the distinct values available for client-side filter
// controls.
type FilterOptions struct {
	Categories     []string `json:"categories"`
	PaymentMethods []string `json:"payment_methods"`
	Statuses       []string `json:"statuses"`
}

// Snapshot is the full analytics payload for one filter specification.
type Snapshot struct {
	DailyRevenue   []DailyRevenue       `json:"daily_revenue"`
	TopMenuItems   []TopMenuItem        `json:"top_menu_items"`
	PaymentMethods []PaymentMethodCount `json:"payment_methods"`
	HourlyOrders   []HourlyOrders       `json:"hourly_orders"`
	Summary        Summary              `json:"summary"`
	FilterOptions  FilterOptions        `json:"filter_options"`
}

// Snapshot runs the independent aggregation passes concurrently over the
// shared pool. Any query failure fails the whole snapshot; there is no
// partial result.
func (s *AnalyticsService) Snapshot(ctx context.Context, f request.AnalyticsFilter) (*Snapshot, error) {
	snap := &Snapshot{
		DailyRevenue:   []DailyRevenue{},
		TopMenuItems:   []TopMenuItem{},
		PaymentMethods: []PaymentMethodCount{},
		HourlyOrders:   []HourlyOrders{},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		daily, err := s.dailyRevenue(ctx, f)
		if err == nil {
			snap.DailyRevenue = daily
		}
		return err
	})
	g.Go(func() error {
		top, err := s.topMenuItems(ctx, f)
		if err == nil {
			snap.TopMenuItems = top
		}
		return err
	})
	g.Go(func() error {
		methods, err := s.paymentMethods(ctx, f)
		if err == nil {
			snap.PaymentMethods = methods
		}
		return err
	})
	g.Go(func() error {
		hourly, err := s.hourlyOrders(ctx, f)
		if err == nil {
			snap.HourlyOrders = hourly
		}
		return err
	})
	g.Go(func() error {
		summary, err := s.summary(ctx, f)
		if err == nil {
			snap.Summary = *summary
		}
		return err
	})
	g.Go(func() error {
		opts, err := s.filterOptions(ctx)
		if err == nil {
			snap.FilterOptions = *opts
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *AnalyticsService) dailyRevenue(ctx context.Context, f request.AnalyticsFilter) ([]DailyRevenue, error) {
	where, args := analyticsFilterSQL(f)
	rows, err := s.db.Query(ctx,
		`SELECT to_char(o.created_at, 'YYYY-MM-DD') AS day, sum(o.total), count(*)
		 FROM orders o`+where+`
		 GROUP BY day ORDER BY day`, args...)
	if err != nil {
		return nil, fmt.Errorf("daily revenue: %w", err)
	}
	defer rows.Close()

	series := []DailyRevenue{}
	for rows.Next() {
		var d DailyRevenue
		if err := rows.Scan(&d.Date, &d.Revenue, &d.Orders); err != nil {
			return nil, fmt.Errorf("scan daily revenue: %w", err)
		}
		d.Revenue = round2(d.Revenue)
		series = append(series, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily revenue: %w", err)
	}
	return series, nil
}

func (s *AnalyticsService) topMenuItems(ctx context.Context, f request.AnalyticsFilter) ([]TopMenuItem, error) {
	where, args := analyticsFilterSQL(f)

	// The category filter joins line items against the catalog on
	// name+category; items are denormalized snapshots, so name is the key.
	categoryCond := ""
	if f.Category != "" {
		args = append(args, f.Category)
		categoryCond = fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM menu_items m WHERE m.name = i.name AND m.category = $%d)", len(args))
	}

	rows, err := s.db.Query(ctx,
		`SELECT i.name, sum(i.quantity), sum(i.quantity * i.price)
		 FROM orders o JOIN order_items i ON i.order_id = o.id`+where+categoryCond+`
		 GROUP BY i.name ORDER BY sum(i.quantity) DESC LIMIT 10`, args...)
	if err != nil {
		return nil, fmt.Errorf("top menu items: %w", err)
	}
	defer rows.Close()

	items := []TopMenuItem{}
	for rows.Next() {
		var it TopMenuItem
		if err := rows.Scan(&it.Name, &it.Orders, &it.Revenue); err != nil {
			return nil, fmt.Errorf("scan top menu item: %w", err)
		}
		it.Revenue = round2(it.Revenue)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate top menu items: %w", err)
	}
	return items, nil
}

func (s *AnalyticsService) paymentMethods(ctx context.Context, f request.AnalyticsFilter) ([]PaymentMethodCount, error) {
	where, args := analyticsFilterSQL(f)
	rows, err := s.db.Query(ctx,
		`SELECT coalesce(nullif(o.payment_method, ''), 'Unknown'), count(*)
		 FROM orders o`+where+`
		 GROUP BY 1 ORDER BY count(*) DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("payment methods: %w", err)
	}
	defer rows.Close()

	methods := []PaymentMethodCount{}
	total := 0
	for rows.Next() {
		var m PaymentMethodCount
		if err := rows.Scan(&m.Method, &m.Count); err != nil {
			return nil, fmt.Errorf("scan payment method: %w", err)
		}
		total += m.Count
		methods = append(methods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment methods: %w", err)
	}

	for i := range methods {
		if total > 0 {
			methods[i].Percentage = round1(float64(methods[i].Count) / float64(total) * 100)
		}
	}
	return methods, nil
}

func (s *AnalyticsService) hourlyOrders(ctx context.Context, f request.AnalyticsFilter) ([]HourlyOrders, error) {
	where, args := analyticsFilterSQL(f)
	rows, err := s.db.Query(ctx,
		`SELECT extract(hour FROM o.created_at)::int AS hr, count(*)
		 FROM orders o`+where+`
		 GROUP BY hr ORDER BY hr`, args...)
	if err != nil {
		return nil, fmt.Errorf("hourly orders: %w", err)
	}
	defer rows.Close()

	buckets := []HourlyOrders{}
	for rows.Next() {
		var hour, count int
		if err := rows.Scan(&hour, &count); err != nil {
			return nil, fmt.Errorf("scan hourly orders: %w", err)
		}
		buckets = append(buckets, HourlyOrders{Hour: fmt.Sprintf("%02d:00", hour), Orders: count})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hourly orders: %w", err)
	}
	return buckets, nil
}

func (s *AnalyticsService) summary(ctx context.Context, f request.AnalyticsFilter) (*Summary, error) {
	where, args := analyticsFilterSQL(f)

	var revenue, avg float64
	var orders int
	err := s.db.QueryRow(ctx,
		`SELECT coalesce(sum(o.total), 0), count(*), coalesce(avg(o.total), 0)
		 FROM orders o`+where, args...,
	).Scan(&revenue, &orders, &avg)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}

	// The prior window keeps only the date bounds and the implicit
	// cancelled exclusion, mirroring how the current window defaults.
	prevFrom, prevTo := f.PreviousWindow()
	var prevRevenue float64
	var prevOrders int
	err = s.db.QueryRow(ctx,
		`SELECT coalesce(sum(total), 0), count(*)
		 FROM orders WHERE created_at >= $1 AND created_at <= $2 AND status <> 'cancelled'`,
		prevFrom, prevTo,
	).Scan(&prevRevenue, &prevOrders)
	if err != nil {
		return nil, fmt.Errorf("previous period summary: %w", err)
	}

	return &Summary{
		TotalRevenue:      round2(revenue),
		TotalOrders:       orders,
		AverageOrderValue: round2(avg),
		RevenueGrowth:     round1(growth(revenue, prevRevenue)),
		OrdersGrowth:      round1(growth(float64(orders), float64(prevOrders))),
	}, nil
}

func (s *AnalyticsService) filterOptions(ctx context.Context) (*FilterOptions, error) {
	opts := &FilterOptions{
		Categories:     []string{},
		PaymentMethods: []string{},
		Statuses:       []string{},
	}

	collect := func(query string, dest *[]string) error {
		rows, err := s.db.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var v string
			if err := rows.Scan(&v); err != nil {
				return err
			}
			*dest = append(*dest, v)
		}
		return rows.Err()
	}

	if err := collect(`SELECT DISTINCT category FROM menu_items WHERE category <> '' ORDER BY category`, &opts.Categories); err != nil {
		return nil, fmt.Errorf("filter categories: %w", err)
	}
	if err := collect(`SELECT DISTINCT payment_method FROM orders WHERE payment_method <> '' ORDER BY payment_method`, &opts.PaymentMethods); err != nil {
		return nil, fmt.Errorf("filter payment methods: %w", err)
	}
	if err := collect(`SELECT DISTINCT status FROM orders WHERE status <> '' ORDER BY status`, &opts.Statuses); err != nil {
		return nil, fmt.Errorf("filter statuses: %w", err)
	}
	return opts, nil
}

// growth returns the period-over-period change in percent. A zero prior
// period reads as 100% when anything happened this period, 0% otherwise.
func growth(current, previous float64) float64 {
	switch {
	case previous > 0:
		return (current - previous) / previous * 100
	case current > 0:
		return 100
	default:
		return 0
	}
}

// analyticsFilterSQL renders the analytics filter into a WHERE clause.
// When no explicit status is requested, cancelled orders are excluded by
// default.
func analyticsFilterSQL(f request.AnalyticsFilter) (string, []any) {
	args := []any{f.From, f.To}
	where := " WHERE o.created_at >= $1 AND o.created_at <= $2"

	if f.Status != "" {
		args = append(args, f.Status)
		where += fmt.Sprintf(" AND o.status = $%d", len(args))
	} else {
		where += " AND o.status <> 'cancelled'"
	}
	if f.PaymentMethod != "" {
		args = append(args, f.PaymentMethod)
		where += fmt.Sprintf(" AND o.payment_method = $%d", len(args))
	}
	if f.MinAmount != nil {
		args = append(args, *f.MinAmount)
		where += fmt.Sprintf(" AND o.total >= $%d", len(args))
	}
	if f.MaxAmount != nil {
		args = append(args, *f.MaxAmount)
		where += fmt.Sprintf(" AND o.total <= $%d", len(args))
	}

	return where, args
}
