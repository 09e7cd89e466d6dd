package core

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// DashboardService feeds the back-office landing page: today-vs-yesterday
// metric cards and the sales/category charts.
type DashboardService struct {
	db DB
}

func NewDashboardService(db DB) *DashboardService {
	return &DashboardService{db: db}
}

// Metrics holds today's headline numbers with growth against yesterday.
// ItemsGrowth is the count of menu items added today, not a percentage.
type Metrics struct {
	TotalSales    float64 `json:"total_sales"`
	TotalOrders   int     `json:"total_orders"`
	AverageOrder  float64 `json:"average_order"`
	MenuItems     int     `json:"menu_items"`
	SalesGrowth   float64 `json:"sales_growth"`
	OrdersGrowth  float64 `json:"orders_growth"`
	AverageGrowth float64 `json:"average_growth"`
	ItemsGrowth   int     `json:"items_growth"`
}

// SalesPoint is one charted day, labeled with its weekday abbreviation.
type SalesPoint struct {
	Day   string  `json:"day"`
	Sales float64 `json:"sales"`
}

// CategoryShare is one category's share of charted revenue in percent.
type CategoryShare struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Charts bundles the dashboard chart payload.
type Charts struct {
	Sales      []SalesPoint    `json:"sales"`
	Categories []CategoryShare `json:"categories"`
}

type windowTotals struct {
	sales  float64
	orders int
	avg    float64
}

// Metrics aggregates today's totals against yesterday's. Cancelled orders
// are excluded throughout.
func (s *DashboardService) Metrics(ctx context.Context) (*Metrics, error) {
	now := time.Now()
	todayStart := startOfDay(now)
	todayEnd := todayStart.Add(24 * time.Hour)
	yesterdayStart := todayStart.Add(-24 * time.Hour)

	var today, yesterday windowTotals
	var availableItems, newItemsToday int

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.windowTotals(ctx, todayStart, todayEnd, &today)
	})
	g.Go(func() error {
		return s.windowTotals(ctx, yesterdayStart, todayStart, &yesterday)
	})
	g.Go(func() error {
		err := s.db.QueryRow(ctx, "SELECT count(*) FROM menu_items WHERE available").Scan(&availableItems)
		if err != nil {
			return fmt.Errorf("count available menu items: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		err := s.db.QueryRow(ctx,
			"SELECT count(*) FROM menu_items WHERE created_at >= $1 AND created_at < $2",
			todayStart, todayEnd).Scan(&newItemsToday)
		if err != nil {
			return fmt.Errorf("count new menu items: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Metrics{
		TotalSales:    today.sales,
		TotalOrders:   today.orders,
		AverageOrder:  today.avg,
		MenuItems:     availableItems,
		SalesGrowth:   round1(growth(today.sales, yesterday.sales)),
		OrdersGrowth:  round1(growth(float64(today.orders), float64(yesterday.orders))),
		AverageGrowth: round1(growth(today.avg, yesterday.avg)),
		ItemsGrowth:   newItemsToday,
	}, nil
}

// Charts aggregates daily sales and category revenue share over [from, to].
func (s *DashboardService) Charts(ctx context.Context, from, to time.Time) (*Charts, error) {
	charts := &Charts{Sales: []SalesPoint{}, Categories: []CategoryShare{}}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sales, err := s.dailySales(ctx, from, to)
		if err == nil {
			charts.Sales = sales
		}
		return err
	})
	g.Go(func() error {
		categories, err := s.categoryShares(ctx, from, to)
		if err == nil {
			charts.Categories = categories
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return charts, nil
}

func (s *DashboardService) windowTotals(ctx context.Context, from, to time.Time, out *windowTotals) error {
	err := s.db.QueryRow(ctx,
		`SELECT coalesce(sum(total), 0), count(*), coalesce(avg(total), 0)
		 FROM orders WHERE created_at >= $1 AND created_at < $2 AND status <> 'cancelled'`,
		from, to,
	).Scan(&out.sales, &out.orders, &out.avg)
	if err != nil {
		return fmt.Errorf("dashboard window totals: %w", err)
	}
	return nil
}

func (s *DashboardService) dailySales(ctx context.Context, from, to time.Time) ([]SalesPoint, error) {
	rows, err := s.db.Query(ctx,
		`SELECT to_char(date_trunc('day', created_at), 'Dy'), sum(total)
		 FROM orders WHERE created_at >= $1 AND created_at <= $2 AND status <> 'cancelled'
		 GROUP BY date_trunc('day', created_at)
		 ORDER BY date_trunc('day', created_at)`, from, to)
	if err != nil {
		return nil, fmt.Errorf("dashboard daily sales: %w", err)
	}
	defer rows.Close()

	sales := []SalesPoint{}
	for rows.Next() {
		var p SalesPoint
		if err := rows.Scan(&p.Day, &p.Sales); err != nil {
			return nil, fmt.Errorf("scan daily sales: %w", err)
		}
		p.Sales = round2(p.Sales)
		sales = append(sales, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily sales: %w", err)
	}
	return sales, nil
}

func (s *DashboardService) categoryShares(ctx context.Context, from, to time.Time) ([]CategoryShare, error) {
	// Lines keep an optional catalog link; snapshots whose menu item was
	// deleted (or was never linked) land in "Unknown".
	rows, err := s.db.Query(ctx,
		`SELECT coalesce(nullif(m.category, ''), 'Unknown'), sum(i.quantity * i.price)
		 FROM orders o
		 JOIN order_items i ON i.order_id = o.id
		 LEFT JOIN menu_items m ON m.id = i.menu_item_id
		 WHERE o.created_at >= $1 AND o.created_at <= $2 AND o.status <> 'cancelled'
		 GROUP BY 1 ORDER BY 2 DESC`, from, to)
	if err != nil {
		return nil, fmt.Errorf("dashboard category shares: %w", err)
	}
	defer rows.Close()

	shares := []CategoryShare{}
	var total float64
	for rows.Next() {
		var c CategoryShare
		if err := rows.Scan(&c.Name, &c.Value); err != nil {
			return nil, fmt.Errorf("scan category share: %w", err)
		}
		total += c.Value
		shares = append(shares, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category shares: %w", err)
	}

	for i := range shares {
		if total > 0 {
			shares[i].Value = round1(shares[i].Value / total * 100)
		}
	}
	return shares, nil
}
