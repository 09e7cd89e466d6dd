package core

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/edvin/pos/internal/api/request"
	"github.com/edvin/pos/internal/model"
)

// BillingService derives the read-only bill list from completed and paid
// orders. Bills are never persisted.
type BillingService struct {
	db DB
}

func NewBillingService(db DB) *BillingService {
	return &BillingService{db: db}
}

// List returns one page of bills, newest first, plus the total matching
// count.
func (s *BillingService) List(ctx context.Context, f request.BillingFilter, pg request.Pagination) ([]model.Bill, int, error) {
	where, args := billingFilterSQL(f)

	var total int
	err := s.db.QueryRow(ctx, "SELECT count(*) FROM orders o"+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count bills: %w", err)
	}

	query := `SELECT o.id, o.order_number, o.customer_name, o.total, o.status, o.payment_method, o.tax_rate, o.created_at, o.updated_at
		 FROM orders o` + where +
		fmt.Sprintf(" ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pg.PageSize, pg.Offset())

	orders, err := s.queryOrders(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}

	bills := make([]model.Bill, len(orders))
	for i, o := range orders {
		bills[i] = model.BillFromOrder(o)
	}
	return bills, total, nil
}

// ExportCSV streams the full filtered bill list as CSV.
func (s *BillingService) ExportCSV(ctx context.Context, f request.BillingFilter, w io.Writer) error {
	where, args := billingFilterSQL(f)
	query := `SELECT o.id, o.order_number, o.customer_name, o.total, o.status, o.payment_method, o.tax_rate, o.created_at, o.updated_at
		 FROM orders o` + where + " ORDER BY o.created_at DESC"

	orders, err := s.queryOrders(ctx, query, args)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"order_number", "customer_name", "status", "payment_method", "subtotal", "tax", "total", "created_at"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, o := range orders {
		b := model.BillFromOrder(o)
		record := []string{
			b.OrderNumber,
			b.CustomerName,
			b.Status,
			b.PaymentMethod,
			strconv.FormatFloat(round2(b.Subtotal), 'f', 2, 64),
			strconv.FormatFloat(round2(b.Tax), 'f', 2, 64),
			strconv.FormatFloat(b.Total, 'f', 2, 64),
			b.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func (s *BillingService) queryOrders(ctx context.Context, query string, args []any) ([]model.Order, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	var ids []string
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.Total, &o.Status,
			&o.PaymentMethod, &o.TaxRate, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bill order: %w", err)
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bill orders: %w", err)
	}

	if len(ids) > 0 {
		items, err := loadOrderItems(ctx, s.db, ids)
		if err != nil {
			return nil, err
		}
		for i := range orders {
			orders[i].Items = items[orders[i].ID]
		}
	}
	return orders, nil
}

// billingFilterSQL restricts to the billable statuses, then applies the
// shared filter axes. A status filter outside completed/paid falls back to
// both, matching the narrowing-only contract of the billing view.
func billingFilterSQL(f request.BillingFilter) (string, []any) {
	var args []any
	where := " WHERE o.status IN ('completed', 'paid')"

	if f.Status == model.StatusCompleted || f.Status == model.StatusPaid {
		args = append(args, f.Status)
		where += fmt.Sprintf(" AND o.status = $%d", len(args))
	}
	if f.PaymentMethod != "" {
		args = append(args, f.PaymentMethod)
		where += fmt.Sprintf(" AND o.payment_method = $%d", len(args))
	}
	if f.From != nil {
		args = append(args, *f.From)
		where += fmt.Sprintf(" AND o.created_at >= $%d", len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		where += fmt.Sprintf(" AND o.created_at <= $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(" AND (o.order_number ILIKE $%d OR o.customer_name ILIKE $%[1]d)", len(args))
	}

	return where, args
}
