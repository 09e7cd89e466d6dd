package core

import (
	"context"
	"fmt"
	"time"

	"github.com/edvin/pos/internal/api/request"
	"github.com/edvin/pos/internal/model"
	"github.com/edvin/pos/internal/platform"
)

// OrderService owns order intake, lifecycle transitions, and the order
// list/read/update/delete surface.
type OrderService struct {
	db      DB
	taxRate float64
}

func NewOrderService(db DB, taxRate float64) *OrderService {
	return &OrderService{db: db, taxRate: taxRate}
}

// Create inserts a new order and its line rows in one transaction. The
// order number comes from a database sequence, so concurrent creations
// cannot produce duplicates, and the total is always recomputed from the
// submitted lines.
func (s *OrderService) Create(ctx context.Context, req request.CreateOrder) (*model.Order, error) {
	items := make([]model.OrderItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = model.OrderItem{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			Price:      it.Price,
		}
	}

	now := time.Now()
	order := &model.Order{
		ID:            platform.NewID(),
		CustomerName:  req.CustomerName,
		Items:         items,
		Total:         round2(model.ItemsTotal(items)),
		Status:        model.StatusPending,
		PaymentMethod: req.PaymentMethod,
		TaxRate:       s.taxRate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create order: %w", err)
	}
	defer tx.Rollback(ctx)

	var seq int64
	if err := tx.QueryRow(ctx, "SELECT nextval('order_number_seq')").Scan(&seq); err != nil {
		return nil, fmt.Errorf("next order number: %w", err)
	}
	order.OrderNumber = fmt.Sprintf("ORD-%04d", seq)

	_, err = tx.Exec(ctx,
		`INSERT INTO orders (id, order_number, customer_name, total, status, payment_method, tax_rate, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		order.ID, order.OrderNumber, order.CustomerName, order.Total,
		order.Status, order.PaymentMethod, order.TaxRate, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	for _, it := range order.Items {
		_, err = tx.Exec(ctx,
			`INSERT INTO order_items (order_id, menu_item_id, name, quantity, price)
			 VALUES ($1, $2, $3, $4, $5)`,
			order.ID, it.MenuItemID, it.Name, it.Quantity, it.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("create order line %s: %w", it.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit create order: %w", err)
	}
	return order, nil
}

func (s *OrderService) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	err := s.db.QueryRow(ctx,
		`SELECT id, order_number, customer_name, total, status, payment_method, tax_rate, created_at, updated_at
		 FROM orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.Total, &o.Status,
		&o.PaymentMethod, &o.TaxRate, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("get order %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}

	items, err := loadOrderItems(ctx, s.db, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return &o, nil
}

// List returns one page of orders, newest first, plus the total matching
// count.
func (s *OrderService) List(ctx context.Context, f request.OrderFilter, pg request.Pagination) ([]model.Order, int, error) {
	where, args := orderFilterSQL(f)

	var total int
	err := s.db.QueryRow(ctx, "SELECT count(*) FROM orders o"+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := `SELECT o.id, o.order_number, o.customer_name, o.total, o.status, o.payment_method, o.tax_rate, o.created_at, o.updated_at
		 FROM orders o` + where +
		fmt.Sprintf(" ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pg.PageSize, pg.Offset())

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	var ids []string
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.Total, &o.Status,
			&o.PaymentMethod, &o.TaxRate, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate orders: %w", err)
	}

	if len(ids) > 0 {
		items, err := loadOrderItems(ctx, s.db, ids)
		if err != nil {
			return nil, 0, err
		}
		for i := range orders {
			orders[i].Items = items[orders[i].ID]
		}
	}

	return orders, total, nil
}

// Update applies a partial merge. Status writes are checked against the
// lifecycle transition table; a replaced line set recomputes the total.
func (s *OrderService) Update(ctx context.Context, id string, req request.UpdateOrder) (*model.Order, error) {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && *req.Status != order.Status {
		if !model.ValidStatus(*req.Status) {
			return nil, fmt.Errorf("unknown status %q: %w", *req.Status, ErrInvalidTransition)
		}
		if !model.CanTransition(order.Status, *req.Status) {
			return nil, fmt.Errorf("%s -> %s: %w", order.Status, *req.Status, ErrInvalidTransition)
		}
		order.Status = *req.Status
	}
	if req.CustomerName != nil {
		order.CustomerName = *req.CustomerName
	}
	if req.PaymentMethod != nil {
		order.PaymentMethod = *req.PaymentMethod
	}

	replaceItems := req.Items != nil
	if replaceItems {
		items := make([]model.OrderItem, len(req.Items))
		for i, it := range req.Items {
			items[i] = model.OrderItem{
				MenuItemID: it.MenuItemID,
				Name:       it.Name,
				Quantity:   it.Quantity,
				Price:      it.Price,
			}
		}
		order.Items = items
		order.Total = round2(model.ItemsTotal(items))
	}

	order.UpdatedAt = time.Now()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin update order: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE orders SET customer_name = $1, total = $2, status = $3, payment_method = $4, updated_at = $5
		 WHERE id = $6`,
		order.CustomerName, order.Total, order.Status, order.PaymentMethod, order.UpdatedAt, order.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update order %s: %w", id, err)
	}

	if replaceItems {
		if _, err := tx.Exec(ctx, "DELETE FROM order_items WHERE order_id = $1", order.ID); err != nil {
			return nil, fmt.Errorf("clear order lines %s: %w", id, err)
		}
		for _, it := range order.Items {
			_, err = tx.Exec(ctx,
				`INSERT INTO order_items (order_id, menu_item_id, name, quantity, price)
				 VALUES ($1, $2, $3, $4, $5)`,
				order.ID, it.MenuItemID, it.Name, it.Quantity, it.Price,
			)
			if err != nil {
				return nil, fmt.Errorf("replace order line %s: %w", it.Name, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit update order: %w", err)
	}
	return order, nil
}

// Delete hard-deletes an order; line rows cascade.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete order %s: %w", id, ErrNotFound)
	}
	return nil
}

// StatusCounts holds the live register counters: in-flight orders across
// all time plus today's completions.
type StatusCounts struct {
	Pending   int `json:"pending"`
	Preparing int `json:"preparing"`
	Ready     int `json:"ready"`
	Completed int `json:"completed"`
}

func (s *OrderService) StatusCounts(ctx context.Context) (*StatusCounts, error) {
	startOfDay := startOfDay(time.Now())
	endOfDay := startOfDay.Add(24 * time.Hour)

	var c StatusCounts
	err := s.db.QueryRow(ctx,
		`SELECT
			count(*) FILTER (WHERE status = 'pending'),
			count(*) FILTER (WHERE status = 'preparing'),
			count(*) FILTER (WHERE status = 'ready'),
			count(*) FILTER (WHERE status = 'completed' AND created_at >= $1 AND created_at < $2)
		 FROM orders`, startOfDay, endOfDay,
	).Scan(&c.Pending, &c.Preparing, &c.Ready, &c.Completed)
	if err != nil {
		return nil, fmt.Errorf("order status counts: %w", err)
	}
	return &c, nil
}

// loadOrderItems fetches the line rows for a batch of orders in one query.
// Shared with the billing projection.
func loadOrderItems(ctx context.Context, db DB, orderIDs []string) (map[string][]model.OrderItem, error) {
	rows, err := db.Query(ctx,
		`SELECT order_id, menu_item_id, name, quantity, price
		 FROM order_items WHERE order_id = ANY($1) ORDER BY id`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("load order lines: %w", err)
	}
	defer rows.Close()

	items := make(map[string][]model.OrderItem)
	for rows.Next() {
		var orderID string
		var it model.OrderItem
		if err := rows.Scan(&orderID, &it.MenuItemID, &it.Name, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		items[orderID] = append(items[orderID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order lines: %w", err)
	}
	return items, nil
}

// orderFilterSQL renders the typed order filter into a WHERE clause with
// positional parameters. Search is passed as an ILIKE parameter, never
// interpolated.
func orderFilterSQL(f request.OrderFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Status != "" {
		add("o.status = $%d", f.Status)
	}
	if f.PaymentMethod != "" {
		add("o.payment_method = $%d", f.PaymentMethod)
	}
	if f.From != nil {
		add("o.created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("o.created_at <= $%d", *f.To)
	}
	if f.Search != "" {
		add("(o.order_number ILIKE $%d OR o.customer_name ILIKE $%[1]d)", "%"+f.Search+"%")
	}

	if len(conds) == 0 {
		return "", nil
	}
	where := " WHERE " + conds[0]
	for _, c := range conds[1:] {
		where += " AND " + c
	}
	return where, args
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
