package core

import (
	"context"
	"fmt"
	"time"

	"github.com/edvin/pos/internal/api/request"
	"github.com/edvin/pos/internal/model"
	"github.com/edvin/pos/internal/platform"
)

// MenuItemService owns the menu catalog.
type MenuItemService struct {
	db DB
}

func NewMenuItemService(db DB) *MenuItemService {
	return &MenuItemService{db: db}
}

func (s *MenuItemService) Create(ctx context.Context, req request.CreateMenuItem) (*model.MenuItem, error) {
	now := time.Now()
	item := &model.MenuItem{
		ID:          platform.NewID(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Available:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO menu_items (id, name, description, price, category, available, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		item.ID, item.Name, item.Description, item.Price, item.Category,
		item.Available, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create menu item: %w", err)
	}
	return item, nil
}

func (s *MenuItemService) GetByID(ctx context.Context, id string) (*model.MenuItem, error) {
	var m model.MenuItem
	err := s.db.QueryRow(ctx,
		`SELECT id, name, description, price, category, available, created_at, updated_at
		 FROM menu_items WHERE id = $1`, id,
	).Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.Category,
		&m.Available, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("get menu item %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get menu item %s: %w", id, err)
	}
	return &m, nil
}

// List returns one page of menu items, newest first, plus the total
// matching count.
func (s *MenuItemService) List(ctx context.Context, f request.MenuItemFilter, pg request.Pagination) ([]model.MenuItem, int, error) {
	where, args := menuItemFilterSQL(f)

	var total int
	err := s.db.QueryRow(ctx, "SELECT count(*) FROM menu_items m"+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count menu items: %w", err)
	}

	query := `SELECT m.id, m.name, m.description, m.price, m.category, m.available, m.created_at, m.updated_at
		 FROM menu_items m` + where +
		fmt.Sprintf(" ORDER BY m.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pg.PageSize, pg.Offset())

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()

	var items []model.MenuItem
	for rows.Next() {
		var m model.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.Category,
			&m.Available, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate menu items: %w", err)
	}

	return items, total, nil
}

// Update applies a partial merge and refreshes updated_at. Historical
// orders keep their snapshot prices untouched.
func (s *MenuItemService) Update(ctx context.Context, id string, req request.UpdateMenuItem) (*model.MenuItem, error) {
	item, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	item.UpdatedAt = time.Now()

	_, err = s.db.Exec(ctx,
		`UPDATE menu_items SET name = $1, description = $2, price = $3, category = $4, available = $5, updated_at = $6
		 WHERE id = $7`,
		item.Name, item.Description, item.Price, item.Category, item.Available, item.UpdatedAt, item.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update menu item %s: %w", id, err)
	}
	return item, nil
}

func (s *MenuItemService) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM menu_items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete menu item %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete menu item %s: %w", id, ErrNotFound)
	}
	return nil
}

func menuItemFilterSQL(f request.MenuItemFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Category != "" {
		add("m.category = $%d", f.Category)
	}
	if f.Available != nil {
		add("m.available = $%d", *f.Available)
	}
	if f.Search != "" {
		add("(m.name ILIKE $%d OR m.description ILIKE $%[1]d OR m.category ILIKE $%[1]d)", "%"+f.Search+"%")
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
