package core

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edvin/pos/internal/api/request"
)

func boolPtr(b bool) *bool        { return &b }
func floatPtr(f float64) *float64 { return &f }

func TestMenuItemService_Create(t *testing.T) {
	db := new(mockDB)
	db.On("Exec", mock.Anything, mock.MatchedBy(func(sql string) bool {
		return strings.Contains(sql, "INSERT INTO menu_items")
	}), mock.Anything).Return(pgconn.CommandTag{}, nil)

	svc := NewMenuItemService(db)
	item, err := svc.Create(context.Background(), request.CreateMenuItem{
		Name:     "Carbonara",
		Price:    11.5,
		Category: "Pasta",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.True(t, item.Available, "availability defaults to true")
	assert.Equal(t, "Pasta", item.Category)
	db.AssertExpectations(t)
}

func TestMenuItemService_Create_Unavailable(t *testing.T) {
	db := new(mockDB)
	db.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(pgconn.CommandTag{}, nil)

	svc := NewMenuItemService(db)
	item, err := svc.Create(context.Background(), request.CreateMenuItem{
		Name:      "Seasonal Special",
		Price:     15,
		Category:  "Mains",
		Available: boolPtr(false),
	})

	require.NoError(t, err)
	assert.False(t, item.Available)
}

func TestMenuItemService_GetByID_NotFound(t *testing.T) {
	db := new(mockDB)
	db.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).
		Return(&mockRow{scanFunc: func(dest ...any) error { return pgx.ErrNoRows }})

	svc := NewMenuItemService(db)
	_, err := svc.GetByID(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMenuItemService_Update(t *testing.T) {
	now := time.Now()
	db := new(mockDB)
	db.On("QueryRow", mock.Anything, mock.MatchedBy(func(sql string) bool {
		return strings.Contains(sql, "FROM menu_items WHERE id = $1")
	}), mock.Anything).Return(&mockRow{scanFunc: func(dest ...any) error {
		*dest[0].(*string) = "item-1"
		*dest[1].(*string) = "Carbonara"
		*dest[2].(*string) = "Classic"
		*dest[3].(*float64) = 11.5
		*dest[4].(*string) = "Pasta"
		*dest[5].(*bool) = true
		*dest[6].(*time.Time) = now
		*dest[7].(*time.Time) = now
		return nil
	}})
	db.On("Exec", mock.Anything, mock.MatchedBy(func(sql string) bool {
		return strings.Contains(sql, "UPDATE menu_items SET")
	}), mock.Anything).Return(pgconn.CommandTag{}, nil)

	svc := NewMenuItemService(db)
	item, err := svc.Update(context.Background(), "item-1", request.UpdateMenuItem{
		Price:     floatPtr(12.5),
		Available: boolPtr(false),
	})

	require.NoError(t, err)
	assert.Equal(t, 12.5, item.Price)
	assert.False(t, item.Available)
	assert.Equal(t, "Carbonara", item.Name, "unset fields keep their values")
}

func TestMenuItemService_List(t *testing.T) {
	now := time.Now()
	db := new(mockDB)
	db.On("QueryRow", mock.Anything, mock.MatchedBy(func(sql string) bool {
		return strings.HasPrefix(sql, "SELECT count(*) FROM menu_items m")
	}), mock.Anything).Return(&mockRow{scanFunc: func(dest ...any) error {
		*dest[0].(*int) = 25
		return nil
	}})
	db.On("Query", mock.Anything, mock.MatchedBy(func(sql string) bool {
		return strings.Contains(sql, "ORDER BY m.created_at DESC LIMIT")
	}), mock.Anything).Return(newMockRows(func(dest ...any) error {
		*dest[0].(*string) = "item-1"
		*dest[1].(*string) = "Carbonara"
		*dest[2].(*string) = "Classic"
		*dest[3].(*float64) = 11.5
		*dest[4].(*string) = "Pasta"
		*dest[5].(*bool) = true
		*dest[6].(*time.Time) = now
		*dest[7].(*time.Time) = now
		return nil
	}), nil)

	svc := NewMenuItemService(db)
	items, total, err := svc.List(context.Background(),
		request.MenuItemFilter{Category: "Pasta"},
		request.Pagination{Page: 2, PageSize: 10})

	require.NoError(t, err)
	assert.Equal(t, 25, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Carbonara", items[0].Name)
}

func TestMenuItemService_Delete_NotFound(t *testing.T) {
	db := new(mockDB)
	db.On("Exec", mock.Anything, "DELETE FROM menu_items WHERE id = $1", mock.Anything).
		Return(pgconn.NewCommandTag("DELETE 0"), nil)

	svc := NewMenuItemService(db)
	assert.ErrorIs(t, svc.Delete(context.Background(), "item-1"), ErrNotFound)
}

func TestMenuItemFilterSQL(t *testing.T) {
	where, args := menuItemFilterSQL(request.MenuItemFilter{
		Category:  "Pizza",
		Available: boolPtr(true),
		Search:    "marg",
	})

	assert.Equal(t, " WHERE m.category = $1 AND m.available = $2 AND (m.name ILIKE $3 OR m.description ILIKE $3 OR m.category ILIKE $3)", where)
	assert.Equal(t, []any{"Pizza", true, "%marg%"}, args)
}
