package core

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Metrics(t *testing.T) {
	db := new(mockDB)

	// Today and yesterday share the same window query; identical totals on
	// both sides pin every growth figure to zero.
	db.On("QueryRow", mock.Anything, mock.MatchedBy(func(sql string) bool {
		return strings.Contains(sql, "coalesce(sum(total), 0), count(*), coalesce(avg(total), 0)")
	}), mock.Anything).Return(&mockRow{scanFunc: func(dest ...any) error {
		*dest[0].(*float64) = 150.0
		*dest[1].(*int) = 5
		*dest[2].(*float64) = 30.0
		return nil
	}}).Twice()
	db.On("QueryRow", mock.Anything, "SELECT count(*) FROM menu_items WHERE available", mock.Anything).
		Return(&mockRow{scanFunc: func(dest ...any) error {
			*dest[0].(*int) = 18
			return nil
		}})
	db.On("QueryRow", mock.Anything, mock.MatchedBy(func(sql string) bool {
		return strings.Contains(sql, "FROM menu_items WHERE created_at >= $1")
	}), mock.Anything).Return(&mockRow{scanFunc: func(dest ...any) error {
		*dest[0].(*int) = 2
		return nil
	}})

	svc := NewDashboardService(db)
	metrics, err := svc.Metrics(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 150.0, metrics.TotalSales)
	assert.Equal(t, 5, metrics.TotalOrders)
	assert.Equal(t, 30.0, metrics.AverageOrder)
	assert.Equal(t, 18, metrics.MenuItems)
	assert.Equal(t, 0.0, metrics.SalesGrowth)
	assert.Equal(t, 0.0, metrics.OrdersGrowth)
	assert.Equal(t, 0.0, metrics.AverageGrowth)
	assert.Equal(t, 2, metrics.ItemsGrowth)
	db.AssertExpectations(t)
}

func TestDashboardService_Charts(t *testing.T) {
	db := new(mockDB)

	db.On("Query", mock.Anything, mock.MatchedBy(func(sql string) bool {
		return strings.Contains(sql, "to_char(date_trunc('day', created_at), 'Dy')")
	}), mock.Anything).Return(newMockRows(
		func(dest ...any) error {
			*dest[0].(*string) = "Mon"
			*dest[1].(*float64) = 100.005
			return nil
		},
		func(dest ...any) error {
			*dest[0].(*string) = "Tue"
			*dest[1].(*float64) = 50.0
			return nil
		},
	), nil)

	db.On("Query", mock.Anything, mock.MatchedBy(func(sql string) bool {
		return strings.Contains(sql, "LEFT JOIN menu_items m")
	}), mock.Anything).Return(newMockRows(
		func(dest ...any) error {
			*dest[0].(*string) = "Pizza"
			*dest[1].(*float64) = 75.0
			return nil
		},
		func(dest ...any) error {
			*dest[0].(*string) = "Unknown"
			*dest[1].(*float64) = 25.0
			return nil
		},
	), nil)

	svc := NewDashboardService(db)
	to := time.Now()
	charts, err := svc.Charts(context.Background(), to.Add(-7*24*time.Hour), to)

	require.NoError(t, err)
	require.Len(t, charts.Sales, 2)
	assert.Equal(t, SalesPoint{Day: "Mon", Sales: 100.01}, charts.Sales[0])

	// Category revenue is projected to percentage shares.
	require.Len(t, charts.Categories, 2)
	assert.Equal(t, CategoryShare{Name: "Pizza", Value: 75.0}, charts.Categories[0])
	assert.Equal(t, CategoryShare{Name: "Unknown", Value: 25.0}, charts.Categories[1])
}

func TestDashboardService_Charts_Empty(t *testing.T) {
	db := new(mockDB)
	db.On("Query", mock.Anything, mock.Anything, mock.Anything).Return(newEmptyMockRows(), nil)

	svc := NewDashboardService(db)
	charts, err := svc.Charts(context.Background(), time.Now().Add(-24*time.Hour), time.Now())

	require.NoError(t, err)
	assert.Empty(t, charts.Sales)
	assert.NotNil(t, charts.Sales)
	assert.Empty(t, charts.Categories)
	assert.NotNil(t, charts.Categories)
}
