// Dev seeder: fills an empty database with a menu and a month of orders
// so the dashboard and analytics screens have something to show.
//
// Usage: DATABASE_URL=postgres://... go run ./seeds/dev
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type menuEntry struct {
	name        string
	description string
	price       float64
	category    string
}

var menu = []menuEntry{
	{"Bruschetta", "Grilled bread, tomato, basil", 6.50, "Appetizers"},
	{"Calamari", "Fried squid with lemon aioli", 9.00, "Appetizers"},
	{"Margherita Pizza", "Tomato, mozzarella, basil", 12.00, "Main Courses"},
	{"Carbonara", "Spaghetti, guanciale, pecorino", 13.50, "Main Courses"},
	{"Grilled Salmon", "With seasonal vegetables", 18.00, "Main Courses"},
	{"Ribeye Steak", "300g, herb butter", 24.00, "Main Courses"},
	{"Tiramisu", "Espresso-soaked ladyfingers", 7.00, "Desserts"},
	{"Panna Cotta", "Vanilla cream, berry coulis", 6.50, "Desserts"},
	{"Espresso", "Double shot", 3.00, "Beverages"},
	{"House Red", "Glass of the house red", 6.00, "Beverages"},
	{"Sparkling Water", "750ml bottle", 3.50, "Beverages"},
	{"Garlic Bread", "With herb butter", 4.50, "Sides"},
}

var customers = []string{
	"Alice Martin", "Ben Okafor", "Carla Reyes", "Derek Huang",
	"Elena Petrova", "Frank Doyle", "Grace Kim", "Hassan Ali",
}

var paymentMethods = []string{"Cash", "Card", "Card", "Mobile"}

var statuses = []string{
	"completed", "completed", "completed", "paid", "paid",
	"pending", "preparing", "ready", "cancelled",
}

const taxRate = 0.08

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	itemIDs, err := seedMenu(ctx, pool)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed menu: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("seeded %d menu items\n", len(menu))

	count, err := seedOrders(ctx, pool, itemIDs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed orders: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("seeded %d orders\n", count)
}

func seedMenu(ctx context.Context, pool *pgxpool.Pool) (map[string]string, error) {
	ids := make(map[string]string, len(menu))
	now := time.Now()

	for _, m := range menu {
		id := uuid.New().String()
		_, err := pool.Exec(ctx,
			`INSERT INTO menu_items (id, name, description, price, category, available, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, true, $6, $6)`,
			id, m.name, m.description, m.price, m.category, now)
		if err != nil {
			return nil, err
		}
		ids[m.name] = id
	}
	return ids, nil
}

func seedOrders(ctx context.Context, pool *pgxpool.Pool, itemIDs map[string]string) (int, error) {
	count := 0
	now := time.Now()

	// Orders spread over the trailing 30 days, weighted towards lunch and
	// dinner hours.
	for day := 0; day < 30; day++ {
		orders := 4 + rand.Intn(8)
		for n := 0; n < orders; n++ {
			hour := 11 + rand.Intn(3)
			if rand.Intn(2) == 0 {
				hour = 18 + rand.Intn(4)
			}
			createdAt := now.AddDate(0, 0, -day).Truncate(24 * time.Hour).
				Add(time.Duration(hour)*time.Hour + time.Duration(rand.Intn(60))*time.Minute)

			if err := insertOrder(ctx, pool, itemIDs, createdAt); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

func insertOrder(ctx context.Context, pool *pgxpool.Pool, itemIDs map[string]string, createdAt time.Time) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var seq int64
	if err := tx.QueryRow(ctx, "SELECT nextval('order_number_seq')").Scan(&seq); err != nil {
		return err
	}

	lines := 1 + rand.Intn(3)
	total := 0.0
	type line struct {
		entry    menuEntry
		quantity int
	}
	picked := make([]line, 0, lines)
	for i := 0; i < lines; i++ {
		m := menu[rand.Intn(len(menu))]
		q := 1 + rand.Intn(2)
		picked = append(picked, line{entry: m, quantity: q})
		total += float64(q) * m.price
	}

	orderID := uuid.New().String()
	_, err = tx.Exec(ctx,
		`INSERT INTO orders (id, order_number, customer_name, total, status, payment_method, tax_rate, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`,
		orderID,
		fmt.Sprintf("ORD-%04d", seq),
		customers[rand.Intn(len(customers))],
		total,
		statuses[rand.Intn(len(statuses))],
		paymentMethods[rand.Intn(len(paymentMethods))],
		taxRate,
		createdAt)
	if err != nil {
		return err
	}

	for _, l := range picked {
		_, err = tx.Exec(ctx,
			`INSERT INTO order_items (order_id, menu_item_id, name, quantity, price)
			 VALUES ($1, $2, $3, $4, $5)`,
			orderID, itemIDs[l.entry.name], l.entry.name, l.quantity, l.entry.price)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
