package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/gocommerce/shop-api/pkg/helpers"

	"github.com/gocommerce/shop-api/config"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@example.com"
	password := "password123"
	name := "Shop Admin"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (name, slug, email, password_hash, role, active)
		VALUES ($1, $2, $3, $4, 'admin', true)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, role = 'admin', active = true
		RETURNING id
	`, name, helpers.Slugify(name), email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s password=%s\n", id, email, password)

	products := []struct {
		title string
		desc  string
		price float64
		qty   int
	}{
		{"Wireless Mouse", "Compact 2.4GHz wireless mouse with silent clicks", 24.99, 120},
		{"Mechanical Keyboard", "Tenkeyless keyboard with hot-swappable switches", 89.90, 45},
		{"USB-C Hub", "7-in-1 hub with HDMI, card reader and 100W passthrough", 39.50, 80},
	}
	for _, p := range products {
		var pid string
		err := db.QueryRow(`
			INSERT INTO products (title, slug, description, price, quantity)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (slug) DO UPDATE SET price = EXCLUDED.price, quantity = EXCLUDED.quantity
			RETURNING id
		`, p.title, helpers.Slugify(p.title), p.desc, p.price, p.qty).Scan(&pid)
		if err != nil {
			log.Fatalf("failed to seed product %q: %v", p.title, err)
		}
		fmt.Printf("seeded product: id=%s title=%q\n", pid, p.title)
	}
}
