package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo catalog data: a handful of categories and a few
// banners per category with distinct prices, enough to exercise the bid
// endpoint by hand.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	categories := []struct {
		name string
		key  string
	}{
		{"Sports", "sports"},
		{"Music", "music"},
		{"Technology", "tech"},
	}

	catIDs := make(map[string]int64, len(categories))
	for _, c := range categories {
		var id int64
		err := pool.QueryRow(ctx, `
			INSERT INTO categories (name, request_key)
			VALUES ($1, $2)
			ON CONFLICT (request_key) WHERE active DO UPDATE SET updated_at = now()
			RETURNING id`,
			c.name, c.key).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", c.key, err)
		}
		catIDs[c.key] = id
	}

	banners := []struct {
		name  string
		body  string
		price int64
		keys  []string
	}{
		{"Sneaker sale", "Run faster for less: 30% off all sneakers this week.", 500, []string{"sports"}},
		{"Stadium tickets", "Front-row seats for the season opener, on sale now.", 900, []string{"sports"}},
		{"Vinyl revival", "Classic albums back in press. Free shipping over 50.", 300, []string{"music"}},
		{"Festival pass", "Three days, forty bands, one wristband.", 700, []string{"music", "sports"}},
		{"Cloud credits", "Spin up your first cluster with 200 in free credits.", 1200, []string{"tech"}},
	}

	for _, b := range banners {
		var id int64
		err := pool.QueryRow(ctx, `
			INSERT INTO banners (name, body, price)
			VALUES ($1, $2, $3)
			ON CONFLICT (lower(name)) WHERE active DO UPDATE SET updated_at = now()
			RETURNING id`,
			b.name, b.body, b.price).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed banner %s: %w", b.name, err)
		}
		for _, key := range b.keys {
			_, err = pool.Exec(ctx, `
				INSERT INTO banner_categories (banner_id, category_id)
				VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				id, catIDs[key])
			if err != nil {
				return fmt.Errorf("seed banner %s category %s: %w", b.name, key, err)
			}
		}
	}
	return nil
}
