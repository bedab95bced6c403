package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcdev12/courtday/go/internal/dbconfig"
	"github.com/mcdev12/courtday/go/internal/roster"
)

func main() {
	ctx := context.Background()

	// 1) Connect to DB
	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect error: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// 2) Seed the standing roster
	total, inserted, skipped, errs := len(roster.FixedRoster), 0, 0, 0
	for _, name := range roster.FixedRoster {
		first := strings.SplitN(name, " ", 2)[0]
		tag, err := pool.Exec(ctx, `
            INSERT INTO users (id, name, avatar)
            VALUES ($1,$2,$3)
            ON CONFLICT (name) DO NOTHING
        `, uuid.New(), name, "/avatars/"+first+".png")
		if err != nil {
			errs++
			continue
		}
		if tag.RowsAffected() == 1 {
			inserted++
		} else {
			skipped++
		}
	}
	fmt.Printf(
		"Roster seed: total=%d inserted=%d skipped=%d errors=%d\n",
		total, inserted, skipped, errs,
	)
}
