package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/allyelvis/pos-kiosk/internal/storage/postgres"
)

const defaultTimeout = 30 * time.Second

func main() {
	var (
		direction string
		dsn       string
	)

	flag.StringVar(&direction, "direction", "up", "migration direction: up|down|status")
	flag.StringVar(&dsn, "dsn", "", "PostgreSQL DSN (fallback: POS_POSTGRES_DSN)")
	flag.Parse()

	if strings.TrimSpace(dsn) == "" {
		dsn = strings.TrimSpace(os.Getenv("POS_POSTGRES_DSN"))
	}
	if dsn == "" {
		fail("POS_POSTGRES_DSN (or -dsn) is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	store, err := postgres.Open(ctx, dsn)
	if err != nil {
		fail("open postgres store: %v", err)
	}
	defer store.Close()

	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "up":
		if err := store.MigrateUp(); err != nil {
			fail("migrate up failed: %v", err)
		}
		printStatus(store, "migrate up ok")
	case "down":
		if err := store.MigrateDown(); err != nil {
			fail("migrate down failed: %v", err)
		}
		printStatus(store, "migrate down ok")
	case "status":
		printStatus(store, "migration status")
	default:
		fail("unsupported direction: %s (use up|down|status)", direction)
	}
}

func printStatus(store *postgres.Store, prefix string) {
	version, dirty, err := store.SchemaVersion()
	if err != nil {
		fail("schema version failed: %v", err)
	}
	fmt.Printf("%s: version=%d dirty=%v\n", prefix, version, dirty)
}

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
