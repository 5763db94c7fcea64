package migrate

import (
	"context"
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

// Run executes embedded SQL migrations sequentially, ordered by file name.
// Every statement is idempotent (CREATE IF NOT EXISTS / ON CONFLICT DO
// NOTHING), so rerunning on startup is safe.
func Run(ctx context.Context, pool *pgxpool.Pool) error {
	entries, err := migrationFiles.ReadDir("sql")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		queryBytes, err := migrationFiles.ReadFile("sql/" + entry.Name())
		if err != nil {
			return fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}

		query := strings.TrimSpace(string(queryBytes))
		if query == "" {
			continue
		}

		if _, err := pool.Exec(ctx, query); err != nil {
			return fmt.Errorf("execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}
