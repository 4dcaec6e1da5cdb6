package db

import (
	"fmt"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

// RunMigrations executes the given SQL script files statement by statement.
// "already exists" errors are skipped so the scripts stay re-runnable.
func RunMigrations(db *sqlx.DB, log zerolog.Logger, scriptPaths ...string) error {
	for _, scriptPath := range scriptPaths {
		content, err := os.ReadFile(scriptPath)
		if err != nil {
			return fmt.Errorf("db.RunMigrations: cannot read %s: %w", scriptPath, err)
		}

		for _, stmt := range strings.Split(string(content), ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}

			if _, err := db.Exec(stmt); err != nil {
				if strings.Contains(err.Error(), "already exists") || strings.Contains(err.Error(), "duplicate key") {
					log.Debug().Str("script", scriptPath).Err(err).Msg("skipping statement")
					continue
				}
				return fmt.Errorf("db.RunMigrations: %s: %w", scriptPath, err)
			}
		}

		log.Info().Str("script", scriptPath).Msg("executed migration script")
	}

	return nil
}
