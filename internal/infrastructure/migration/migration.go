package migration

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"
)

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	logger.Info("starting database migrations")

	for _, m := range migrations {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			logger.Error("migration failed", zap.String("name", m.Name), zap.Error(err))
			return err
		}
		logger.Info("migration completed", zap.String("name", m.Name))
	}

	logger.Info("all migrations completed")
	return nil
}

// Migration is one idempotent schema step.
type Migration struct {
	Name string
	SQL  string
}

var migrations = []Migration{
	{
		Name: "create_resumes",
		SQL: `
			CREATE TABLE IF NOT EXISTS resumes (
				id UUID PRIMARY KEY,
				user_id UUID NOT NULL,
				title TEXT NOT NULL DEFAULT '',
				template_id TEXT NOT NULL DEFAULT '',
				content JSONB NOT NULL DEFAULT '{}'::jsonb,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			);
		`,
	},
	{
		Name: "add_parsed_sections_to_resumes",
		SQL: `
			ALTER TABLE resumes
			ADD COLUMN IF NOT EXISTS parsed_sections JSONB DEFAULT '{}'::jsonb;
		`,
	},
	{
		Name: "index_resumes_user",
		SQL:  `CREATE INDEX IF NOT EXISTS resumes_user_id_idx ON resumes (user_id, updated_at DESC);`,
	},
}
