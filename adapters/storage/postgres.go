package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/lib/pq"

	"mapiker/core/types"
	"mapiker/internal/errors"
)

// PostgresStore persists projects as JSONB rows.
type PostgresStore struct {
	db *sql.DB
}

const createProjectsTable = `
CREATE TABLE IF NOT EXISTS projects (
	id         TEXT PRIMARY KEY,
	data       JSONB NOT NULL,
	rev        BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

// NewPostgresStore opens a Postgres-backed store and ensures its schema.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, errors.Config("postgres backend requires a dsn", nil)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Storage("failed to open postgres connection", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Storage("failed to ping postgres", err)
	}
	if _, err := db.ExecContext(ctx, createProjectsTable); err != nil {
		db.Close()
		return nil, errors.Storage("failed to ensure projects table", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*types.Project, error) {
	var data []byte
	var rev int64
	err := s.db.QueryRowContext(ctx,
		`SELECT data, rev FROM projects WHERE id = $1`, id,
	).Scan(&data, &rev)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("project", id)
	}
	if err != nil {
		return nil, errors.Storage("failed to query project", err)
	}

	var project types.Project
	if err := json.Unmarshal(data, &project); err != nil {
		return nil, errors.Storage("failed to unmarshal project", err)
	}
	project.Rev = rev
	return &project, nil
}

func (s *PostgresStore) Save(ctx context.Context, project *types.Project) error {
	prepare(project)

	newRev := project.Rev + 1
	data, err := json.Marshal(struct {
		*types.Project
		Rev int64 `json:"rev"`
	}{project, newRev})
	if err != nil {
		return errors.Storage("failed to marshal project", err)
	}

	// Upsert guarded by the caller's revision; a stale save updates
	// zero rows.
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, data, rev, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET data = EXCLUDED.data, rev = EXCLUDED.rev, updated_at = EXCLUDED.updated_at
		WHERE projects.rev = $6`,
		project.ID, data, newRev, project.CreatedAt, project.UpdatedAt, project.Rev,
	)
	if err != nil {
		return errors.Storage("failed to save project", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Storage("failed to read save result", err)
	}
	if affected == 0 {
		return errors.Newf(errors.TypeStorage, "stale revision for project %s: rev %d is no longer current", project.ID, project.Rev)
	}

	project.Rev = newRev
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM projects ORDER BY id`)
	if err != nil {
		return nil, errors.Storage("failed to list projects", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Storage("failed to scan project id", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return errors.Storage("failed to delete project", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return errors.NotFound("project", id)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
