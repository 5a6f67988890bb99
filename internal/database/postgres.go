package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"movie-catalog-api/internal/config"
)

// NewPostgres creates a new PostgreSQL connection and runs migrations.
func NewPostgres(cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)

	slog.Info("connected to PostgreSQL", "db", cfg.DBName)

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// runMigrations creates missing tables. The catalog tables are
// normally preloaded from the IMDb dataset; creating them here keeps
// a fresh database usable.
func runMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS movies (
			imdb_id VARCHAR(20) PRIMARY KEY,
			title VARCHAR(500) NOT NULL,
			year INTEGER,
			runtime_minutes INTEGER,
			genres TEXT DEFAULT '',
			country VARCHAR(200),
			plot TEXT,
			poster VARCHAR(500),
			box_office VARCHAR(100),
			rated VARCHAR(20),
			imdb_rating VARCHAR(20),
			rotten_tomatoes_rating VARCHAR(20),
			metacritic_rating VARCHAR(20)
		)`,
		`CREATE TABLE IF NOT EXISTS ratings (
			imdb_id VARCHAR(20) REFERENCES movies(imdb_id) ON DELETE CASCADE,
			source VARCHAR(100) NOT NULL,
			value VARCHAR(50)
		)`,
		`CREATE TABLE IF NOT EXISTS people (
			person_id VARCHAR(20) PRIMARY KEY,
			name VARCHAR(300) NOT NULL,
			birth_year INTEGER,
			death_year INTEGER,
			primary_profession TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS principals (
			imdb_id VARCHAR(20) REFERENCES movies(imdb_id) ON DELETE CASCADE,
			person_id VARCHAR(20) REFERENCES people(person_id) ON DELETE CASCADE,
			category VARCHAR(100),
			ordering INTEGER NOT NULL,
			characters TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email VARCHAR(320) UNIQUE NOT NULL,
			password_hash VARCHAR(100) NOT NULL,
			first_name VARCHAR(200),
			last_name VARCHAR(200),
			dob DATE,
			address VARCHAR(500)
		)`,
		// Indexes for the search filters and the join paths
		`CREATE INDEX IF NOT EXISTS idx_movies_title ON movies(title)`,
		`CREATE INDEX IF NOT EXISTS idx_movies_year ON movies(year)`,
		`CREATE INDEX IF NOT EXISTS idx_ratings_imdb_id ON ratings(imdb_id)`,
		`CREATE INDEX IF NOT EXISTS idx_principals_imdb_id ON principals(imdb_id)`,
		`CREATE INDEX IF NOT EXISTS idx_principals_person_id ON principals(person_id)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	slog.Info("database migrations completed")
	return nil
}
