package repository

import (
	"database/sql"
	"fmt"

	"github.com/SamuelPGibson/PasswordManager/internal/models"
)

// Postgres persists the catalog in a PostgreSQL accounts table.
type Postgres struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgres creates a Postgres repository using the provided *sql.DB.
// db must be a valid connection to a PostgreSQL instance.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{DB: db}
}

// Load fetches all persisted accounts.
func (p *Postgres) Load() ([]models.Account, error) {
	rows, err := p.DB.Query(`SELECT id, name, username, password, category, notes, date FROM accounts`)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var records []models.Account
	for rows.Next() {
		var rec models.Account
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Username, &rec.Password,
			&rec.Category, &rec.Notes, &rec.CreatedDate); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read accounts: %w", err)
	}
	return records, nil
}

// Save replaces the stored record set with records, in one transaction.
func (p *Postgres) Save(records []models.Account) error {
	tx, err := p.DB.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM accounts`); err != nil {
		return fmt.Errorf("clear accounts: %w", err)
	}
	for _, rec := range records {
		if _, err := tx.Exec(`
			INSERT INTO accounts (id, name, username, password, category, notes, date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, rec.ID, rec.Name, rec.Username, rec.Password, rec.Category, rec.Notes, rec.CreatedDate); err != nil {
			return fmt.Errorf("insert account %q: %w", rec.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}
