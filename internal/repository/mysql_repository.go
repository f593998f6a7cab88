package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/iliyamo/portfolio-backend/internal/model"
)

// The MySQL backend keeps each record as a JSON document next to the
// columns needed for lookup and ordering.
const mysqlSchema = `
CREATE TABLE IF NOT EXISTS status_checks (
    id         CHAR(36)    NOT NULL PRIMARY KEY,
    created_at DATETIME(6) NOT NULL,
    doc        JSON        NOT NULL
);
CREATE TABLE IF NOT EXISTS contact_submissions (
    id           CHAR(36)    NOT NULL PRIMARY KEY,
    submitted_at DATETIME(6) NOT NULL,
    doc          JSON        NOT NULL,
    INDEX idx_contact_submitted_at (submitted_at)
);`

// MySQLStatusRepo stores status checks in the status_checks table.
type MySQLStatusRepo struct {
	db *sql.DB
}

func NewMySQLStatusRepo(db *sql.DB) *MySQLStatusRepo {
	return &MySQLStatusRepo{db: db}
}

func (r *MySQLStatusRepo) Insert(ctx context.Context, s *model.StatusCheck) error {
	doc, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode status check: %w", err)
	}
	const q = "INSERT INTO status_checks (id, created_at, doc) VALUES (?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, s.ID, s.Timestamp, doc)
	return execResult(res, err, "status check")
}

func (r *MySQLStatusRepo) List(ctx context.Context, limit int) ([]model.StatusCheck, error) {
	const q = "SELECT doc FROM status_checks LIMIT ?"
	rows, err := r.db.QueryContext(ctx, q, clampLimit(limit, StatusListLimit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.StatusCheck
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var s model.StatusCheck
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decode status check: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// MySQLContactRepo stores contact submissions in the contact_submissions
// table.
type MySQLContactRepo struct {
	db *sql.DB
}

func NewMySQLContactRepo(db *sql.DB) *MySQLContactRepo {
	return &MySQLContactRepo{db: db}
}

func (r *MySQLContactRepo) Insert(ctx context.Context, s *model.ContactSubmission) error {
	doc, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode contact submission: %w", err)
	}
	const q = "INSERT INTO contact_submissions (id, submitted_at, doc) VALUES (?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, s.ID, s.SubmittedAt, doc)
	return execResult(res, err, "contact submission")
}

func (r *MySQLContactRepo) ListRecent(ctx context.Context, limit int) ([]model.ContactSubmission, error) {
	const q = `SELECT doc FROM contact_submissions
	           ORDER BY submitted_at DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, clampLimit(limit, ContactListLimit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ContactSubmission
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var s model.ContactSubmission
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decode contact submission: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// EnsureMySQLSchema creates both tables when missing. The DSN must enable
// multiStatements.
func EnsureMySQLSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, mysqlSchema)
	return err
}

func execResult(res sql.Result, err error, what string) error {
	if err != nil {
		return fmt.Errorf("insert %s: %w", what, err)
	}
	if n, err := res.RowsAffected(); err != nil || n != 1 {
		return ErrNotAcknowledged
	}
	return nil
}

// NewMySQLStore returns a Store over db. Closing the store closes the pool.
func NewMySQLStore(db *sql.DB) *Store {
	return &Store{
		Status:   NewMySQLStatusRepo(db),
		Contacts: NewMySQLContactRepo(db),
		close:    func(context.Context) error { return db.Close() },
	}
}
