package service

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/saadjs/bmi-cli/internal/model"
)

// GetOrCreateUser resolves a user id by exact name match, creating the
// user on first use. Matching is case-sensitive: "Bob" and "bob" are
// distinct users.
func GetOrCreateUser(db *sql.DB, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("user name is required")
	}
	var id int64
	err := db.QueryRow(`SELECT id FROM users WHERE name = ?`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("lookup user %q: %w", name, err)
	}
	res, err := db.Exec(`INSERT INTO users(name) VALUES(?)`, name)
	if err != nil {
		return 0, fmt.Errorf("create user %q: %w", name, err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve user id: %w", err)
	}
	slog.Debug("created user", "name", name, "id", id)
	return id, nil
}

// FindUserByName resolves an existing user id, erroring when absent.
func FindUserByName(db *sql.DB, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("user name is required")
	}
	var id int64
	err := db.QueryRow(`SELECT id FROM users WHERE name = ?`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("user %q not found", name)
	}
	if err != nil {
		return 0, fmt.Errorf("lookup user %q: %w", name, err)
	}
	return id, nil
}

// ListUsers returns all users with their record counts, ordered
// case-insensitively by name.
func ListUsers(db *sql.DB) ([]model.User, error) {
	rows, err := db.Query(`
SELECT u.id, u.name, COUNT(r.id)
FROM users u
LEFT JOIN records r ON r.user_id = u.id
GROUP BY u.id
ORDER BY u.name COLLATE NOCASE ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	items := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.RecordCount); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		items = append(items, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return items, nil
}
