package database

import (
	"database/sql"
	"fmt"
)

const userColumns = "id_pengguna, nama, email, password, role, COALESCE(device_token, '')"

func scanUser(row interface{ Scan(...interface{}) error }) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Nama, &u.Email, &u.Password, &u.Role, &u.DeviceToken)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (db *DB) GetUser(id int) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM pengguna WHERE id_pengguna = $1", userColumns)

	u, err := scanUser(db.conn.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("pengguna %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query pengguna: %w", err)
	}
	return u, nil
}

func (db *DB) GetUserByEmail(email string) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM pengguna WHERE email = $1", userColumns)

	u, err := scanUser(db.conn.QueryRow(query, email))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("pengguna %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query pengguna: %w", err)
	}
	return u, nil
}

func (db *DB) ListUsers(role string) ([]User, error) {
	query := fmt.Sprintf("SELECT %s FROM pengguna", userColumns)
	var args []interface{}
	if role != "" {
		query += " WHERE role = $1"
		args = append(args, role)
	}
	query += " ORDER BY nama ASC"

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pengguna: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pengguna: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (db *DB) InsertUser(u *User) error {
	err := db.conn.QueryRow(
		"INSERT INTO pengguna (nama, email, password, role) VALUES ($1, $2, $3, $4) RETURNING id_pengguna",
		u.Nama, u.Email, u.Password, u.Role,
	).Scan(&u.ID)
	if err != nil {
		return fmt.Errorf("failed to insert pengguna: %w", err)
	}
	return nil
}

func (db *DB) UpdateUser(u *User) error {
	result, err := db.conn.Exec(
		"UPDATE pengguna SET nama = $1, email = $2, role = $3 WHERE id_pengguna = $4",
		u.Nama, u.Email, u.Role, u.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update pengguna: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("pengguna %d: %w", u.ID, ErrNotFound)
	}
	return nil
}

func (db *DB) UpdateUserDeviceToken(id int, token string) error {
	result, err := db.conn.Exec("UPDATE pengguna SET device_token = $1 WHERE id_pengguna = $2", token, id)
	if err != nil {
		return fmt.Errorf("failed to update device_token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("pengguna %d: %w", id, ErrNotFound)
	}
	return nil
}

func (db *DB) UpdateUserPassword(id int, hash string) error {
	_, err := db.conn.Exec("UPDATE pengguna SET password = $1 WHERE id_pengguna = $2", hash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (db *DB) DeleteUser(id int) error {
	result, err := db.conn.Exec("DELETE FROM pengguna WHERE id_pengguna = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete pengguna: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("pengguna %d: %w", id, ErrNotFound)
	}
	return nil
}

// UserHasAppointments: penghapusan pengguna ditolak selama masih ada janji
// temu yang menunjuk ke dirinya.
func (db *DB) UserHasAppointments(id int) (bool, error) {
	var exists bool
	err := db.conn.QueryRow("SELECT EXISTS(SELECT 1 FROM janji_temu WHERE id_guru = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check janji_temu for pengguna: %w", err)
	}
	return exists, nil
}
