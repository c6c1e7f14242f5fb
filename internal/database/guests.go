package database

import (
	"database/sql"
	"fmt"
)

func (db *DB) ListTamu(page, limit int) ([]Guest, int, error) {
	var total int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM tamu").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tamu: %w", err)
	}

	query := `
		SELECT id_tamu, nama, telepon
		FROM tamu
		ORDER BY nama ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := db.conn.Query(query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query tamu: %w", err)
	}
	defer rows.Close()

	var guests []Guest
	for rows.Next() {
		var g Guest
		if err := rows.Scan(&g.ID, &g.Nama, &g.Telepon); err != nil {
			return nil, 0, fmt.Errorf("failed to scan tamu: %w", err)
		}
		guests = append(guests, g)
	}
	return guests, total, rows.Err()
}

func (db *DB) GetTamu(id int) (*Guest, error) {
	var g Guest
	err := db.conn.QueryRow("SELECT id_tamu, nama, telepon FROM tamu WHERE id_tamu = $1", id).
		Scan(&g.ID, &g.Nama, &g.Telepon)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tamu %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query tamu: %w", err)
	}
	return &g, nil
}

func (db *DB) InsertTamu(g *Guest) error {
	err := db.conn.QueryRow(
		"INSERT INTO tamu (nama, telepon) VALUES ($1, $2) RETURNING id_tamu",
		g.Nama, g.Telepon,
	).Scan(&g.ID)
	if err != nil {
		return fmt.Errorf("failed to insert tamu: %w", err)
	}
	return nil
}

func (db *DB) UpdateTamu(g *Guest) error {
	result, err := db.conn.Exec(
		"UPDATE tamu SET nama = $1, telepon = $2 WHERE id_tamu = $3",
		g.Nama, g.Telepon, g.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update tamu: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("tamu %d: %w", g.ID, ErrNotFound)
	}
	return nil
}

func (db *DB) SearchTamu(q string) ([]Guest, error) {
	query := `
		SELECT id_tamu, nama, telepon
		FROM tamu
		WHERE nama ILIKE '%' || $1 || '%' OR telepon LIKE '%' || $1 || '%'
		ORDER BY nama ASC
	`

	rows, err := db.conn.Query(query, q)
	if err != nil {
		return nil, fmt.Errorf("failed to search tamu: %w", err)
	}
	defer rows.Close()

	var guests []Guest
	for rows.Next() {
		var g Guest
		if err := rows.Scan(&g.ID, &g.Nama, &g.Telepon); err != nil {
			return nil, fmt.Errorf("failed to scan tamu: %w", err)
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}
