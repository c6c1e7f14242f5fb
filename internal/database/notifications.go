package database

import "fmt"

// InsertNotification menyimpan notifikasi baru; waktu diisi server database
// dan is_read selalu false.
func (db *DB) InsertNotification(n *Notification) error {
	query := `
		INSERT INTO notifikasi (id_pengguna, pesan, waktu, is_read)
		VALUES ($1, $2, NOW(), false)
		RETURNING id_notifikasi, waktu
	`

	err := db.conn.QueryRow(query, n.IDPengguna, n.Pesan).Scan(&n.ID, &n.Waktu)
	if err != nil {
		return fmt.Errorf("failed to insert notifikasi: %w", err)
	}
	return nil
}

// ListNotifications mengembalikan notifikasi milik satu pengguna, terbaru
// lebih dulu. read == nil berarti tanpa filter.
func (db *DB) ListNotifications(userID int, read *bool, limit int) ([]Notification, error) {
	query := `
		SELECT id_notifikasi, id_pengguna, pesan, waktu, is_read
		FROM notifikasi
		WHERE id_pengguna = $1
	`
	args := []interface{}{userID}

	if read != nil {
		args = append(args, *read)
		query += fmt.Sprintf(" AND is_read = $%d", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY waktu DESC LIMIT $%d", len(args))

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifikasi: %w", err)
	}
	defer rows.Close()

	var notifications []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.IDPengguna, &n.Pesan, &n.Waktu, &n.IsRead); err != nil {
			return nil, fmt.Errorf("failed to scan notifikasi: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (db *DB) MarkNotificationRead(id, userID int) error {
	result, err := db.conn.Exec(
		"UPDATE notifikasi SET is_read = true WHERE id_notifikasi = $1 AND id_pengguna = $2",
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notifikasi read: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("notifikasi %d: %w", id, ErrNotFound)
	}
	return nil
}

func (db *DB) DeleteNotification(id, userID int) error {
	result, err := db.conn.Exec(
		"DELETE FROM notifikasi WHERE id_notifikasi = $1 AND id_pengguna = $2",
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete notifikasi: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("notifikasi %d: %w", id, ErrNotFound)
	}
	return nil
}
