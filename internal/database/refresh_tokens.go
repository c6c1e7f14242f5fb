package database

import (
	"database/sql"
	"fmt"
)

func (db *DB) InsertRefreshToken(t *RefreshToken) error {
	query := `
		INSERT INTO refresh_token (id_pengguna, token, expires_at, revoked)
		VALUES ($1, $2, $3, false)
		RETURNING id
	`

	err := db.conn.QueryRow(query, t.IDPengguna, t.Token, t.ExpiresAt).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("failed to insert refresh_token: %w", err)
	}
	return nil
}

func (db *DB) GetRefreshToken(token string) (*RefreshToken, error) {
	query := `
		SELECT id, id_pengguna, token, expires_at, revoked
		FROM refresh_token
		WHERE token = $1
	`

	var t RefreshToken
	err := db.conn.QueryRow(query, token).Scan(&t.ID, &t.IDPengguna, &t.Token, &t.ExpiresAt, &t.Revoked)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("refresh token: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query refresh_token: %w", err)
	}
	return &t, nil
}

func (db *DB) RevokeRefreshToken(id int) error {
	_, err := db.conn.Exec("UPDATE refresh_token SET revoked = true WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh_token: %w", err)
	}
	return nil
}

// DeleteRefreshToken dipakai saat logout; token yang tidak ada bukan error.
func (db *DB) DeleteRefreshToken(token string) error {
	_, err := db.conn.Exec("DELETE FROM refresh_token WHERE token = $1", token)
	if err != nil {
		return fmt.Errorf("failed to delete refresh_token: %w", err)
	}
	return nil
}
