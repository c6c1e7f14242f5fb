package auth

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bukutamu/internal/apperr"
	"bukutamu/internal/database"
)

type fakeStore struct {
	users  map[int]*database.User
	tokens map[string]*database.RefreshToken
	nextID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  make(map[int]*database.User),
		tokens: make(map[string]*database.RefreshToken),
		nextID: 1,
	}
}

func (f *fakeStore) GetUserByEmail(email string) (*database.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("pengguna %s: %w", email, database.ErrNotFound)
}

func (f *fakeStore) GetUser(id int) (*database.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("pengguna %d: %w", id, database.ErrNotFound)
	}
	return u, nil
}

func (f *fakeStore) UpdateUserPassword(id int, hash string) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("pengguna %d: %w", id, database.ErrNotFound)
	}
	u.Password = hash
	return nil
}

func (f *fakeStore) InsertRefreshToken(t *database.RefreshToken) error {
	t.ID = f.nextID
	f.nextID++
	f.tokens[t.Token] = t
	return nil
}

func (f *fakeStore) GetRefreshToken(token string) (*database.RefreshToken, error) {
	t, ok := f.tokens[token]
	if !ok {
		return nil, fmt.Errorf("refresh token: %w", database.ErrNotFound)
	}
	return t, nil
}

func (f *fakeStore) RevokeRefreshToken(id int) error {
	for _, t := range f.tokens {
		if t.ID == id {
			t.Revoked = true
			return nil
		}
	}
	return nil
}

func (f *fakeStore) DeleteRefreshToken(token string) error {
	delete(f.tokens, token)
	return nil
}

const testSecret = "rahasia-untuk-test"

func setupAuth(t *testing.T) (*Service, *fakeStore) {
	t.Helper()

	store := newFakeStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("kata-sandi-123"), bcrypt.MinCost)
	require.NoError(t, err)

	store.users[1] = &database.User{
		ID:       1,
		Nama:     "Ibu Sari",
		Email:    "sari@sekolah.sch.id",
		Password: string(hash),
		Role:     database.RoleGuru,
	}

	svc := NewService(store, testSecret, 30*time.Minute, 7*24*time.Hour)
	return svc, store
}

func TestLogin(t *testing.T) {
	svc, store := setupAuth(t)

	resp, err := svc.Login("sari@sekolah.sch.id", "kata-sandi-123")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Ibu Sari", resp.User.Nama)
	assert.Equal(t, database.RoleGuru, resp.User.Role)

	claims, err := ParseToken(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)
	assert.Equal(t, database.RoleGuru, claims.Role)

	// refresh token tersimpan dan belum dicabut
	stored, ok := store.tokens[resp.RefreshToken]
	require.True(t, ok)
	assert.False(t, stored.Revoked)
}

func TestLoginWrongCredentials(t *testing.T) {
	svc, _ := setupAuth(t)

	// email salah dan password salah menghasilkan pesan yang sama
	_, errEmail := svc.Login("tidakada@sekolah.sch.id", "kata-sandi-123")
	_, errPassword := svc.Login("sari@sekolah.sch.id", "salah")

	assert.True(t, apperr.IsUnauthorized(errEmail))
	assert.True(t, apperr.IsUnauthorized(errPassword))
	assert.Equal(t, errEmail.Error(), errPassword.Error())
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, store := setupAuth(t)

	login, err := svc.Login("sari@sekolah.sch.id", "kata-sandi-123")
	require.NoError(t, err)

	resp, err := svc.Refresh(login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEqual(t, login.RefreshToken, resp.RefreshToken)

	// token lama dicabut: pemakaian kedua ditolak
	assert.True(t, store.tokens[login.RefreshToken].Revoked)
	_, err = svc.Refresh(login.RefreshToken)
	assert.True(t, apperr.IsUnauthorized(err))

	// token baru masih bisa dipakai
	_, err = svc.Refresh(resp.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshExpiredToken(t *testing.T) {
	svc, store := setupAuth(t)

	login, err := svc.Login("sari@sekolah.sch.id", "kata-sandi-123")
	require.NoError(t, err)

	store.tokens[login.RefreshToken].ExpiresAt = time.Now().Add(-time.Hour)

	_, err = svc.Refresh(login.RefreshToken)
	assert.True(t, apperr.IsUnauthorized(err))
}

func TestLogout(t *testing.T) {
	svc, store := setupAuth(t)

	login, err := svc.Login("sari@sekolah.sch.id", "kata-sandi-123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(login.RefreshToken))
	_, ok := store.tokens[login.RefreshToken]
	assert.False(t, ok)

	// logout ulang dengan token yang sudah hilang tetap sukses
	require.NoError(t, svc.Logout(login.RefreshToken))
}

func TestChangePassword(t *testing.T) {
	svc, store := setupAuth(t)

	err := svc.ChangePassword(1, "kata-sandi-123", "kata-sandi-baru")
	require.NoError(t, err)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(store.users[1].Password), []byte("kata-sandi-baru")))

	err = svc.ChangePassword(1, "salah", "kata-sandi-lain")
	assert.True(t, apperr.IsUnauthorized(err))

	err = svc.ChangePassword(1, "kata-sandi-baru", "pendek")
	assert.True(t, apperr.IsInvalidInput(err))
}
