package user

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bukutamu/internal/apperr"
	"bukutamu/internal/database"
)

type fakeStore struct {
	users           map[int]*database.User
	withAppointment map[int]bool
	nextID          int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:           make(map[int]*database.User),
		withAppointment: make(map[int]bool),
		nextID:          1,
	}
}

func (f *fakeStore) GetUser(id int) (*database.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("pengguna %d: %w", id, database.ErrNotFound)
	}
	return u, nil
}

func (f *fakeStore) GetUserByEmail(email string) (*database.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("pengguna %s: %w", email, database.ErrNotFound)
}

func (f *fakeStore) ListUsers(role string) ([]database.User, error) {
	var out []database.User
	for _, u := range f.users {
		if role == "" || u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertUser(u *database.User) error {
	u.ID = f.nextID
	f.nextID++
	copied := *u
	f.users[u.ID] = &copied
	return nil
}

func (f *fakeStore) UpdateUser(u *database.User) error {
	stored, ok := f.users[u.ID]
	if !ok {
		return fmt.Errorf("pengguna %d: %w", u.ID, database.ErrNotFound)
	}
	stored.Nama, stored.Email, stored.Role = u.Nama, u.Email, u.Role
	return nil
}

func (f *fakeStore) UpdateUserDeviceToken(id int, token string) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("pengguna %d: %w", id, database.ErrNotFound)
	}
	u.DeviceToken = token
	return nil
}

func (f *fakeStore) DeleteUser(id int) error {
	if _, ok := f.users[id]; !ok {
		return fmt.Errorf("pengguna %d: %w", id, database.ErrNotFound)
	}
	delete(f.users, id)
	return nil
}

func (f *fakeStore) UserHasAppointments(id int) (bool, error) {
	return f.withAppointment[id], nil
}

func TestCreate(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	resp, err := svc.Create("Ibu Sari", "sari@sekolah.sch.id", "kata-sandi-123", database.RoleGuru)
	require.NoError(t, err)
	assert.Equal(t, database.RoleGuru, resp.Role)

	// password tersimpan sebagai hash bcrypt, bukan teks biasa
	stored := store.users[resp.IDPengguna]
	assert.NotEqual(t, "kata-sandi-123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("kata-sandi-123")))
}

func TestCreateValidation(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	_, err := svc.Create("", "a@b.id", "kata-sandi-123", database.RoleGuru)
	assert.True(t, apperr.IsInvalidInput(err))

	_, err = svc.Create("Nama", "a@b.id", "pendek", database.RoleGuru)
	assert.True(t, apperr.IsInvalidInput(err))

	// role di luar enumerasi ditolak
	_, err = svc.Create("Nama", "a@b.id", "kata-sandi-123", "KepalaSekolah")
	assert.True(t, apperr.IsInvalidInput(err))
}

func TestCreateDuplicateEmail(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	_, err := svc.Create("Ibu Sari", "sari@sekolah.sch.id", "kata-sandi-123", database.RoleGuru)
	require.NoError(t, err)

	_, err = svc.Create("Sari Lain", "sari@sekolah.sch.id", "kata-sandi-456", database.RoleAdmin)
	assert.True(t, apperr.IsConflict(err))
}

func TestDeleteRefusedWhileAppointmentsExist(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	resp, err := svc.Create("Ibu Sari", "sari@sekolah.sch.id", "kata-sandi-123", database.RoleGuru)
	require.NoError(t, err)
	store.withAppointment[resp.IDPengguna] = true

	err = svc.Delete(resp.IDPengguna)
	assert.True(t, apperr.IsConflict(err))
	assert.Contains(t, store.users, resp.IDPengguna)

	store.withAppointment[resp.IDPengguna] = false
	require.NoError(t, svc.Delete(resp.IDPengguna))
	assert.NotContains(t, store.users, resp.IDPengguna)
}

func TestListRoleFilter(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	_, err := svc.Create("Ibu Sari", "sari@sekolah.sch.id", "kata-sandi-123", database.RoleGuru)
	require.NoError(t, err)
	_, err = svc.Create("Pak Admin", "admin@sekolah.sch.id", "kata-sandi-123", database.RoleAdmin)
	require.NoError(t, err)

	gurus, err := svc.List(database.RoleGuru)
	require.NoError(t, err)
	require.Len(t, gurus, 1)
	assert.Equal(t, "Ibu Sari", gurus[0].Nama)

	_, err = svc.List("Satpam")
	assert.True(t, apperr.IsInvalidInput(err))
}
