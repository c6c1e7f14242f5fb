// Package user mengelola akun staf sekolah: admin, guru, dan penerima tamu.
package user

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"bukutamu/internal/apperr"
	"bukutamu/internal/database"
	"bukutamu/pkg/models"
)

type Store interface {
	GetUser(id int) (*database.User, error)
	GetUserByEmail(email string) (*database.User, error)
	ListUsers(role string) ([]database.User, error)
	InsertUser(u *database.User) error
	UpdateUser(u *database.User) error
	UpdateUserDeviceToken(id int, token string) error
	DeleteUser(id int) error
	UserHasAppointments(id int) (bool, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(role string) ([]models.UserResponse, error) {
	if role != "" && !database.IsValidRole(role) {
		return nil, apperr.InvalidInput("role tidak dikenal: %s", role)
	}

	users, err := s.store.ListUsers(role)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	responses := make([]models.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toResponse(u))
	}
	return responses, nil
}

func (s *Service) Get(id int) (*models.UserResponse, error) {
	u, err := s.store.GetUser(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.NotFound("pengguna tidak ditemukan")
		}
		return nil, apperr.Internal(err)
	}
	resp := toResponse(*u)
	return &resp, nil
}

func (s *Service) Create(nama, email, password, role string) (*models.UserResponse, error) {
	nama = strings.TrimSpace(nama)
	email = strings.TrimSpace(email)

	if nama == "" || email == "" {
		return nil, apperr.InvalidInput("nama dan email wajib diisi")
	}
	if len(password) < 8 {
		return nil, apperr.InvalidInput("password minimal 8 karakter")
	}
	if !database.IsValidRole(role) {
		return nil, apperr.InvalidInput("role tidak dikenal: %s", role)
	}

	if _, err := s.store.GetUserByEmail(email); err == nil {
		return nil, apperr.Conflict("email %s sudah terdaftar", email)
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, apperr.Internal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	u := &database.User{
		Nama:     nama,
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	if err := s.store.InsertUser(u); err != nil {
		return nil, apperr.Internal(err)
	}

	resp := toResponse(*u)
	return &resp, nil
}

func (s *Service) Update(id int, nama, email, role string) (*models.UserResponse, error) {
	nama = strings.TrimSpace(nama)
	email = strings.TrimSpace(email)

	if nama == "" || email == "" {
		return nil, apperr.InvalidInput("nama dan email wajib diisi")
	}
	if !database.IsValidRole(role) {
		return nil, apperr.InvalidInput("role tidak dikenal: %s", role)
	}

	u := &database.User{ID: id, Nama: nama, Email: email, Role: role}
	if err := s.store.UpdateUser(u); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.NotFound("pengguna tidak ditemukan")
		}
		return nil, apperr.Internal(err)
	}

	resp := toResponse(*u)
	return &resp, nil
}

// RegisterDeviceToken menyimpan token FCM milik perangkat pengguna.
func (s *Service) RegisterDeviceToken(id int, token string) error {
	if strings.TrimSpace(token) == "" {
		return apperr.InvalidInput("device token wajib diisi")
	}
	if err := s.store.UpdateUserDeviceToken(id, token); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return apperr.NotFound("pengguna tidak ditemukan")
		}
		return apperr.Internal(err)
	}
	return nil
}

// Delete menolak penghapusan selama masih ada janji temu yang menunjuk ke
// pengguna tersebut.
func (s *Service) Delete(id int) error {
	hasAppointments, err := s.store.UserHasAppointments(id)
	if err != nil {
		return apperr.Internal(err)
	}
	if hasAppointments {
		return apperr.Conflict("pengguna masih memiliki janji temu dan tidak bisa dihapus")
	}

	if err := s.store.DeleteUser(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return apperr.NotFound("pengguna tidak ditemukan")
		}
		return apperr.Internal(err)
	}
	return nil
}

func toResponse(u database.User) models.UserResponse {
	return models.UserResponse{
		IDPengguna: u.ID,
		Nama:       u.Nama,
		Email:      u.Email,
		Role:       u.Role,
	}
}
