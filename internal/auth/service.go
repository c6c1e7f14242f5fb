// Package auth menangani login, rotasi refresh token, dan pemeriksaan
// kredensial pengguna.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"bukutamu/internal/apperr"
	"bukutamu/internal/database"
	"bukutamu/pkg/models"
)

type Store interface {
	GetUserByEmail(email string) (*database.User, error)
	GetUser(id int) (*database.User, error)
	UpdateUserPassword(id int, hash string) error
	InsertRefreshToken(t *database.RefreshToken) error
	GetRefreshToken(token string) (*database.RefreshToken, error)
	RevokeRefreshToken(id int) error
	DeleteRefreshToken(token string) error
}

type Service struct {
	store           Store
	jwtSecret       string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

func NewService(store Store, jwtSecret string, accessTokenTTL, refreshTokenTTL time.Duration) *Service {
	return &Service{
		store:           store,
		jwtSecret:       jwtSecret,
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
}

// Login memverifikasi email dan password lalu menerbitkan pasangan token.
// Email tak dikenal dan password salah menghasilkan pesan yang sama.
func (s *Service) Login(email, password string) (*models.LoginResponse, error) {
	if email == "" || password == "" {
		return nil, apperr.InvalidInput("email dan password wajib diisi")
	}

	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.Unauthorized("email atau password salah")
		}
		return nil, apperr.Internal(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperr.Unauthorized("email atau password salah")
	}

	accessToken, refreshToken, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	log.Printf("🔑 Login berhasil: %s (%s)", user.Email, user.Role)

	return &models.LoginResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		User: models.UserResponse{
			IDPengguna: user.ID,
			Nama:       user.Nama,
			Email:      user.Email,
			Role:       user.Role,
		},
	}, nil
}

// Refresh menukar refresh token yang masih hidup dengan pasangan baru.
// Token lama dicabut: satu token hanya bisa dipakai sekali.
func (s *Service) Refresh(refreshToken string) (*models.RefreshTokenResponse, error) {
	if refreshToken == "" {
		return nil, apperr.InvalidInput("refresh token wajib diisi")
	}

	stored, err := s.store.GetRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.Unauthorized("refresh token tidak valid")
		}
		return nil, apperr.Internal(err)
	}
	if stored.Revoked || time.Now().After(stored.ExpiresAt) {
		return nil, apperr.Unauthorized("refresh token sudah kedaluwarsa")
	}

	user, err := s.store.GetUser(stored.IDPengguna)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.Unauthorized("refresh token tidak valid")
		}
		return nil, apperr.Internal(err)
	}

	if err := s.store.RevokeRefreshToken(stored.ID); err != nil {
		return nil, apperr.Internal(err)
	}

	accessToken, newRefresh, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	return &models.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		ExpiresIn:    int(s.accessTokenTTL.Seconds()),
	}, nil
}

// Logout membuang refresh token. Token yang sudah tidak ada diperlakukan
// sebagai sukses.
func (s *Service) Logout(refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.store.DeleteRefreshToken(refreshToken); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *Service) ChangePassword(userID int, oldPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return apperr.InvalidInput("password baru minimal 8 karakter")
	}

	user, err := s.store.GetUser(userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return apperr.NotFound("pengguna tidak ditemukan")
		}
		return apperr.Internal(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return apperr.Unauthorized("password lama salah")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal(err)
	}
	if err := s.store.UpdateUserPassword(userID, string(hash)); err != nil {
		return apperr.Internal(err)
	}

	log.Printf("🔒 Password pengguna %d diganti", userID)
	return nil
}

func (s *Service) issueTokens(user *database.User) (string, string, error) {
	accessToken, err := NewAccessToken(s.jwtSecret, s.accessTokenTTL, user.ID, user.Nama, user.Role)
	if err != nil {
		return "", "", apperr.Internal(fmt.Errorf("failed to sign access token: %w", err))
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		return "", "", apperr.Internal(err)
	}

	row := &database.RefreshToken{
		IDPengguna: user.ID,
		Token:      refreshToken,
		ExpiresAt:  time.Now().Add(s.refreshTokenTTL),
	}
	if err := s.store.InsertRefreshToken(row); err != nil {
		return "", "", apperr.Internal(err)
	}

	return accessToken, refreshToken, nil
}

func generateRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
