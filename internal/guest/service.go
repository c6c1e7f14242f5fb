// Package guest mengelola data tamu: orang tua atau wali yang membuat janji
// temu dengan staf sekolah.
package guest

import (
	"errors"
	"strings"

	"bukutamu/internal/apperr"
	"bukutamu/internal/database"
	"bukutamu/pkg/models"
)

const maxNamaLength = 100

type Store interface {
	ListTamu(page, limit int) ([]database.Guest, int, error)
	GetTamu(id int) (*database.Guest, error)
	InsertTamu(g *database.Guest) error
	UpdateTamu(g *database.Guest) error
	SearchTamu(q string) ([]database.Guest, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(page, limit int) (*models.PagedResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	guests, total, err := s.store.ListTamu(page, limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &models.PagedResponse{
		Total: total,
		Page:  page,
		Limit: limit,
		Data:  toResponses(guests),
	}, nil
}

func (s *Service) Get(id int) (*models.TamuResponse, error) {
	g, err := s.store.GetTamu(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.NotFound("tamu tidak ditemukan")
		}
		return nil, apperr.Internal(err)
	}
	resp := toResponse(*g)
	return &resp, nil
}

func (s *Service) Create(nama, telepon string) (*models.TamuResponse, error) {
	nama, telepon, err := validate(nama, telepon)
	if err != nil {
		return nil, err
	}

	g := &database.Guest{Nama: nama, Telepon: telepon}
	if err := s.store.InsertTamu(g); err != nil {
		return nil, apperr.Internal(err)
	}

	resp := toResponse(*g)
	return &resp, nil
}

func (s *Service) Update(id int, nama, telepon string) (*models.TamuResponse, error) {
	nama, telepon, err := validate(nama, telepon)
	if err != nil {
		return nil, err
	}

	g := &database.Guest{ID: id, Nama: nama, Telepon: telepon}
	if err := s.store.UpdateTamu(g); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.NotFound("tamu tidak ditemukan")
		}
		return nil, apperr.Internal(err)
	}

	resp := toResponse(*g)
	return &resp, nil
}

// Search mencocokkan nama atau nomor telepon, dipakai resepsionis saat tamu
// datang tanpa membawa kode QR.
func (s *Service) Search(q string) ([]models.TamuResponse, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperr.InvalidInput("kata kunci pencarian wajib diisi")
	}

	guests, err := s.store.SearchTamu(q)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return toResponses(guests), nil
}

func validate(nama, telepon string) (string, string, error) {
	nama = strings.TrimSpace(nama)
	telepon = strings.TrimSpace(telepon)

	if nama == "" {
		return "", "", apperr.InvalidInput("nama tamu wajib diisi")
	}
	if len(nama) > maxNamaLength {
		return "", "", apperr.InvalidInput("nama tamu maksimal %d karakter", maxNamaLength)
	}
	if telepon == "" {
		return "", "", apperr.InvalidInput("nomor telepon wajib diisi")
	}
	return nama, telepon, nil
}

func toResponse(g database.Guest) models.TamuResponse {
	return models.TamuResponse{
		IDTamu:  g.ID,
		Nama:    g.Nama,
		Telepon: g.Telepon,
	}
}

func toResponses(guests []database.Guest) []models.TamuResponse {
	responses := make([]models.TamuResponse, 0, len(guests))
	for _, g := range guests {
		responses = append(responses, toResponse(g))
	}
	return responses
}
