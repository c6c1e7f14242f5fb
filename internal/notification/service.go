// Package notification mengelola notifikasi per pengguna: baris yang tahan
// lama di database plus, bila dikonfigurasi, dorongan push Firebase ke
// perangkat pemiliknya.
package notification

import (
	"errors"
	"log"

	"bukutamu/internal/apperr"
	"bukutamu/internal/database"
	"bukutamu/pkg/models"
)

type Store interface {
	InsertNotification(n *database.Notification) error
	ListNotifications(userID int, read *bool, limit int) ([]database.Notification, error)
	MarkNotificationRead(id, userID int) error
	DeleteNotification(id, userID int) error
	GetUser(id int) (*database.User, error)
}

// Pusher mengirim push ke satu device token. Opsional; nil berarti tanpa push.
type Pusher interface {
	SendNotification(deviceToken, pesan string) error
}

type Service struct {
	store  Store
	pusher Pusher
}

func NewService(store Store, pusher Pusher) *Service {
	return &Service{store: store, pusher: pusher}
}

// Notify menyimpan baris notifikasi (sumber kebenaran) lalu, best-effort,
// meneruskan ke perangkat pemilik via push. Gagal push tidak menggagalkan
// pemanggil.
func (s *Service) Notify(userID int, pesan string) error {
	n := &database.Notification{
		IDPengguna: userID,
		Pesan:      pesan,
	}
	if err := s.store.InsertNotification(n); err != nil {
		return err
	}

	if s.pusher != nil {
		go s.pushToOwner(userID, pesan)
	}
	return nil
}

func (s *Service) pushToOwner(userID int, pesan string) {
	user, err := s.store.GetUser(userID)
	if err != nil || user.DeviceToken == "" {
		return
	}
	if err := s.pusher.SendNotification(user.DeviceToken, pesan); err != nil {
		log.Printf("⚠️  Gagal push ke pengguna %d: %v", userID, err)
	}
}

func (s *Service) ListForUser(userID int, read *bool, limit int) ([]models.NotificationResponse, error) {
	if limit < 1 {
		limit = 10
	}

	notifications, err := s.store.ListNotifications(userID, read, limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	responses := make([]models.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, models.NotificationResponse{
			IDNotifikasi: n.ID,
			Pesan:        n.Pesan,
			Waktu:        n.Waktu,
			IsRead:       n.IsRead,
		})
	}
	return responses, nil
}

// MarkAsRead hanya berlaku untuk notifikasi milik userID sendiri.
func (s *Service) MarkAsRead(id, userID int) error {
	if err := s.store.MarkNotificationRead(id, userID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return apperr.NotFound("notifikasi tidak ditemukan")
		}
		return apperr.Internal(err)
	}
	return nil
}

func (s *Service) Delete(id, userID int) error {
	if err := s.store.DeleteNotification(id, userID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return apperr.NotFound("notifikasi tidak ditemukan")
		}
		return apperr.Internal(err)
	}
	return nil
}
