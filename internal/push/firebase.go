// Package push mengirim notifikasi Firebase Cloud Messaging ke perangkat
// staf sekolah.
package push

import (
	"context"
	"fmt"
	"log"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type FirebaseService struct {
	client *messaging.Client
	ctx    context.Context
}

// NewFirebaseService menginisialisasi klien Firebase dengan dukungan FCM.
func NewFirebaseService(credentialsPath string) (*FirebaseService, error) {
	ctx := context.Background()

	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Messaging client: %w", err)
	}

	log.Println("✅ Firebase service initialized successfully")

	return &FirebaseService{
		client: client,
		ctx:    ctx,
	}, nil
}

// SendNotification mengirim pesan buku tamu ke satu perangkat staf.
func (s *FirebaseService) SendNotification(deviceToken, pesan string) error {
	if deviceToken == "" {
		return fmt.Errorf("device token is empty")
	}

	message := &messaging.Message{
		Token: deviceToken,
		Notification: &messaging.Notification{
			Title: "🏫 Buku Tamu Sekolah",
			Body:  pesan,
		},
		Data: map[string]string{
			"type":      "appointment_update",
			"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:        "default",
				Priority:     messaging.PriorityHigh,
				ChannelID:    "bukutamu_appointments",
				DefaultSound: true,
			},
		},
	}

	response, err := s.client.Send(s.ctx, message)
	if err != nil {
		return fmt.Errorf("error sending appointment push: %w", err)
	}

	log.Printf("🚀 Push janji temu terkirim: %s", response)
	return nil
}

// SendReminder mengirim pengingat jadwal ke guru sebelum tamunya tiba.
func (s *FirebaseService) SendReminder(deviceToken, namaTamu, jadwal string) error {
	if deviceToken == "" {
		return fmt.Errorf("device token is empty")
	}

	message := &messaging.Message{
		Token: deviceToken,
		Notification: &messaging.Notification{
			Title: "⏰ Pengingat Janji Temu",
			Body:  fmt.Sprintf("Janji temu dengan %s dijadwalkan pada %s.", namaTamu, jadwal),
		},
		Data: map[string]string{
			"type":      "appointment_reminder",
			"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
		},
		Android: &messaging.AndroidConfig{
			Priority: "normal",
			Notification: &messaging.AndroidNotification{
				Sound:        "default",
				ChannelID:    "bukutamu_reminders",
				DefaultSound: true,
			},
		},
	}

	response, err := s.client.Send(s.ctx, message)
	if err != nil {
		return fmt.Errorf("error sending reminder push: %w", err)
	}

	log.Printf("⏰ Pengingat terkirim: %s", response)
	return nil
}

// IsInvalidTokenError memeriksa apakah error dari Firebase menandakan token
// yang sudah tidak terdaftar.
func IsInvalidTokenError(err error) bool {
	return messaging.IsRegistrationTokenNotRegistered(err) || messaging.IsSenderIDMismatch(err)
}
