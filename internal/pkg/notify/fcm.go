package notify

import (
	"context"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/pkg/errors"
	"google.golang.org/api/option"

	"sdm-yayasan-backend/config"
)

type Pusher interface {
	Push(ctx context.Context, tokens []string, title, body string, data map[string]string) error
}

type FCMPusher struct {
	client *messaging.Client
}

// NewPusher menyiapkan Firebase Admin SDK. Tanpa FIREBASE_PROJECT_ID push hanya dicatat di log.
func NewPusher(ctx context.Context, cfg config.FirebaseConfig) (Pusher, error) {
	if !cfg.Enabled() {
		return LogPusher{}, nil
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "initializing Firebase app")
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "getting Firebase Messaging client")
	}
	log.Println("Firebase Admin SDK initialized successfully.")
	return &FCMPusher{client: client}, nil
}

func (p *FCMPusher) Push(ctx context.Context, tokens []string, title, body string, data map[string]string) error {
	if len(tokens) == 0 {
		return nil
	}
	resp, err := p.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority:     "high",
			Notification: &messaging.AndroidNotification{ChannelID: "default_channel"},
		},
	})
	if err != nil {
		return errors.Wrap(err, "kirim FCM")
	}
	if resp.FailureCount > 0 {
		log.Printf("FCM: %d dari %d token gagal", resp.FailureCount, len(tokens))
	}
	return nil
}

type LogPusher struct{}

func (LogPusher) Push(_ context.Context, tokens []string, title, _ string, _ map[string]string) error {
	log.Printf("[PUSH] Firebase tidak aktif, lewati %q ke %d perangkat", title, len(tokens))
	return nil
}
