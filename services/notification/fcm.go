package notification

import (
	"context"
	"fmt"

	"subwatch/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// FCMPushSender delivers push messages through Firebase Cloud Messaging. It
// implements reminder.PushSender.
type FCMPushSender struct {
	client *messaging.Client
	logger *zap.Logger
}

// NewFCMPushSender creates a sender around an initialized messaging client.
func NewFCMPushSender(client *messaging.Client, logger *zap.Logger) (*FCMPushSender, error) {
	if client == nil {
		return nil, fmt.Errorf("notification: messaging client is nil")
	}
	return &FCMPushSender{client: client, logger: logger}, nil
}

// Send pushes one message to its destination token.
func (s *FCMPushSender) Send(ctx context.Context, msg models.PushMessage) error {
	if msg.Token == "" {
		return fmt.Errorf("send push: empty destination token")
	}

	m := &messaging.Message{
		Token: msg.Token,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	response, err := s.client.Send(ctx, m)
	if err != nil {
		return fmt.Errorf("send push: failed to send FCM message: %w", err)
	}
	s.logger.Debug("push delivered", zap.String("messageId", response))
	return nil
}
