package fcm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/AdrianMoldovan/Mentenix/internal/domain/push"
)

var ErrNoSubscription = errors.New("no push subscription")

type Config struct {
	CredentialsFile   string `mapstructure:"credentials_file"`
	CredentialsBase64 string `mapstructure:"credentials_base64"`
}

// TokenSource resolves a user to their registered device tokens.
type TokenSource interface {
	TokensByUser(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type Sender struct {
	client *messaging.Client
	tokens TokenSource
	log    *zap.Logger
}

var _ push.Sender = (*Sender)(nil)

// NewSender builds the FCM transport. Credentials come from a service
// account file, or base64-encoded JSON for deployments where shipping
// a file is awkward.
func NewSender(ctx context.Context, cfg Config, tokens TokenSource, log *zap.Logger) (*Sender, error) {
	var opt option.ClientOption
	switch {
	case cfg.CredentialsBase64 != "":
		raw, err := base64.StdEncoding.DecodeString(cfg.CredentialsBase64)
		if err != nil {
			return nil, fmt.Errorf("decode fcm credentials: %w", err)
		}
		opt = option.WithCredentialsJSON(raw)
	case cfg.CredentialsFile != "":
		opt = option.WithCredentialsFile(cfg.CredentialsFile)
	default:
		return nil, errors.New("fcm credentials not configured")
	}

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init messaging client: %w", err)
	}

	return &Sender{
		client: client,
		tokens: tokens,
		log:    log.With(zap.String("component", "fcm.sender")),
	}, nil
}

// Send fans the message out to every device token of the user. The send
// succeeds when at least one device accepted the message; a user with
// no subscriptions fails so the sweep can retry once they register one.
func (s *Sender) Send(ctx context.Context, to uuid.UUID, msg push.Message) error {
	toks, err := s.tokens.TokensByUser(ctx, to)
	if err != nil {
		return fmt.Errorf("lookup subscriptions: %w", err)
	}
	if len(toks) == 0 {
		return ErrNoSubscription
	}

	delivered := 0
	var lastErr error
	for _, tok := range toks {
		m := &messaging.Message{
			Token: tok,
			Notification: &messaging.Notification{
				Title: msg.Title,
				Body:  msg.Body,
			},
			Data: map[string]string{
				"url":           msg.URL,
				"tag":           msg.Tag,
				"work_order_id": msg.WorkOrderID.String(),
			},
			Webpush: &messaging.WebpushConfig{
				Notification: &messaging.WebpushNotification{Tag: msg.Tag},
				FCMOptions:   &messaging.WebpushFCMOptions{Link: msg.URL},
			},
		}
		if _, err := s.client.Send(ctx, m); err != nil {
			lastErr = err
			s.log.Warn("device send failed",
				zap.String("user_id", to.String()),
				zap.String("tag", msg.Tag),
				zap.Error(err),
			)
			continue
		}
		delivered++
	}
	if delivered == 0 {
		return fmt.Errorf("all deliveries failed: %w", lastErr)
	}
	return nil
}
