package usecase

import (
	"context"
	"io"
	"time"

	"ripple/internal/domain/entity"
)

type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	DeleteUser(ctx context.Context, uid string) error
	VerifyToken(ctx context.Context, token string) (string, error)
	SignInWithPassword(ctx context.Context, email, password string) (*entity.AuthSession, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// Notifier pushes realtime events to a user's open connections.
type Notifier interface {
	Notify(userID, eventType string, data interface{})
}

type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type ImageStore interface {
	UploadImage(ctx context.Context, file io.Reader, contentType, folder string) (string, error)
	// DeleteFile removes an object this store served. URLs it did not serve
	// are ignored.
	DeleteFile(ctx context.Context, fileURL string) error
}

const (
	EventOrderCreated   = "order_created"
	EventOrderStatus    = "order_status"
	EventWalletCredited = "wallet_credited"
)

type noopNotifier struct{}

func (noopNotifier) Notify(string, string, interface{}) {}
