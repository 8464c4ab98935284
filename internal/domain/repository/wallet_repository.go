package repository

import (
	"context"

	"ripple/internal/domain/entity"
)

type WalletRepository interface {
	// GetOrCreate returns the vendor's wallet, creating an empty one if needed.
	GetOrCreate(ctx context.Context, vendorID string) (*entity.Wallet, error)
	Credit(ctx context.Context, vendorID string, amount float64, orderID string) (*entity.Wallet, error)
	// Withdraw fails with an insufficient balance error and leaves the wallet
	// untouched when amount exceeds the balance.
	Withdraw(ctx context.Context, vendorID string, amount float64) (*entity.Wallet, error)
}
