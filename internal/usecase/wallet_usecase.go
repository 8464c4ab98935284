package usecase

import (
	"context"

	"ripple/internal/domain/entity"
	"ripple/internal/domain/repository"
	"ripple/pkg/errors"
)

type WalletUseCase struct {
	walletRepo repository.WalletRepository
}

func NewWalletUseCase(walletRepo repository.WalletRepository) *WalletUseCase {
	return &WalletUseCase{
		walletRepo: walletRepo,
	}
}

// GetWallet returns the vendor's wallet, creating an empty one on first use.
func (uc *WalletUseCase) GetWallet(ctx context.Context, vendorID string) (*entity.Wallet, error) {
	return uc.walletRepo.GetOrCreate(ctx, vendorID)
}

func (uc *WalletUseCase) Credit(ctx context.Context, vendorID string, amount float64, orderID string) (*entity.Wallet, error) {
	if amount <= 0 {
		return nil, errors.BadRequest("Amount must be greater than zero", nil)
	}
	return uc.walletRepo.Credit(ctx, vendorID, amount, orderID)
}

func (uc *WalletUseCase) Withdraw(ctx context.Context, vendorID string, amount float64) (*entity.Wallet, error) {
	if amount <= 0 {
		return nil, errors.BadRequest("Amount must be greater than zero", nil)
	}
	return uc.walletRepo.Withdraw(ctx, vendorID, amount)
}
