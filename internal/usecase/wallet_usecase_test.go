package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ripple/pkg/errors"
)

func TestWalletOverdraftIsRejected(t *testing.T) {
	s := newMemStore()
	uc := NewWalletUseCase(memWalletRepo{s})
	ctx := context.Background()

	_, err := uc.Credit(ctx, "v1", 20, "order-1")
	require.NoError(t, err)

	_, err = uc.Withdraw(ctx, "v1", 25)
	assert.True(t, errors.Is(err, errors.CodeInsufficientBalance))

	wallet, err := uc.GetWallet(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, 20.0, wallet.Balance)
	assert.Len(t, wallet.History, 1)
}

func TestWalletLazyCreateAndWithdraw(t *testing.T) {
	s := newMemStore()
	uc := NewWalletUseCase(memWalletRepo{s})
	ctx := context.Background()

	wallet, err := uc.GetWallet(ctx, "fresh")
	require.NoError(t, err)
	assert.Zero(t, wallet.Balance)
	assert.Empty(t, wallet.History)

	_, err = uc.Credit(ctx, "fresh", 50, "")
	require.NoError(t, err)
	wallet, err = uc.Withdraw(ctx, "fresh", 30)
	require.NoError(t, err)
	assert.Equal(t, 20.0, wallet.Balance)
	assert.Len(t, wallet.History, 2)
}

func TestWalletAmountsMustBePositive(t *testing.T) {
	uc := NewWalletUseCase(memWalletRepo{newMemStore()})
	ctx := context.Background()

	_, err := uc.Credit(ctx, "v", 0, "")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
	_, err = uc.Withdraw(ctx, "v", -5)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}
