package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"ripple/internal/domain/entity"
	"ripple/internal/domain/repository"
	"ripple/pkg/errors"
)

type firestoreWalletRepository struct {
	client *firestore.Client
}

func NewFirestoreWalletRepository(client *firestore.Client) repository.WalletRepository {
	return &firestoreWalletRepository{
		client: client,
	}
}

func walletRef(client *firestore.Client, vendorID string) *firestore.DocumentRef {
	return client.Collection("wallets").Doc(vendorID)
}

// getWalletTx reads the wallet inside tx, returning a fresh empty wallet when
// the document does not exist yet.
func getWalletTx(tx *firestore.Transaction, ref *firestore.DocumentRef) (*entity.Wallet, error) {
	doc, err := tx.Get(ref)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			now := time.Now()
			return &entity.Wallet{
				VendorID:  ref.ID,
				History:   []entity.WalletEntry{},
				CreatedAt: now,
				UpdatedAt: now,
			}, nil
		}
		return nil, err
	}

	var wallet entity.Wallet
	if err := doc.DataTo(&wallet); err != nil {
		return nil, err
	}
	wallet.VendorID = ref.ID
	if wallet.History == nil {
		wallet.History = []entity.WalletEntry{}
	}
	return &wallet, nil
}

func (r *firestoreWalletRepository) GetOrCreate(ctx context.Context, vendorID string) (*entity.Wallet, error) {
	ref := walletRef(r.client, vendorID)

	var wallet *entity.Wallet
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		w, err := getWalletTx(tx, ref)
		if err != nil {
			return err
		}
		wallet = w
		return tx.Set(ref, w)
	})
	if err != nil {
		return nil, errors.Wrap(err, "Failed to get wallet")
	}

	return wallet, nil
}

func (r *firestoreWalletRepository) Credit(ctx context.Context, vendorID string, amount float64, orderID string) (*entity.Wallet, error) {
	ref := walletRef(r.client, vendorID)
	entryID := uuid.New().String()

	var wallet *entity.Wallet
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		w, err := getWalletTx(tx, ref)
		if err != nil {
			return err
		}
		w.Credit(entryID, amount, orderID, time.Now())
		wallet = w
		return tx.Set(ref, w)
	})
	if err != nil {
		return nil, errors.Wrap(err, "Failed to credit wallet")
	}

	return wallet, nil
}

func (r *firestoreWalletRepository) Withdraw(ctx context.Context, vendorID string, amount float64) (*entity.Wallet, error) {
	ref := walletRef(r.client, vendorID)
	entryID := uuid.New().String()

	var wallet *entity.Wallet
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		w, err := getWalletTx(tx, ref)
		if err != nil {
			return err
		}
		if _, ok := w.Withdraw(entryID, amount, time.Now()); !ok {
			return errors.InsufficientBalance()
		}
		wallet = w
		return tx.Set(ref, w)
	})
	if err != nil {
		return nil, errors.Wrap(err, "Failed to withdraw from wallet")
	}

	return wallet, nil
}
