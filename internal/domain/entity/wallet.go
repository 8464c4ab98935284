package entity

import (
	"time"
)

const (
	WalletEntryCredit     = "credit"
	WalletEntryWithdrawal = "withdrawal"
)

// Wallet holds a vendor's earnings. Stored at wallets/{vendorId}.
type Wallet struct {
	VendorID  string        `json:"vendor_id" firestore:"vendorId"`
	Balance   float64       `json:"balance" firestore:"balance"`
	History   []WalletEntry `json:"history" firestore:"history"`
	CreatedAt time.Time     `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time     `json:"updated_at" firestore:"updatedAt"`
}

type WalletEntry struct {
	ID           string    `json:"id" firestore:"id"`
	Type         string    `json:"type" firestore:"type"` // credit, withdrawal
	Amount       float64   `json:"amount" firestore:"amount"`
	OrderID      string    `json:"order_id,omitempty" firestore:"orderId,omitempty"`
	BalanceAfter float64   `json:"balance_after" firestore:"balanceAfter"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
}

// Credit adds amount to the balance and records it.
func (w *Wallet) Credit(entryID string, amount float64, orderID string, at time.Time) WalletEntry {
	w.Balance += amount
	entry := WalletEntry{
		ID:           entryID,
		Type:         WalletEntryCredit,
		Amount:       amount,
		OrderID:      orderID,
		BalanceAfter: w.Balance,
		CreatedAt:    at,
	}
	w.History = append(w.History, entry)
	w.UpdatedAt = at
	return entry
}

// Withdraw removes amount from the balance. It returns false and leaves the
// wallet untouched when amount exceeds the balance.
func (w *Wallet) Withdraw(entryID string, amount float64, at time.Time) (WalletEntry, bool) {
	if amount > w.Balance {
		return WalletEntry{}, false
	}
	w.Balance -= amount
	entry := WalletEntry{
		ID:           entryID,
		Type:         WalletEntryWithdrawal,
		Amount:       amount,
		BalanceAfter: w.Balance,
		CreatedAt:    at,
	}
	w.History = append(w.History, entry)
	w.UpdatedAt = at
	return entry, true
}
