package entity

import (
	"time"
)

const (
	OrderStatusPending   = "Pending"
	OrderStatusShipped   = "Shipped"
	OrderStatusCompleted = "Completed"
	OrderStatusCancelled = "Cancelled"
)

var orderTransitions = map[string][]string{
	OrderStatusPending: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped: {OrderStatusCompleted},
}

type OrderItem struct {
	ProductID   string  `json:"product_id" firestore:"productId"`
	ProductName string  `json:"product_name" firestore:"productName"`
	Quantity    int     `json:"quantity" firestore:"quantity"`
	Price       float64 `json:"price" firestore:"price"`
	PostID      string  `json:"post_id,omitempty" firestore:"postId,omitempty"`
}

type Order struct {
	ID             string      `json:"id" firestore:"id"`
	DonorID        string      `json:"donor_id" firestore:"donorId"`
	DonorName      string      `json:"donor_name" firestore:"donorName"`
	CharityID      string      `json:"charity_id" firestore:"charityId"`
	CharityName    string      `json:"charity_name" firestore:"charityName"`
	VendorID       string      `json:"vendor_id" firestore:"vendorId"`
	VendorName     string      `json:"vendor_name" firestore:"vendorName"`
	Items          []OrderItem `json:"items" firestore:"items"`
	Total          float64     `json:"total" firestore:"total"`
	Status         string      `json:"status" firestore:"status"`
	WalletCredited bool        `json:"wallet_credited" firestore:"walletCredited"`
	CreatedAt      time.Time   `json:"created_at" firestore:"createdAt"`
	UpdatedAt      time.Time   `json:"updated_at" firestore:"updatedAt"`
	ShippedAt      *time.Time  `json:"shipped_at,omitempty" firestore:"shippedAt,omitempty"`
	CompletedAt    *time.Time  `json:"completed_at,omitempty" firestore:"completedAt,omitempty"`
	CancelledAt    *time.Time  `json:"cancelled_at,omitempty" firestore:"cancelledAt,omitempty"`
}

// ItemsTotal is the sum of price * quantity over the order's stored items.
func (o *Order) ItemsTotal() float64 {
	total := 0.0
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

func (o *Order) CanTransitionTo(status string) bool {
	for _, next := range orderTransitions[o.Status] {
		if next == status {
			return true
		}
	}
	return false
}

// CreditsWallet reports whether moving to status pays the vendor. Payment
// happens once, on the first move into Shipped or Completed.
func (o *Order) CreditsWallet(status string) bool {
	if o.WalletCredited {
		return false
	}
	return status == OrderStatusShipped || status == OrderStatusCompleted
}

// ApplyStatus moves the order to status and stamps the matching timestamp.
func (o *Order) ApplyStatus(status string, at time.Time) {
	o.Status = status
	o.UpdatedAt = at
	switch status {
	case OrderStatusShipped:
		o.ShippedAt = &at
	case OrderStatusCompleted:
		o.CompletedAt = &at
	case OrderStatusCancelled:
		o.CancelledAt = &at
	}
}

func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}
