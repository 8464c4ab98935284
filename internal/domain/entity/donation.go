package entity

import (
	"time"
)

const (
	DonationSourceCheckout = "checkout"
	DonationSourceDirect   = "direct"
)

type DonatedItem struct {
	Name      string `json:"name" firestore:"name"`
	Quantity  int    `json:"quantity" firestore:"quantity"`
	ProductID string `json:"product_id,omitempty" firestore:"productId,omitempty"`
}

// DonationRecord is an append-only record of items given to a charity.
type DonationRecord struct {
	ID        string        `json:"id" firestore:"id"`
	CharityID string        `json:"charity_id" firestore:"charityId"`
	PostID    string        `json:"post_id,omitempty" firestore:"postId,omitempty"`
	OrderID   string        `json:"order_id,omitempty" firestore:"orderId,omitempty"`
	DonorID   string        `json:"donor_id" firestore:"donorId"`
	DonorName string        `json:"donor_name" firestore:"donorName"`
	Items     []DonatedItem `json:"items" firestore:"items"`
	Source    string        `json:"source" firestore:"source"` // checkout, direct
	CreatedAt time.Time     `json:"created_at" firestore:"createdAt"`
}
