package entity

import (
	"strings"
	"time"
)

type Listing struct {
	ID          string    `json:"id" firestore:"id"`
	VendorID    string    `json:"vendor_id" firestore:"vendorId"`
	VendorName  string    `json:"vendor_name" firestore:"vendorName"`
	Name        string    `json:"name" firestore:"name"`
	Description string    `json:"description" firestore:"description"`
	Price       float64   `json:"price" firestore:"price"`
	Quantity    int       `json:"quantity" firestore:"quantity"` // stock
	Category    string    `json:"category" firestore:"category"`
	Condition   string    `json:"condition" firestore:"condition"`
	ImageURL    string    `json:"image_url,omitempty" firestore:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}

// DecrementStock returns the stock left after ordering n units. Stock never
// goes below zero.
func DecrementStock(current, n int) int {
	if remaining := current - n; remaining > 0 {
		return remaining
	}
	return 0
}

// MatchesKeywords reports whether every whitespace-separated keyword of query
// occurs in the listing's name, category or description.
func (l *Listing) MatchesKeywords(query string) bool {
	keywords := strings.Fields(strings.ToLower(query))
	if len(keywords) == 0 {
		return true
	}

	haystack := strings.ToLower(l.Name + " " + l.Category + " " + l.Description)
	for _, kw := range keywords {
		if !strings.Contains(haystack, kw) {
			return false
		}
	}
	return true
}
