package entity

import (
	"time"
)

type CartItem struct {
	ID          string    `json:"id" firestore:"id"`
	DonorID     string    `json:"donor_id" firestore:"donorId"`
	ProductID   string    `json:"product_id" firestore:"productId"`
	ProductName string    `json:"product_name" firestore:"productName"`
	CharityID   string    `json:"charity_id" firestore:"charityId"`
	CharityName string    `json:"charity_name" firestore:"charityName"`
	PostID      string    `json:"post_id,omitempty" firestore:"postId,omitempty"`
	Vendor      string    `json:"vendor" firestore:"vendor"` // vendor ID
	VendorName  string    `json:"vendor_name" firestore:"vendorName"`
	Quantity    int       `json:"quantity" firestore:"quantity"`
	Price       float64   `json:"price" firestore:"price"`
	Selected    bool      `json:"selected" firestore:"selected"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}

// GroupKey identifies the order a cart row ends up in.
func (c *CartItem) GroupKey() string {
	return c.CharityID + "|" + c.Vendor
}

// CartGroup is the set of selected cart rows sharing a charity and a vendor.
type CartGroup struct {
	CharityID   string      `json:"charity_id"`
	CharityName string      `json:"charity_name"`
	VendorID    string      `json:"vendor_id"`
	VendorName  string      `json:"vendor_name"`
	Items       []*CartItem `json:"items"`
}

// GroupCartItems partitions cart rows by charity and vendor, keeping the order
// in which each group is first seen.
func GroupCartItems(items []*CartItem) []*CartGroup {
	index := make(map[string]*CartGroup)
	var groups []*CartGroup

	for _, item := range items {
		key := item.GroupKey()
		group, ok := index[key]
		if !ok {
			group = &CartGroup{
				CharityID:   item.CharityID,
				CharityName: item.CharityName,
				VendorID:    item.Vendor,
				VendorName:  item.VendorName,
			}
			index[key] = group
			groups = append(groups, group)
		}
		group.Items = append(group.Items, item)
	}

	return groups
}
