package entity

import (
	"math"
	"strings"
	"time"
)

const (
	PostTypeFundraising = "fundraising"
	PostTypeImpact      = "impact"
)

type NeededItem struct {
	Name     string `json:"name" firestore:"name"`
	Quantity int    `json:"quantity" firestore:"quantity"`
	Donated  int    `json:"donated" firestore:"donated"`
}

// CharityPost is either a fundraising drive or an impact update, told apart
// by PostType. Stored in the charities collection.
type CharityPost struct {
	ID          string       `json:"id" firestore:"id"`
	CharityID   string       `json:"charity_id" firestore:"charityId"`
	CharityName string       `json:"charity_name" firestore:"charityName"`
	PostType    string       `json:"post_type" firestore:"postType"`
	Headline    string       `json:"headline" firestore:"headline"`
	Description string       `json:"description" firestore:"description"`
	Location    string       `json:"location,omitempty" firestore:"location,omitempty"`
	NeededItems []NeededItem `json:"needed_items,omitempty" firestore:"neededItems,omitempty"`
	Deadline    *time.Time   `json:"deadline,omitempty" firestore:"deadline,omitempty"`
	ImageURLs   []string     `json:"image_urls,omitempty" firestore:"imageUrls,omitempty"`
	CreatedAt   time.Time    `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time    `json:"updated_at" firestore:"updatedAt"`
}

// KindnessCup is the funding progress of a post as a whole percentage of the
// needed item quantities that have been donated. Over-donation of one item
// does not count towards another.
func (p *CharityPost) KindnessCup() int {
	needed, donated := 0, 0
	for _, item := range p.NeededItems {
		if item.Quantity <= 0 {
			continue
		}
		needed += item.Quantity
		if item.Donated > item.Quantity {
			donated += item.Quantity
		} else if item.Donated > 0 {
			donated += item.Donated
		}
	}
	if needed == 0 {
		return 0
	}
	return int(math.Round(100 * float64(donated) / float64(needed)))
}

// AddDonations bumps the donated counters of needed items whose name matches,
// ignoring case and surrounding whitespace. Unknown items are ignored.
func (p *CharityPost) AddDonations(items []DonatedItem) {
	for _, donated := range items {
		name := normalizeItemName(donated.Name)
		for i := range p.NeededItems {
			if normalizeItemName(p.NeededItems[i].Name) == name {
				p.NeededItems[i].Donated += donated.Quantity
				break
			}
		}
	}
}

func normalizeItemName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
