package entity

import (
	"time"
)

const (
	RoleDonor   = "donor"
	RoleCharity = "charity"
	RoleVendor  = "vendor"
)

// ValidRole reports whether role is one of the three account types.
func ValidRole(role string) bool {
	switch role {
	case RoleDonor, RoleCharity, RoleVendor:
		return true
	}
	return false
}

type User struct {
	ID        string    `json:"id" firestore:"id"`
	Email     string    `json:"email" firestore:"email"`
	Name      string    `json:"name" firestore:"name"`
	Type      string    `json:"type" firestore:"type"` // donor, charity, vendor
	Phone     string    `json:"phone,omitempty" firestore:"phone,omitempty"`
	PhotoURL  string    `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

type Vendor struct {
	ID           string    `json:"id" firestore:"id"`
	BusinessName string    `json:"business_name" firestore:"businessName"`
	Email        string    `json:"email" firestore:"email"`
	Phone        string    `json:"phone,omitempty" firestore:"phone,omitempty"`
	Address      string    `json:"address,omitempty" firestore:"address,omitempty"`
	Category     string    `json:"category,omitempty" firestore:"category,omitempty"`
	Description  string    `json:"description,omitempty" firestore:"description,omitempty"`
	LogoURL      string    `json:"logo_url,omitempty" firestore:"logoURL,omitempty"`
	Type         string    `json:"type" firestore:"type"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updatedAt"`
}

// PublicCharity is the profile a charity exposes to donors.
type PublicCharity struct {
	ID          string    `json:"id" firestore:"id"`
	Name        string    `json:"name" firestore:"name"`
	Email       string    `json:"email,omitempty" firestore:"email,omitempty"`
	Mission     string    `json:"mission,omitempty" firestore:"mission,omitempty"`
	Description string    `json:"description,omitempty" firestore:"description,omitempty"`
	Location    string    `json:"location,omitempty" firestore:"location,omitempty"`
	Website     string    `json:"website,omitempty" firestore:"website,omitempty"`
	LogoURL     string    `json:"logo_url,omitempty" firestore:"logoURL,omitempty"`
	Categories  []string  `json:"categories,omitempty" firestore:"categories,omitempty"`
	Verified    bool      `json:"verified" firestore:"verified"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}

// AuthSession is the token pair issued by a password sign-in.
type AuthSession struct {
	UID          string `json:"uid"`
	Email        string `json:"email"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    string `json:"expires_in"`
}
