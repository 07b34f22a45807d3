// internal/domain/user/entity.go
package user

import "time"

// Roles a session can carry
const (
	RoleCustomer      = "customer"
	RoleDeliveryAgent = "delivery-agent"
)

// User represents an authenticated session profile. It is created at
// login/signup, mutated by profile updates, and cleared at logout.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Mobile     string `json:"mobile"`
	Role       string `json:"role"`
	IsLoggedIn bool   `json:"is_logged_in"`
}

// Account is a registered credential record, persisted separately from the
// session so logout does not destroy the registration.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Mobile       string    `json:"mobile"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// TokenPair is the issued session token set
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Session bundles the profile and tokens returned to the caller
type Session struct {
	User   User      `json:"user"`
	Tokens TokenPair `json:"tokens"`
}

// AddressType values
const (
	AddressTypeHome  = "home"
	AddressTypeWork  = "work"
	AddressTypeOther = "other"
)

// Coordinates is a latitude/longitude pair
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Address represents a saved delivery address
type Address struct {
	ID          string       `json:"id"`
	Type        string       `json:"type"`
	Label       string       `json:"label"`
	Street      string       `json:"street"`
	City        string       `json:"city"`
	State       string       `json:"state"`
	Zip         string       `json:"zip"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	IsDefault   bool         `json:"is_default"`
}
