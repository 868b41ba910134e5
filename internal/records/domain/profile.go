package domain

// LoyaltyPointsPerUnit is credited per unit of quantity on every order
// placed while a profile exists.
const LoyaltyPointsPerUnit = 10

// Address is a plain value embedded in a profile. No field is validated.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// UserProfile is a denormalized per-user aggregate. User is a snapshot
// taken when the profile was created and is deliberately not kept in sync
// with later user mutations. TotalOrders and LoyaltyPoints count only
// orders placed after the profile existed.
type UserProfile struct {
	UserID        int64   `json:"user_id"`
	User          User    `json:"user"`
	Address       Address `json:"address"`
	TotalOrders   int64   `json:"total_orders"`
	LoyaltyPoints int64   `json:"loyalty_points"`
}

// Exists reports whether the record refers to a stored profile.
func (p UserProfile) Exists() bool {
	return p.UserID != 0
}
