package domain

// Address is a delivery address owned by one user. Cart lines and order items
// reference addresses by id, the fields are never copied.
type Address struct {
	ID      int64  `json:"id"`
	OwnerID int64  `json:"ownerId"`
	Line1   string `json:"line1,omitempty"`
	Line2   string `json:"line2,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}
