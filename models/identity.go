package models

// Identity is the signed-in user as remembered by the browser session.
// It is an opaque credential for order-history lookups; nothing validates it locally.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"user_email"`
}

// Valid reports whether both halves of the identity are present.
func (i Identity) Valid() bool {
	return i.UserID != "" && i.Email != ""
}
