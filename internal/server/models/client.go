package models

// ClientBalance is the read-only account view keyed by phone number.
type ClientBalance struct {
	Phone   int64
	Balance int64
	Role    string
}

// Client roles.
const (
	RoleClient  = "CLIENT"
	RoleVIP     = "VIP"
	RoleUnknown = "UNKNOWN"
)
