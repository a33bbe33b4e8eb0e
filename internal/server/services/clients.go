package services

import "github.com/dmitrijs2005/bookhub/internal/server/models"

// ClientDirectory answers balance and role lookups from a table fixed at
// construction. It is safe for concurrent use because it is never written.
type ClientDirectory struct {
	clients map[int64]models.ClientBalance
}

// NewClientDirectory copies seed into a private map; later changes to seed
// are not visible.
func NewClientDirectory(seed []models.ClientBalance) *ClientDirectory {
	clients := make(map[int64]models.ClientBalance, len(seed))
	for _, c := range seed {
		clients[c.Phone] = c
	}
	return &ClientDirectory{clients: clients}
}

// DefaultClients is the table the server starts with.
func DefaultClients() []models.ClientBalance {
	return []models.ClientBalance{
		{Phone: 22112345678, Balance: 50000, Role: models.RoleClient},
		{Phone: 22112345679, Balance: 100000, Role: models.RoleVIP},
		{Phone: 22112345680, Balance: 25000, Role: models.RoleClient},
	}
}

// Balance returns 0 for unknown phones.
func (d *ClientDirectory) Balance(phone int64) int64 {
	return d.clients[phone].Balance
}

// Role returns models.RoleUnknown for unknown phones.
func (d *ClientDirectory) Role(phone int64) string {
	c, ok := d.clients[phone]
	if !ok || c.Role == "" {
		return models.RoleUnknown
	}
	return c.Role
}
