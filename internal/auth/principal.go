package auth

import "time"

// Principal - аутентифицированный пользователь запроса.
type Principal struct {
	ID        int
	Role      string
	TokenID   string
	ExpiresAt time.Time
}

func (p *Principal) HasRole(role string) bool {
	return p != nil && p.Role == role
}
