package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
)

type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Phone        *string
	PasswordHash string
	Role         valueobject.Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) IsProvider() bool {
	return u.Role == valueobject.RoleProvider
}

func (u *User) IsAdmin() bool {
	return u.Role == valueobject.RoleAdmin
}

// PromoteToProvider moves a CLIENT to PROVIDER. It reports whether the role
// changed; providers and admins are left as they are.
func (u *User) PromoteToProvider() bool {
	if u.Role != valueobject.RoleClient {
		return false
	}
	u.Role = valueobject.RoleProvider
	u.UpdatedAt = time.Now()
	return true
}
