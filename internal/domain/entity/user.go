package entity

import "time"

// Roles de usuario. Manager hereda las vistas de gestión; admin todo.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// ValidRole indica si r es uno de los roles conocidos.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleManager || r == RoleUser
}

// User es un usuario interno de la aplicación.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	FullName     string
	Email        string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
