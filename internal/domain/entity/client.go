package entity

import "time"

// Client es un cliente del taller.
type Client struct {
	ID        string
	Name      string
	Address   string
	Email     string
	Phone     string
	VATNumber string
	Logo      []byte // nunca se persiste; tolerar nil al recargar
	CreatedAt time.Time
	UpdatedAt time.Time
}
