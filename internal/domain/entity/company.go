package entity

import "time"

// CompanyDetails son los datos fiscales de la empresa (fila única).
type CompanyDetails struct {
	Name      string
	Address   string
	Phone     string
	Email     string
	VATNumber string
	Logo      []byte // nunca se persiste
	UpdatedAt time.Time
}
