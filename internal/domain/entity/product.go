package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryUncategorized es la categoría de los productos creados
// automáticamente al procesar una entrada con descripción desconocida.
const CategoryUncategorized = "Uncategorized"

// Product es un artículo del catálogo. Varios productos pueden compartir
// ModelName: uno general (ClientID vacío) más variantes por cliente; la
// resolución prefiere la variante del cliente.
type Product struct {
	Code        string
	ModelName   string
	Reference   string
	Price       decimal.Decimal
	Category    string
	Description string
	ClientID    string // vacío = producto general
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
