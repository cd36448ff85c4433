package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una entrada.
// La derivación automática solo produce Recibida, En proceso o Entregada;
// Prefacturado lo asigna el ensamblador de documentos o un admin a mano.
const (
	StatusRecibida     = "Recibida"
	StatusEnProceso    = "En proceso"
	StatusEntregada    = "Entregada"
	StatusPrefacturado = "Prefacturado"
)

// ValidStatus indica si s es uno de los estados conocidos.
func ValidStatus(s string) bool {
	switch s {
	case StatusRecibida, StatusEnProceso, StatusEntregada, StatusPrefacturado:
		return true
	}
	return false
}

// Entry representa una recepción de mercancía de/para un cliente,
// identificada por un código secuencial.
type Entry struct {
	Code      int
	Date      time.Time
	WhoInput  string
	Client    string // nombre del cliente (no su ID)
	Status    string
	Photo     []byte // nunca se persiste; tolerar nil al recargar
	Items     []EntryItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EntryItem es una línea de producto dentro de una entrada.
// UnitPrice es un snapshot resuelto al escribir; solo la propagación
// retroactiva de precios del catálogo lo reescribe.
type EntryItem struct {
	ID             string
	ProductID      string // código del producto en el catálogo
	Description    string
	Reference1     string
	Reference2     string
	SizeQuantities map[string]int // talla -> cantidad recibida
	UnitPrice      decimal.Decimal
}
