package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento de facturación.
const (
	DocumentTypePrefactura = "Prefactura"
	DocumentTypeFactura    = "Factura"
)

// DraftDocumentID es el ID de un borrador aún no guardado; al guardar se
// reemplaza por un UUID real.
const DraftDocumentID = "new-draft"

// Document es una prefactura o factura ensamblada a partir de entradas.
// Invariantes: Total = Subtotal + Surcharge + TaxAmount;
// TaxAmount = (Subtotal + Surcharge) * TaxRate / 100.
type Document struct {
	ID             string
	DocumentNumber string // PF-0001 / F-0001, secuencial por tipo
	DocumentType   string
	ClientID       string
	Date           time.Time
	Items          []DocumentItem
	Subtotal       decimal.Decimal
	Surcharge      decimal.Decimal
	TaxRate        decimal.Decimal // porcentaje, ej. 21
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
	StartDate      *time.Time // periodo facturado (opcional)
	EndDate        *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DocumentItem es una línea de facturación: snapshot en el momento del
// ensamblado de cantidades, precio y estado de la entrada origen.
type DocumentItem struct {
	EntryCode         int
	ProductCode       string
	Description       string
	Reference1        string
	Reference2        string
	ClientName        string
	RecibidaQuantity  int
	EntregadaQuantity int
	FaltaQuantity     int
	Status            string // estado de la entrada al ensamblar
	DeliveryBreakdown []DeliveryBreakdown
	UnitPrice         decimal.Decimal
	Total             decimal.Decimal
}

// DeliveryBreakdown agrupa cantidad entregada por fecha (dd/mm/yyyy).
type DeliveryBreakdown struct {
	Date string `json:"date"`
	Qty  int    `json:"qty"`
}
