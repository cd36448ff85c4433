package dto

import "github.com/shopspring/decimal"

// Presets de rango de fechas para el filtro del ensamblador.
const (
	DateRangeAll       = "all"
	DateRangeToday     = "today"
	DateRangeYesterday = "yesterday"
	DateRangeLast7     = "last7"
	DateRangeLast15    = "last15"
	DateRangeLast30    = "last30"
	DateRangeCustom    = "custom"
)

// CreateDraftRequest body para POST /api/documents/draft.
type CreateDraftRequest struct {
	EntryCodes   []int           `json:"entry_codes"`
	DocumentType string          `json:"document_type"` // Prefactura | Factura
	TaxRate      decimal.Decimal `json:"tax_rate"`      // porcentaje, ej. 21
	DateRange    string          `json:"date_range,omitempty"` // preset o custom
	StartDate    string          `json:"start_date,omitempty"` // YYYY-MM-DD si custom
	EndDate      string          `json:"end_date,omitempty"`
}

// DocumentItemDTO línea de documento (snapshot editable).
type DocumentItemDTO struct {
	EntryCode         int                 `json:"entry_code"`
	ProductCode       string              `json:"product_code"`
	Description       string              `json:"description"`
	Reference1        string              `json:"reference1,omitempty"`
	Reference2        string              `json:"reference2,omitempty"`
	ClientName        string              `json:"client_name"`
	RecibidaQuantity  int                 `json:"recibida_quantity"`
	EntregadaQuantity int                 `json:"entregada_quantity"`
	FaltaQuantity     int                 `json:"falta_quantity"`
	Status            string              `json:"status"`
	DeliveryBreakdown []BreakdownResponse `json:"delivery_breakdown"`
	UnitPrice         decimal.Decimal     `json:"unit_price"`
	Total             decimal.Decimal     `json:"total"`
}

// DocumentDTO documento completo (borrador o guardado).
type DocumentDTO struct {
	ID             string            `json:"id"`
	DocumentNumber string            `json:"document_number"`
	DocumentType   string            `json:"document_type"`
	ClientID       string            `json:"client_id"`
	Date           string            `json:"date"`
	Items          []DocumentItemDTO `json:"items"`
	Subtotal       decimal.Decimal   `json:"subtotal"`
	Surcharge      decimal.Decimal   `json:"surcharge"`
	TaxRate        decimal.Decimal   `json:"tax_rate"`
	TaxAmount      decimal.Decimal   `json:"tax_amount"`
	Total          decimal.Decimal   `json:"total"`
	StartDate      string            `json:"start_date,omitempty"`
	EndDate        string            `json:"end_date,omitempty"`
}

// InvoiceableEntryResponse entrada elegible para facturar.
type InvoiceableEntryResponse struct {
	Code        int    `json:"code"`
	Date        string `json:"date"`
	Description string `json:"description"` // descripciones de líneas unidas con " + "
	Qty         int    `json:"qty"`
	Status      string `json:"status"`
	Client      string `json:"client"`
}
