package dto

import "github.com/shopspring/decimal"

// EntryItemInput línea de entrada tal como la envía el cliente HTTP.
// El precio no viaja: lo resuelve el catálogo al procesar.
type EntryItemInput struct {
	ID             string         `json:"id,omitempty"` // vacío en alta; estable en edición
	Description    string         `json:"description"`
	Reference1     string         `json:"reference1,omitempty"`
	Reference2     string         `json:"reference2,omitempty"`
	SizeQuantities map[string]int `json:"size_quantities"`
}

// CreateEntryRequest body para POST /api/entries.
type CreateEntryRequest struct {
	Date   string           `json:"date"` // YYYY-MM-DD
	Client string           `json:"client"`
	Items  []EntryItemInput `json:"items"`
}

// UpdateEntryRequest body para PUT /api/entries/:code.
// Status lo aporta el caller (normalmente sin cambios); la pasada reactiva
// lo corrige después si procede.
type UpdateEntryRequest struct {
	Date   string           `json:"date"`
	Client string           `json:"client"`
	Status string           `json:"status"`
	Items  []EntryItemInput `json:"items"`
}

// UpdateEntryStatusRequest body para PATCH /api/entries/:code/status.
type UpdateEntryStatusRequest struct {
	Status string `json:"status"`
}

// DeleteManyRequest body genérico para borrados en lote por código entero.
type DeleteManyRequest struct {
	Codes []int `json:"codes"`
}

// EntryItemResponse línea de entrada en respuestas.
type EntryItemResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	Description    string          `json:"description"`
	Reference1     string          `json:"reference1,omitempty"`
	Reference2     string          `json:"reference2,omitempty"`
	SizeQuantities map[string]int  `json:"size_quantities"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
}

// EntryResponse entrada con cantidades agregadas.
type EntryResponse struct {
	Code              int                 `json:"code"`
	Date              string              `json:"date"`
	WhoInput          string              `json:"who_input"`
	Client            string              `json:"client"`
	Status            string              `json:"status"`
	Items             []EntryItemResponse `json:"items"`
	RecibidaQuantity  int                 `json:"recibida_quantity"`
	DeliveredQuantity int                 `json:"delivered_quantity"`
	RemainingQuantity int                 `json:"remaining_quantity"`
}

// EntryDetailResponse entrada con desglose por línea para la vista de detalle.
type EntryDetailResponse struct {
	EntryResponse
	ItemDetails        []EntryItemDetail `json:"item_details"`
	LatestDeliveryDate string            `json:"latest_delivery_date,omitempty"`
}

// EntryItemDetail cantidades y desglose de entregas de una línea.
type EntryItemDetail struct {
	EntryItemResponse
	DeliveredQuantity int                 `json:"delivered_quantity"`
	FaltaQuantity     int                 `json:"falta_quantity"`
	Remaining         map[string]int      `json:"remaining"`
	DeliveryBreakdown []BreakdownResponse `json:"delivery_breakdown"`
}

// BreakdownResponse cantidad entregada en una fecha (dd/mm/yyyy).
type BreakdownResponse struct {
	Date string `json:"date"`
	Qty  int    `json:"qty"`
}
