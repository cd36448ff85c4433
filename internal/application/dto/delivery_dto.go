package dto

// DeliveryItemInput cantidades entregadas por talla contra una línea.
type DeliveryItemInput struct {
	EntryItemID        string         `json:"entry_item_id"`
	DeliveryQuantities map[string]int `json:"delivery_quantities"`
}

// CreateDeliveryRequest body para POST /api/deliveries.
type CreateDeliveryRequest struct {
	Code         int                 `json:"code"` // código de la entrada
	DeliveryDate string              `json:"delivery_date"`
	Items        []DeliveryItemInput `json:"items"`
}

// DeliveryResponse entrega en respuestas.
type DeliveryResponse struct {
	DeliveryID   string              `json:"delivery_id"`
	Code         int                 `json:"code"`
	DeliveryDate string              `json:"delivery_date"`
	WhoDelivered string              `json:"who_delivered"`
	Items        []DeliveryItemInput `json:"items"`
}
