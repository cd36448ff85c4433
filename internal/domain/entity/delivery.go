package entity

import "time"

// Delivery es un evento de entrega parcial o total contra una entrada.
type Delivery struct {
	DeliveryID   string
	Code         int // código de la entrada
	DeliveryDate time.Time
	WhoDelivered string
	Items        []DeliveryItem
	CreatedAt    time.Time
}

// DeliveryItem referencia una línea de la entrada y las cantidades
// entregadas por talla (subconjunto de las tallas recibidas).
type DeliveryItem struct {
	EntryItemID        string
	DeliveryQuantities map[string]int
}
