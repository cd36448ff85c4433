// Package quantity implementa el modelo de cantidades por talla: sumas,
// pendientes y desgloses de entrega. Funciones puras sin estado (servicio
// de dominio).
package quantity

import (
	"github.com/hawlader/taller-api/internal/domain/entity"
)

// BreakdownDateLayout es el formato de fecha del desglose de entregas.
const BreakdownDateLayout = "02/01/2006"

// Sum suma todas las cantidades de un mapa talla -> cantidad.
func Sum(quantities map[string]int) int {
	total := 0
	for _, q := range quantities {
		total += q
	}
	return total
}

// DeliveredForItem suma lo entregado por talla para una línea de entrada a
// través de todas las entregas de su entrada.
func DeliveredForItem(item entity.EntryItem, entryDeliveries []entity.Delivery) map[string]int {
	delivered := make(map[string]int)
	for _, d := range entryDeliveries {
		for _, di := range d.Items {
			if di.EntryItemID != item.ID {
				continue
			}
			for size, qty := range di.DeliveryQuantities {
				delivered[size] += qty
			}
		}
	}
	return delivered
}

// RemainingForItem calcula, por cada talla presente en la línea, la cantidad
// pendiente = recibida - entregada. Las tallas que la línea no recibió no se
// consideran: una entrega no puede introducir tallas nuevas.
func RemainingForItem(item entity.EntryItem, entryDeliveries []entity.Delivery) map[string]int {
	delivered := DeliveredForItem(item, entryDeliveries)
	remaining := make(map[string]int, len(item.SizeQuantities))
	for size, received := range item.SizeQuantities {
		remaining[size] = received - delivered[size]
	}
	return remaining
}

// EntryTotals agrega las cantidades de una entrada completa.
func EntryTotals(entry *entity.Entry, entryDeliveries []entity.Delivery) (recibida, delivered, remaining int) {
	for _, item := range entry.Items {
		recibida += Sum(item.SizeQuantities)
	}
	for _, d := range entryDeliveries {
		for _, di := range d.Items {
			delivered += Sum(di.DeliveryQuantities)
		}
	}
	return recibida, delivered, recibida - delivered
}

// ItemTotals agrega las cantidades de una sola línea de entrada.
func ItemTotals(item entity.EntryItem, entryDeliveries []entity.Delivery) (recibida, delivered, falta int) {
	recibida = Sum(item.SizeQuantities)
	for _, qty := range DeliveredForItem(item, entryDeliveries) {
		delivered += qty
	}
	return recibida, delivered, recibida - delivered
}

// BreakdownForItem agrupa la cantidad entregada de una línea por fecha de
// entrega (dd/mm/yyyy), sumando entregas del mismo día. El orden del
// resultado sigue el orden de las entregas recibidas.
func BreakdownForItem(item entity.EntryItem, entryDeliveries []entity.Delivery) []entity.DeliveryBreakdown {
	totals := make(map[string]int)
	var order []string
	for _, d := range entryDeliveries {
		for _, di := range d.Items {
			if di.EntryItemID != item.ID {
				continue
			}
			qty := Sum(di.DeliveryQuantities)
			if qty == 0 {
				continue
			}
			key := d.DeliveryDate.Format(BreakdownDateLayout)
			if _, seen := totals[key]; !seen {
				order = append(order, key)
			}
			totals[key] += qty
		}
	}
	breakdown := make([]entity.DeliveryBreakdown, 0, len(order))
	for _, date := range order {
		breakdown = append(breakdown, entity.DeliveryBreakdown{Date: date, Qty: totals[date]})
	}
	return breakdown
}
