// Package finance calcula importes financieros de entradas: valor facturable
// por línea, precio medio e ingresos reconocidos. Los importes se calculan
// siempre sobre la cantidad recibida (se factura lo encargado, no lo
// entregado hasta la fecha).
package finance

import (
	"github.com/shopspring/decimal"

	"github.com/hawlader/taller-api/internal/domain/entity"
	"github.com/hawlader/taller-api/internal/domain/quantity"
)

// EntryFinancials importes agregados de una entrada.
type EntryFinancials struct {
	TotalQuantity int
	TotalAmount   decimal.Decimal
	AveragePrice  decimal.Decimal
}

// Calculate suma cantidad x precio snapshot de cada línea. El precio medio
// es importe/cantidad, 0 si la entrada no tiene unidades.
func Calculate(entry *entity.Entry) EntryFinancials {
	total := decimal.Zero
	qty := 0
	for _, item := range entry.Items {
		n := quantity.Sum(item.SizeQuantities)
		qty += n
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(n))))
	}
	avg := decimal.Zero
	if qty > 0 {
		avg = total.Div(decimal.NewFromInt(int64(qty)))
	}
	return EntryFinancials{TotalQuantity: qty, TotalAmount: total, AveragePrice: avg}
}

// Recognized indica si el estado de una entrada cuenta como ingreso: solo
// Entregada y Prefacturado. Recibida y En proceso son trabajo en curso.
func Recognized(status string) bool {
	return status == entity.StatusEntregada || status == entity.StatusPrefacturado
}

// Revenue suma el importe de las entradas con ingreso reconocido.
func Revenue(entries []*entity.Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if !Recognized(e.Status) {
			continue
		}
		total = total.Add(Calculate(e).TotalAmount)
	}
	return total
}
