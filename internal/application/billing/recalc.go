package billing

import (
	"github.com/shopspring/decimal"

	"github.com/hawlader/taller-api/internal/domain/entity"
)

// Regla de recargo del cliente AUSTRAL: toda línea con cantidad recibida
// menor o igual al umbral suma un 10% de su total como penalización por
// cantidad mínima. Aplica solo a ese cliente, por nombre exacto.
const (
	SurchargeClientName  = "AUSTRAL"
	surchargeMinQuantity = 20
)

var surchargeRate = decimal.NewFromFloat(0.10)

// LineTotal calcula el total de una línea: cantidad entregada por precio, o
// recibida si aún no hay entregas (en el ensamblado entregada == recibida).
func LineTotal(item entity.DocumentItem) decimal.Decimal {
	qty := item.EntregadaQuantity
	if qty == 0 {
		qty = item.RecibidaQuantity
	}
	return item.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
}

// Totals aplica las fórmulas del documento sobre un conjunto de líneas ya
// totalizadas: subtotal, recargo AUSTRAL, impuesto sobre (subtotal+recargo)
// y total final.
func Totals(items []entity.DocumentItem, clientName string, taxRate decimal.Decimal) (subtotal, surcharge, taxAmount, total decimal.Decimal) {
	subtotal = decimal.Zero
	surcharge = decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Total)
		if clientName == SurchargeClientName && item.RecibidaQuantity <= surchargeMinQuantity {
			surcharge = surcharge.Add(item.Total.Mul(surchargeRate))
		}
	}
	taxAmount = subtotal.Add(surcharge).Mul(taxRate).Div(decimal.NewFromInt(100)).Round(2)
	total = subtotal.Add(surcharge).Add(taxAmount)
	return subtotal, surcharge, taxAmount, total
}

// Recalculate reaplica los totales a un documento tras editar líneas o tipo
// impositivo: reescribe el total de cada línea y los agregados de cabecera.
func Recalculate(doc *entity.Document, clientName string) {
	for i := range doc.Items {
		doc.Items[i].Total = LineTotal(doc.Items[i])
	}
	doc.Subtotal, doc.Surcharge, doc.TaxAmount, doc.Total = Totals(doc.Items, clientName, doc.TaxRate)
}
