package quantity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hawlader/taller-api/internal/domain/entity"
	"github.com/hawlader/taller-api/internal/domain/quantity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func itemCamisa() entity.EntryItem {
	return entity.EntryItem{
		ID:          "item-1",
		ProductID:   "P-100",
		Description: "Camisa",
		SizeQuantities: map[string]int{
			"S": 10, "M": 20, "L": 5,
		},
	}
}

func deliveryOn(day time.Time, itemID string, qty map[string]int) entity.Delivery {
	return entity.Delivery{
		DeliveryID:   "d-" + day.Format("20060102"),
		Code:         1,
		DeliveryDate: day,
		Items: []entity.DeliveryItem{
			{EntryItemID: itemID, DeliveryQuantities: qty},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Sum
// ──────────────────────────────────────────────────────────────────────────────

func TestSum_SumaTodasLasTallas(t *testing.T) {
	assert.Equal(t, 35, quantity.Sum(map[string]int{"S": 10, "M": 20, "L": 5}))
}

func TestSum_MapaVacioONil(t *testing.T) {
	assert.Equal(t, 0, quantity.Sum(nil))
	assert.Equal(t, 0, quantity.Sum(map[string]int{}))
}

// ──────────────────────────────────────────────────────────────────────────────
// RemainingForItem
// ──────────────────────────────────────────────────────────────────────────────

func TestRemainingForItem_SinEntregas(t *testing.T) {
	item := itemCamisa()
	remaining := quantity.RemainingForItem(item, nil)
	assert.Equal(t, map[string]int{"S": 10, "M": 20, "L": 5}, remaining)
}

func TestRemainingForItem_RestaPorTalla(t *testing.T) {
	item := itemCamisa()
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	deliveries := []entity.Delivery{
		deliveryOn(day, item.ID, map[string]int{"S": 4, "M": 20}),
	}
	remaining := quantity.RemainingForItem(item, deliveries)
	assert.Equal(t, map[string]int{"S": 6, "M": 0, "L": 5}, remaining)
}

// Las entregas de otras líneas no afectan al pendiente de esta.
func TestRemainingForItem_IgnoraOtrasLineas(t *testing.T) {
	item := itemCamisa()
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	deliveries := []entity.Delivery{
		deliveryOn(day, "otro-item", map[string]int{"S": 10}),
	}
	remaining := quantity.RemainingForItem(item, deliveries)
	assert.Equal(t, 10, remaining["S"], "entregas de otra línea no deben descontar")
}

// Una talla entregada que la línea no recibió no aparece en el pendiente.
func TestRemainingForItem_NoIntroduceTallasNuevas(t *testing.T) {
	item := itemCamisa()
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	deliveries := []entity.Delivery{
		deliveryOn(day, item.ID, map[string]int{"XL": 3}),
	}
	remaining := quantity.RemainingForItem(item, deliveries)
	_, ok := remaining["XL"]
	assert.False(t, ok, "una entrega no puede introducir una talla nueva")
}

// ──────────────────────────────────────────────────────────────────────────────
// EntryTotals / ItemTotals — invariante de suma
// ──────────────────────────────────────────────────────────────────────────────

func TestEntryTotals_InvarianteDeSuma(t *testing.T) {
	entry := &entity.Entry{
		Code:   1,
		Status: entity.StatusRecibida,
		Items: []entity.EntryItem{
			itemCamisa(),
			{ID: "item-2", SizeQuantities: map[string]int{"XL": 7}},
		},
	}
	recibida, delivered, remaining := quantity.EntryTotals(entry, nil)

	sum := 0
	for _, it := range entry.Items {
		sum += quantity.Sum(it.SizeQuantities)
	}
	assert.Equal(t, sum, recibida, "recibida debe ser la suma de las líneas")
	assert.Equal(t, 0, delivered)
	assert.Equal(t, recibida, remaining)
}

func TestItemTotals_ConEntregasParciales(t *testing.T) {
	item := itemCamisa()
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	deliveries := []entity.Delivery{
		deliveryOn(day, item.ID, map[string]int{"S": 5, "M": 10}),
	}
	recibida, delivered, falta := quantity.ItemTotals(item, deliveries)
	assert.Equal(t, 35, recibida)
	assert.Equal(t, 15, delivered)
	assert.Equal(t, 20, falta)
}

// ──────────────────────────────────────────────────────────────────────────────
// BreakdownForItem
// ──────────────────────────────────────────────────────────────────────────────

func TestBreakdownForItem_AgrupaPorFecha(t *testing.T) {
	item := itemCamisa()
	day1 := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	day1Later := time.Date(2024, 3, 10, 17, 30, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	deliveries := []entity.Delivery{
		deliveryOn(day1, item.ID, map[string]int{"S": 3}),
		deliveryOn(day1Later, item.ID, map[string]int{"M": 2}),
		deliveryOn(day2, item.ID, map[string]int{"L": 1}),
	}

	breakdown := quantity.BreakdownForItem(item, deliveries)
	require.Len(t, breakdown, 2, "dos entregas del mismo día deben agruparse")
	assert.Equal(t, entity.DeliveryBreakdown{Date: "10/03/2024", Qty: 5}, breakdown[0])
	assert.Equal(t, entity.DeliveryBreakdown{Date: "12/03/2024", Qty: 1}, breakdown[1])
}

func TestBreakdownForItem_SinEntregasDaVacio(t *testing.T) {
	assert.Empty(t, quantity.BreakdownForItem(itemCamisa(), nil))
}
